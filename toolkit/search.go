package toolkit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tailored-agentic-units/goagent/core/protocol"
	"github.com/tailored-agentic-units/goagent/tools"
)

type serpResponse struct {
	Error         string   `json:"error"`
	AnswerBoxList []string `json:"answer_box_list"`
	AnswerBox     *struct {
		Answer string `json:"answer"`
	} `json:"answer_box"`
	KnowledgeGraph *struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Source      *struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"knowledge_graph"`
	OrganicResults []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic_results"`
}

// Search returns a web search tool backed by SerpApi. Results are summarized
// in priority order: direct answers, knowledge graph, then the top organic
// results.
func Search(cfg SearchConfig, client *http.Client) tools.Tool {
	def := protocol.Tool{
		Name:        NameSearch,
		Description: "一个网页搜索引擎。当你需要回答关于时事、事实以及在你的知识库中找不到的信息时，应使用此工具。",
	}
	return tools.New(def, func(ctx context.Context, query string) (string, error) {
		query = strings.TrimSpace(query)
		if query == "" {
			return "", ErrEmptyInput
		}
		if cfg.APIKey == "" {
			return "", ErrMissingSearchKey
		}

		resp, err := searchSerpAPI(ctx, client, cfg, query)
		if err != nil {
			return "", fmt.Errorf("搜索时发生错误: %w", err)
		}
		return formatSearch(resp, query, cfg.MaxResults), nil
	})
}

func searchSerpAPI(ctx context.Context, client *http.Client, cfg SearchConfig, query string) (*serpResponse, error) {
	params := url.Values{}
	params.Set("engine", cfg.Engine)
	params.Set("q", query)
	params.Set("api_key", cfg.APIKey)
	if cfg.Country != "" {
		params.Set("gl", cfg.Country)
	}
	if cfg.Language != "" {
		params.Set("hl", cfg.Language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("serpapi: %s", out.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi returned status %d", resp.StatusCode)
	}
	return &out, nil
}

func formatSearch(r *serpResponse, query string, maxResults int) string {
	if len(r.AnswerBoxList) > 0 {
		return "【直接答案】\n" + strings.Join(r.AnswerBoxList, "\n")
	}
	if r.AnswerBox != nil && r.AnswerBox.Answer != "" {
		return "【直接答案】\n" + r.AnswerBox.Answer
	}
	if kg := r.KnowledgeGraph; kg != nil && kg.Description != "" {
		var b strings.Builder
		b.WriteString("【知识图谱】\n")
		if kg.Title != "" {
			fmt.Fprintf(&b, "主题: %s\n", kg.Title)
		}
		fmt.Fprintf(&b, "描述: %s", kg.Description)
		if kg.Source != nil {
			fmt.Fprintf(&b, "\n来源: %s", kg.Source.Name)
		}
		return b.String()
	}
	if total := len(r.OrganicResults); total > 0 {
		if maxResults <= 0 {
			maxResults = 3
		}
		n := min(maxResults, total)
		snippets := make([]string, 0, n)
		for i, res := range r.OrganicResults[:n] {
			title := res.Title
			if title == "" {
				title = "无标题"
			}
			snippet := res.Snippet
			if snippet == "" {
				snippet = "无描述"
			}
			s := fmt.Sprintf("【结果 %d】\n📌 标题: %s\n📄 摘要: %s", i+1, title, snippet)
			if res.Link != "" {
				s += "\n🔗 链接: " + res.Link
			}
			snippets = append(snippets, s)
		}
		header := fmt.Sprintf("🔎 搜索到 %d 条结果，以下是前 %d 条:\n", total, n)
		separator := "\n" + strings.Repeat("-", 60) + "\n"
		return header + strings.Join(snippets, separator)
	}
	return fmt.Sprintf("对不起，没有找到关于 '%s' 的信息。", query)
}
