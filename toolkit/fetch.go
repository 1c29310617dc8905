package toolkit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"

	"github.com/tailored-agentic-units/goagent/core/protocol"
	"github.com/tailored-agentic-units/goagent/tools"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Elements dropped before conversion.
var noiseTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"head":     true,
	"nav":      true,
	"footer":   true,
	"aside":    true,
	"iframe":   true,
	"svg":      true,
}

// Fetch returns a tool that downloads a URL. HTML pages are reduced to
// Markdown; other text is returned as is. Output is capped at cfg.MaxChars.
func Fetch(cfg FetchConfig, client *http.Client) tools.Tool {
	def := protocol.Tool{
		Name:        NameFetch,
		Description: "获取网页内容并转换为Markdown。参数为完整的http或https链接。",
	}
	return tools.New(def, func(ctx context.Context, input string) (string, error) {
		target := strings.TrimSpace(input)
		if target == "" {
			return "", ErrEmptyInput
		}
		u, err := url.Parse(target)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", fmt.Errorf("invalid url %q", target)
		}

		body, contentType, err := download(ctx, client, u.String(), cfg.MaxBytes)
		if err != nil {
			return "", err
		}

		text := string(body)
		if isHTML(contentType) {
			text, err = htmlToMarkdown(text)
			if err != nil {
				return "", err
			}
		}
		return truncate(text, cfg.MaxChars), nil
	})
}

func download(ctx context.Context, client *http.Client, target string, maxBytes int64) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("fetch %s: status %d", target, resp.StatusCode)
	}

	var r io.Reader = resp.Body
	if maxBytes > 0 {
		r = io.LimitReader(resp.Body, maxBytes)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", target, err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "html")
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

func htmlToMarkdown(page string) (string, error) {
	cleaned := page
	if doc, err := html.Parse(strings.NewReader(page)); err == nil {
		stripNoise(doc)
		var buf bytes.Buffer
		if err := html.Render(&buf, doc); err == nil {
			cleaned = buf.String()
		}
	}

	md, err := htmltomarkdown.ConvertString(cleaned)
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}
	return strings.TrimSpace(blankRuns.ReplaceAllString(md, "\n\n")), nil
}

func stripNoise(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && noiseTags[c.Data] {
			n.RemoveChild(c)
		} else {
			stripNoise(c)
		}
		c = next
	}
}

// truncate caps s at max runes, marking the cut. max <= 0 disables the cap.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "\n...(已截断)"
}
