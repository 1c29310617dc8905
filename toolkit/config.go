package toolkit

import (
	"slices"
	"strings"
	"time"
)

// Names of the built-in tools, in registration order.
const (
	NameSearch        = "Search"
	NameFetch         = "Fetch"
	NameCalculator    = "Calculator"
	NameDatetime      = "Datetime"
	NameReadFile      = "ReadFile"
	NameListDirectory = "ListDirectory"
)

// EnvSerpAPIKey is consulted by ApplyEnv for the search credential.
const EnvSerpAPIKey = "SERPAPI_API_KEY"

// Names returns every built-in tool name in registration order.
func Names() []string {
	return []string{NameSearch, NameFetch, NameCalculator, NameDatetime, NameReadFile, NameListDirectory}
}

// SearchConfig configures the SerpApi-backed web search.
type SearchConfig struct {
	APIKey         string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Endpoint       string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Engine         string `json:"engine,omitempty" yaml:"engine,omitempty"`
	Country        string `json:"country,omitempty" yaml:"country,omitempty"`
	Language       string `json:"language,omitempty" yaml:"language,omitempty"`
	MaxResults     int    `json:"max_results,omitempty" yaml:"max_results,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
}

// FetchConfig configures page retrieval.
type FetchConfig struct {
	MaxBytes       int64 `json:"max_bytes,omitempty" yaml:"max_bytes,omitempty"`
	MaxChars       int   `json:"max_chars,omitempty" yaml:"max_chars,omitempty"`
	TimeoutSeconds int   `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
}

// FilesConfig configures ReadFile and ListDirectory. An empty Root allows
// any path the process can read.
type FilesConfig struct {
	Root     string `json:"root,omitempty" yaml:"root,omitempty"`
	MaxChars int    `json:"max_chars,omitempty" yaml:"max_chars,omitempty"`
}

// Config selects and configures built-in tools.
type Config struct {
	Enabled []string     `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Search  SearchConfig `json:"search,omitempty" yaml:"search,omitempty"`
	Fetch   FetchConfig  `json:"fetch,omitempty" yaml:"fetch,omitempty"`
	Files   FilesConfig  `json:"files,omitempty" yaml:"files,omitempty"`
}

// DefaultConfig enables every built-in tool with Google results localized
// for China, three results per search, and 8000-character output caps.
// Files.Root is empty, so ReadFile and ListDirectory reach any path the
// process can read; set a root to confine them.
func DefaultConfig() Config {
	return Config{
		Enabled: Names(),
		Search: SearchConfig{
			Endpoint:       "https://serpapi.com/search",
			Engine:         "google",
			Country:        "cn",
			Language:       "zh-cn",
			MaxResults:     3,
			TimeoutSeconds: 30,
		},
		Fetch: FetchConfig{
			MaxBytes:       1 << 20,
			MaxChars:       8000,
			TimeoutSeconds: 30,
		},
		Files: FilesConfig{
			MaxChars: 8000,
		},
	}
}

// Merge applies non-zero values from source into c. A non-empty Enabled list
// replaces the current one.
func (c *Config) Merge(source *Config) {
	if len(source.Enabled) > 0 {
		c.Enabled = slices.Clone(source.Enabled)
	}

	s := &source.Search
	if s.APIKey != "" {
		c.Search.APIKey = s.APIKey
	}
	if s.Endpoint != "" {
		c.Search.Endpoint = s.Endpoint
	}
	if s.Engine != "" {
		c.Search.Engine = s.Engine
	}
	if s.Country != "" {
		c.Search.Country = s.Country
	}
	if s.Language != "" {
		c.Search.Language = s.Language
	}
	if s.MaxResults > 0 {
		c.Search.MaxResults = s.MaxResults
	}
	if s.TimeoutSeconds > 0 {
		c.Search.TimeoutSeconds = s.TimeoutSeconds
	}

	if source.Fetch.MaxBytes > 0 {
		c.Fetch.MaxBytes = source.Fetch.MaxBytes
	}
	if source.Fetch.MaxChars > 0 {
		c.Fetch.MaxChars = source.Fetch.MaxChars
	}
	if source.Fetch.TimeoutSeconds > 0 {
		c.Fetch.TimeoutSeconds = source.Fetch.TimeoutSeconds
	}

	if source.Files.Root != "" {
		c.Files.Root = source.Files.Root
	}
	if source.Files.MaxChars > 0 {
		c.Files.MaxChars = source.Files.MaxChars
	}
}

// ApplyEnv fills the search key from the environment when it is unset.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if c.Search.APIKey != "" {
		return
	}
	if v, ok := lookup(EnvSerpAPIKey); ok {
		c.Search.APIKey = strings.TrimSpace(v)
	}
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
