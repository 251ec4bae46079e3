package chat

import (
	"chat-agent-backend/utils"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const (
	// 摘要截断长度（rune数）
	searchSummaryMaxLen = 500

	// 最多收集的相关结果条数
	maxSearchResults = 4
)

type SearchSnippet struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

// SearchResult 搜索工具的归一化结果，失败时只携带 Error
type SearchResult struct {
	Summary string          `json:"summary,omitempty"`
	Results []SearchSnippet `json:"results,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// SearchProvider 外部搜索服务，失败以错误载荷表达，不抛错也不重试
type SearchProvider interface {
	Search(ctx context.Context, query string) SearchResult
}

// WebSearcher 基于DuckDuckGo即时应答接口的搜索实现
type WebSearcher struct {
	client   *http.Client
	endpoint string
}

var _ SearchProvider = &WebSearcher{}

func NewWebSearcher(endpoint string) *WebSearcher {
	return &WebSearcher{
		client:   utils.DefaultHTTPClient(),
		endpoint: endpoint,
	}
}

// 搜索服务端的应答格式
type instantAnswer struct {
	AbstractText  string `json:"AbstractText"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

func (s *WebSearcher) Search(ctx context.Context, query string) SearchResult {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("no_redirect", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return SearchResult{Error: fmt.Sprintf("failed to build search request: %v", err)}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return SearchResult{Error: fmt.Sprintf("search request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SearchResult{Error: fmt.Sprintf("search provider returned status %d", resp.StatusCode)}
	}

	var answer instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return SearchResult{Error: fmt.Sprintf("failed to parse search response: %v", err)}
	}

	result := SearchResult{
		Summary: truncateRunes(answer.AbstractText, searchSummaryMaxLen),
	}

	for _, topic := range answer.RelatedTopics {
		if topic.Text == "" {
			continue
		}
		result.Results = append(result.Results, SearchSnippet{
			Text: topic.Text,
			URL:  topic.FirstURL,
		})
		if len(result.Results) >= maxSearchResults {
			break
		}
	}

	return result
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
