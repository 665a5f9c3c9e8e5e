package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultGitHubBaseURL = "https://api.github.com"

// GitHub's search API allows 30 requests a minute with a token and 10 without.
var (
	authenticatedSearchRate = rate.Every(2 * time.Second)
	anonymousSearchRate     = rate.Every(6 * time.Second)
)

type Repository struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Stars       int      `json:"stars"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
}

// GitHubClient searches public repositories.
type GitHubClient struct {
	token   string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

func NewGitHubClient(token, baseURL string, httpClient *http.Client) *GitHubClient {
	if baseURL == "" {
		baseURL = defaultGitHubBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	limiter := rate.NewLimiter(anonymousSearchRate, 3)
	if token != "" {
		limiter = rate.NewLimiter(authenticatedSearchRate, 5)
	}
	return &GitHubClient{token: token, baseURL: strings.TrimRight(baseURL, "/"), http: httpClient, limiter: limiter}
}

// WithRateLimit replaces the default search rate limit.
func (c *GitHubClient) WithRateLimit(limit rate.Limit, burst int) *GitHubClient {
	c.limiter = rate.NewLimiter(limit, burst)
	return c
}

type searchResponse struct {
	Items []struct {
		Name            string   `json:"name"`
		Description     *string  `json:"description"`
		HTMLURL         string   `json:"html_url"`
		StargazersCount int      `json:"stargazers_count"`
		Language        *string  `json:"language"`
		Topics          []string `json:"topics"`
	} `json:"items"`
}

// Search returns the top starred repositories matching query.
func (c *GitHubClient) Search(ctx context.Context, query string) ([]Repository, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("github rate limiter: %w", err)
	}

	v := url.Values{}
	v.Set("q", query)
	v.Set("sort", "stars")
	v.Set("order", "desc")
	v.Set("per_page", "20")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/repositories?"+v.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github error (status %d)", resp.StatusCode)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("github decode: %w", err)
	}

	repos := make([]Repository, 0, len(out.Items))
	for _, it := range out.Items {
		r := Repository{
			Name:   it.Name,
			URL:    it.HTMLURL,
			Stars:  it.StargazersCount,
			Topics: it.Topics,
		}
		if it.Description != nil {
			r.Description = *it.Description
		}
		if it.Language != nil {
			r.Language = *it.Language
		}
		if r.Topics == nil {
			r.Topics = []string{}
		}
		repos = append(repos, r)
	}
	return repos, nil
}
