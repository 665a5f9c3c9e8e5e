package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dev-genie/dev-genie-backend/internal/generation/llm"
	"github.com/dev-genie/dev-genie-backend/internal/generation/prompt"
)

const (
	DefaultEstimatedTime = "2-4 weeks"
	DefaultMarketDemand  = "Medium"
	DefaultCategory      = "General"
)

type Project struct {
	Title         string
	Description   string
	Difficulty    string
	Tags          []string
	Category      string
	EstimatedTime string
	MarketDemand  string
	Source        llm.Provider
}

type DetailRecord struct {
	Description string
	Structure   string
	Flow        string
	Roadmap     string
	PseudoCode  string
	Resources   []string
	GithubLinks []string
	Source      llm.Provider
}

type Resource struct {
	Title       string
	Description string
	URL         string
	Type        string
	Difficulty  string
	Rating      float64
	IsFree      bool
	Source      llm.Provider
}

type rawProject struct {
	Title         text `json:"title"`
	Description   text `json:"description"`
	Difficulty    text `json:"difficulty"`
	Tags          list `json:"tags"`
	Category      text `json:"category"`
	EstimatedTime text `json:"estimatedTime"`
	MarketDemand  text `json:"marketDemand"`
}

// Projects parses a reply expected to hold an array of project ideas.
// Items without a title are dropped; empty fields get defaults.
func Projects(reply llm.Reply, req prompt.IdeaRequest) ([]Project, error) {
	items, err := ExtractArray(reply.Text)
	if err != nil {
		return nil, err
	}

	out := make([]Project, 0, len(items))
	for _, item := range items {
		var r rawProject
		if err := json.Unmarshal(item, &r); err != nil {
			continue
		}
		title := string(r.Title)
		if title == "" {
			continue
		}
		tags := []string(r.Tags)
		if tags == nil {
			tags = []string{}
		}
		out = append(out, Project{
			Title:         title,
			Description:   string(r.Description),
			Difficulty:    canonical(string(r.Difficulty), prompt.Difficulties, req.Difficulty),
			Tags:          tags,
			Category:      orDefault(string(r.Category), DefaultCategory),
			EstimatedTime: orDefault(string(r.EstimatedTime), DefaultEstimatedTime),
			MarketDemand:  canonical(string(r.MarketDemand), prompt.MarketDemands, DefaultMarketDemand),
			Source:        reply.Source,
		})
	}
	if len(items) > 0 && len(out) == 0 {
		return nil, fmt.Errorf("%w: no usable project records", ErrMalformed)
	}
	return out, nil
}

type rawDetail struct {
	Description text `json:"description"`
	Structure   text `json:"structure"`
	Flow        text `json:"flow"`
	Roadmap     text `json:"roadmap"`
	PseudoCode  text `json:"pseudoCode"`
	Resources   list `json:"resources"`
	GithubLinks list `json:"githubLinks"`
}

// Detail parses a reply expected to hold one project detail object.
func Detail(reply llm.Reply) (DetailRecord, error) {
	obj, err := ExtractObject(reply.Text)
	if err != nil {
		return DetailRecord{}, err
	}
	var r rawDetail
	if err := json.Unmarshal(obj, &r); err != nil {
		return DetailRecord{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	d := DetailRecord{
		Description: string(r.Description),
		Structure:   string(r.Structure),
		Flow:        string(r.Flow),
		Roadmap:     string(r.Roadmap),
		PseudoCode:  string(r.PseudoCode),
		Resources:   nonNil(r.Resources),
		GithubLinks: nonNil(r.GithubLinks),
		Source:      reply.Source,
	}
	if d.Structure == "" && d.Flow == "" && d.Roadmap == "" && d.PseudoCode == "" {
		return DetailRecord{}, fmt.Errorf("%w: detail has no content", ErrMalformed)
	}
	return d, nil
}

type rawResource struct {
	Title       text   `json:"title"`
	Description text   `json:"description"`
	URL         text   `json:"url"`
	Type        text   `json:"type"`
	Difficulty  text   `json:"difficulty"`
	Rating      number `json:"rating"`
	IsFree      flag   `json:"isFree"`
}

// Resources parses a reply expected to hold an array of learning resources.
func Resources(reply llm.Reply) ([]Resource, error) {
	items, err := ExtractArray(reply.Text)
	if err != nil {
		return nil, err
	}

	out := make([]Resource, 0, len(items))
	for _, item := range items {
		var r rawResource
		if err := json.Unmarshal(item, &r); err != nil {
			continue
		}
		if r.Title == "" {
			continue
		}
		rating := float64(r.Rating)
		if rating < 0 {
			rating = 0
		}
		if rating > 5 {
			rating = 5
		}
		out = append(out, Resource{
			Title:       string(r.Title),
			Description: string(r.Description),
			URL:         string(r.URL),
			Type:        canonical(string(r.Type), prompt.ResourceTypes, "tutorial"),
			Difficulty:  string(r.Difficulty),
			Rating:      rating,
			IsFree:      bool(r.IsFree),
			Source:      reply.Source,
		})
	}
	return out, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// canonical maps v case-insensitively onto one of allowed, or returns def.
func canonical(v string, allowed []string, def string) string {
	v = strings.TrimSpace(v)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	return def
}

func nonNil(l list) []string {
	if l == nil {
		return []string{}
	}
	return l
}
