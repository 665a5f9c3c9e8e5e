package domain

import (
	"errors"
	"time"
)

// SourceFallback marks records served from built-in sample content.
const SourceFallback = "fallback"

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrDetailNotFound   = errors.New("project detail not found")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrDetailInProgress = errors.New("detail generation in progress")
)

var Difficulties = []string{"Beginner", "Intermediate", "Advanced"}

// Project is one stored project idea owned by a user.
type Project struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"ownerId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Difficulty     string    `json:"difficulty"`
	Tags           []string  `json:"tags"`
	Category       string    `json:"category"`
	EstimatedTime  string    `json:"estimatedTime"`
	MarketDemand   string    `json:"marketDemand"`
	SourceProvider string    `json:"sourceProvider"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Detail is the generated deep-dive for a project. At most one exists per project.
type Detail struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"projectId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Structure      string    `json:"structure"`
	Flow           string    `json:"flow"`
	Roadmap        string    `json:"roadmap"`
	PseudoCode     string    `json:"pseudoCode"`
	Resources      []string  `json:"resources"`
	GithubLinks    []string  `json:"githubLinks"`
	SourceProvider string    `json:"sourceProvider"`
	CreatedAt      time.Time `json:"createdAt"`
}

type GenerationRequest struct {
	ProjectType string   `json:"projectType"`
	Interests   string   `json:"interests"`
	Skills      string   `json:"skills"`
	Difficulty  string   `json:"difficulty"`
	Providers   []string `json:"providers"`
}

// ListFilter narrows the saved projects list. Empty fields match everything.
type ListFilter struct {
	Query    string
	Category string
}

func ValidDifficulty(d string) bool {
	for _, v := range Difficulties {
		if v == d {
			return true
		}
	}
	return false
}
