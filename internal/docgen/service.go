// Package docgen generates project documents combined from every
// provider that answered.
package docgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dev-genie/dev-genie-backend/internal/generation/llm"
	"github.com/dev-genie/dev-genie-backend/internal/generation/normalize"
	"github.com/dev-genie/dev-genie-backend/internal/generation/prompt"
	"github.com/dev-genie/dev-genie-backend/internal/logger"
	"github.com/dev-genie/dev-genie-backend/internal/metrics"
)

var ErrInvalidRequest = errors.New("invalid documentation request")

type Generator interface {
	Generate(ctx context.Context, call llm.Call, selection []llm.Provider) []llm.Reply
}

type Request struct {
	ProjectTitle       string   `json:"projectTitle"`
	ProjectDescription string   `json:"projectDescription"`
	Requirements       string   `json:"requirements"`
	Features           string   `json:"features"`
	TechStack          string   `json:"techStack"`
	DocumentType       string   `json:"documentType"`
	Providers          []string `json:"providers"`
}

type Document struct {
	ProjectTitle string   `json:"projectTitle"`
	DocumentType string   `json:"documentType"`
	Content      string   `json:"documentation"`
	Sources      []string `json:"sources"`
	Fallback     bool     `json:"fallback"`
}

type Service struct {
	gen Generator
}

func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

func (s *Service) Generate(ctx context.Context, req Request) (*Document, error) {
	log := logger.NewLogger(ctx)

	docType := strings.ToLower(strings.TrimSpace(req.DocumentType))
	selection, err := llm.ParseProviders(req.Providers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	text, err := prompt.Documentation(prompt.DocumentationRequest{
		ProjectTitle:       req.ProjectTitle,
		ProjectDescription: req.ProjectDescription,
		Requirements:       req.Requirements,
		Features:           req.Features,
		TechStack:          req.TechStack,
		DocumentType:       docType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	replies := s.gen.Generate(ctx, llm.Call{Task: llm.TaskDocumentation, Prompt: text}, selection)

	title := strings.TrimSpace(req.ProjectTitle)
	doc := &Document{ProjectTitle: title, DocumentType: docType}
	if len(replies) == 0 {
		metrics.FallbacksTotal.WithLabelValues(string(llm.TaskDocumentation)).Inc()
		log.LogWarnf("documentation.generate", "no provider replied, serving %s outline", docType)
		doc.Content = Outline(title, docType)
		doc.Sources = []string{"fallback"}
		doc.Fallback = true
		return doc, nil
	}

	doc.Content = Combine(title, docType, replies)
	for _, r := range replies {
		doc.Sources = append(doc.Sources, string(r.Source))
	}
	log.LogInfof("documentation.generate", "combined %d sections for %s", len(replies), docType)
	return doc, nil
}

// Combine joins replies, in order, into one Markdown document.
func Combine(title, docType string, replies []llm.Reply) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s - %s Documentation\n\n", title, strings.ToUpper(docType))
	b.WriteString("*Generated using multiple AI models for comprehensive coverage*\n\n")

	for i, r := range replies {
		if i > 0 {
			b.WriteString("\n\n---\n\n")
		}
		fmt.Fprintf(&b, "## Section %d (Generated by %s)\n\n", i+1, r.Source.DisplayName())
		b.WriteString(normalize.StripFences(r.Text))
	}
	return b.String()
}

var outlines = map[string][]string{
	"srs":    {"Introduction", "Overall Description", "System Features", "External Interface Requirements", "Other Nonfunctional Requirements", "Appendices"},
	"design": {"Architecture Overview", "Database Design", "API Design", "UI/UX Specifications", "Security Considerations", "Deployment Strategy"},
	"api":    {"API Overview", "Authentication", "Endpoints", "Request/Response Examples", "Error Codes", "Rate Limiting"},
	"user":   {"Getting Started", "Feature Explanations", "Step-by-step Guides", "Troubleshooting", "FAQ"},
}

// Outline is the skeleton document served when no provider answered.
func Outline(title, docType string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s - %s Documentation\n\n", title, strings.ToUpper(docType))
	b.WriteString("*AI generation is currently unavailable. Use this outline as a starting point.*\n")
	for i, section := range outlines[docType] {
		fmt.Fprintf(&b, "\n## %d. %s\n\n_To be written._\n", i+1, section)
	}
	return b.String()
}
