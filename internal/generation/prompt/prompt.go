// Package prompt turns typed generation requests into provider prompts.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingField        = errors.New("missing required field")
	ErrUnknownDocumentType = errors.New("unknown document type")
)

// Difficulties and market demand levels the prompts advertise to providers.
var (
	Difficulties  = []string{"Beginner", "Intermediate", "Advanced"}
	MarketDemands = []string{"Low", "Medium", "High"}
	ResourceTypes = []string{"tutorial", "course", "documentation", "book", "community"}
)

type IdeaRequest struct {
	ProjectType string
	Interests   string
	Skills      string
	Difficulty  string
}

type DetailRequest struct {
	Title       string
	Description string
	Category    string
}

type DocumentationRequest struct {
	ProjectTitle       string
	ProjectDescription string
	Requirements       string
	Features           string
	TechStack          string
	DocumentType       string
}

type ResourceRequest struct {
	Category   string
	SearchTerm string
}

// builder accumulates prompt lines and skips optional fields that are blank.
type builder struct {
	sb strings.Builder
}

func (b *builder) line(s string) {
	b.sb.WriteString(s)
	b.sb.WriteByte('\n')
}

func (b *builder) field(label, value string) {
	if v := strings.TrimSpace(value); v != "" {
		b.line(label + ": " + v)
	}
}

func (b *builder) String() string {
	return strings.TrimRight(b.sb.String(), "\n")
}

func requireFields(fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, fields[i])
		}
	}
	return nil
}

func ProjectIdeas(req IdeaRequest) (string, error) {
	if err := requireFields(
		"projectType", req.ProjectType,
		"interests", req.Interests,
		"skills", req.Skills,
		"difficulty", req.Difficulty,
	); err != nil {
		return "", err
	}

	var b builder
	b.line("Generate 3 unique project ideas based on these preferences:")
	b.field("Project Type", req.ProjectType)
	b.field("Interests", req.Interests)
	b.field("Skills", req.Skills)
	b.field("Difficulty", req.Difficulty)
	b.line("")
	b.line("Return a JSON array with objects containing: id, title, description, " +
		"difficulty (" + strings.Join(Difficulties, "/") + "), tags (array of strings), category, " +
		"estimatedTime, marketDemand (" + strings.Join(MarketDemands, "/") + ").")
	b.line("Respond with the JSON array only.")
	return b.String(), nil
}

func ProjectDetail(req DetailRequest) (string, error) {
	if err := requireFields("title", req.Title); err != nil {
		return "", err
	}

	var b builder
	b.line(fmt.Sprintf("Provide detailed information for the project %q:", strings.TrimSpace(req.Title)))
	b.field("Summary", req.Description)
	b.field("Category", req.Category)
	b.line("")
	b.line("Return JSON with:")
	b.line("- title")
	b.line("- description (detailed)")
	b.line("- structure (project architecture)")
	b.line("- flow (user flow/workflow)")
	b.line("- roadmap (development phases)")
	b.line("- pseudoCode (key algorithms)")
	b.line("- resources (array of helpful links)")
	b.line("- githubLinks (array of relevant GitHub repositories)")
	return b.String(), nil
}

type docTemplate struct {
	heading  string
	useReq   bool
	useFeat  bool
	useStack bool
	sections string
}

var docTemplates = map[string]docTemplate{
	"srs": {
		heading:  "Create a comprehensive Software Requirements Specification (SRS) document for:",
		useReq:   true,
		useFeat:  true,
		useStack: true,
		sections: "Introduction, Overall Description, System Features, External Interface Requirements, Other Nonfunctional Requirements, and Appendices",
	},
	"design": {
		heading:  "Create a detailed System Design Document for:",
		useStack: true,
		sections: "Architecture Overview, Database Design, API Design, UI/UX Specifications, Security Considerations, and Deployment Strategy",
	},
	"api": {
		heading:  "Create comprehensive API Documentation for:",
		useFeat:  true,
		useStack: true,
		sections: "API Overview, Authentication, Endpoints, Request/Response Examples, Error Codes, and Rate Limiting",
	},
	"user": {
		heading:  "Create a User Manual for:",
		useFeat:  true,
		sections: "Getting Started, Feature Explanations, Step-by-step Guides, Troubleshooting, and FAQ",
	},
}

// DocumentTypes lists the accepted documentation kinds.
func DocumentTypes() []string { return []string{"srs", "design", "api", "user"} }

func Documentation(req DocumentationRequest) (string, error) {
	if err := requireFields(
		"projectTitle", req.ProjectTitle,
		"projectDescription", req.ProjectDescription,
		"documentType", req.DocumentType,
	); err != nil {
		return "", err
	}
	tpl, ok := docTemplates[strings.ToLower(strings.TrimSpace(req.DocumentType))]
	if !ok {
		return "", fmt.Errorf("%w: %q, want one of %s", ErrUnknownDocumentType, req.DocumentType, strings.Join(DocumentTypes(), ", "))
	}

	var b builder
	b.line(tpl.heading)
	b.field("Project", req.ProjectTitle)
	b.field("Description", req.ProjectDescription)
	if tpl.useReq {
		b.field("Requirements", req.Requirements)
	}
	if tpl.useFeat {
		b.field("Features", req.Features)
	}
	if tpl.useStack {
		b.field("Tech Stack", req.TechStack)
	}
	b.line("")
	b.line("Include sections for: " + tpl.sections + ".")
	b.line("Format the document in Markdown.")
	return b.String(), nil
}

func Resources(req ResourceRequest) (string, error) {
	if err := requireFields("category", req.Category); err != nil {
		return "", err
	}

	subject := strings.TrimSpace(req.Category)
	if term := strings.TrimSpace(req.SearchTerm); term != "" {
		subject += " focusing on " + term
	}

	var b builder
	b.line("Generate a comprehensive list of learning resources for " + subject + ".")
	b.line("")
	b.line("Include:")
	b.line("- Official documentation links")
	b.line("- Best tutorial websites")
	b.line("- Online courses (free and paid)")
	b.line("- YouTube channels")
	b.line("- Books and ebooks")
	b.line("- Community forums")
	b.line("- Practice platforms")
	b.line("")
	b.line("Return as JSON array with objects containing: title, description, url, type (" +
		strings.Join(ResourceTypes, "/") + "), difficulty, rating (1-5), and isFree (boolean).")
	return b.String(), nil
}
