package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/dev-genie/dev-genie-backend/internal/logger"
	"github.com/dev-genie/dev-genie-backend/internal/projects/domain"
)

// Paper is a plain-text research paper draft built from a project and its
// stored detail.
type Paper struct {
	FileName string
	Body     string
}

type paperData struct {
	Title       string
	Category    string
	CategoryLow string
	Tags        string
	LeadTags    string
	FirstTag    string
	Structure   string
	Flow        string
}

var paperTemplate = template.Must(template.New("paper").Funcs(template.FuncMap{"upper": strings.ToUpper}).Parse(`{{.Title | upper}}

Author Name
Your Institution/College/Organization Name
your.email@example.com

ABSTRACT

This paper presents the development and implementation of {{.Title}}, a {{.CategoryLow}} solution designed to address specific challenges in the domain. The project utilizes modern {{.Tags}} technologies to create an efficient and user-friendly system. The methodology involves systematic analysis, design, and implementation phases, resulting in a robust application that demonstrates practical utility and scalability. Key findings indicate successful implementation of core functionalities with potential for future enhancements and broader applications.

KEYWORDS

{{if .Tags}}{{.Tags}}, {{end}}Software Development, {{.Category}}, User Experience, System Design

I. INTRODUCTION

The rapid advancement in technology has created numerous opportunities for innovative solutions in various domains. This paper introduces {{.Title}}, a comprehensive {{.CategoryLow}} application that addresses the growing need for efficient and user-friendly systems in the digital landscape.

1.1 Project Aims and Objectives

The primary objectives of this project include:
• Developing a functional and intuitive {{.CategoryLow}} application
• Implementing modern development practices and technologies
• Creating a scalable and maintainable system architecture
• Demonstrating practical problem-solving through technology
• Providing a foundation for future enhancements and features

II. METHODOLOGY

The development of {{.Title}} follows a systematic approach combining traditional software development methodologies with modern agile practices.

2.1 System Analysis / Research Design

The current scenario analysis revealed the need for a comprehensive solution that addresses specific user requirements while maintaining high standards of usability and performance.{{if .LeadTags}} The proposed solution leverages {{.LeadTags}} to create an efficient and scalable system.{{end}}

2.1.1 Software and Hardware Requirements

Software Requirements:
{{.Structure}}

Hardware Requirements:
• Processor: Intel i5 or equivalent (minimum)
• Memory: 8GB RAM (recommended 16GB)
• Storage: 500MB available space
• Network: Stable internet connection for API integrations

2.2 System Implementation

The implementation follows a modular approach, ensuring maintainability and scalability:

{{.Flow}}

III. MODULE DESCRIPTION / SYSTEM ARCHITECTURE

3.1 Frontend Module
Responsible for user interface and user experience, implementing responsive design principles and modern UI/UX patterns.

3.2 Backend Module
Handles business logic, data processing, and API integrations, ensuring secure and efficient data management.

3.3 Database Module
Manages data storage, retrieval, and integrity, implementing appropriate data models and relationships.

3.4 Integration Module
Facilitates communication between different system components and external services.

IV. TESTING AND RESULTS

Unit Testing:
• Individual component testing
• Function-level validation and error handling

Integration Testing:
• End-to-end workflow testing
• API integration verification

V. FUTURE SCOPE

• Integration with additional third-party services
• Implementation of advanced analytics and reporting
• Mobile application development
• Scalability improvements for enterprise deployment

VI. CONCLUSION

The successful development and implementation of {{.Title}} demonstrates the effective application of modern {{.CategoryLow}} development practices. The project achieves its primary objectives of creating a functional, scalable, and user-friendly system.

VII. REFERENCES

[1] Documentation and Official Guides for {{.FirstTag}}
[2] Best Practices in {{.Category}} Development
[3] User Experience Design Principles and Guidelines
[4] Software Architecture Patterns and Practices
[5] Modern Development Methodologies and Frameworks
`))

// Paper renders the research paper draft for the owner's project. It only
// reads the stored detail and never triggers generation.
func (s *DetailService) Paper(ctx context.Context, ownerID, projectID string) (*Paper, error) {
	project, err := s.projects.GetByID(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	detail, err := s.details.GetByProjectID(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	body, err := RenderPaper(*project, *detail)
	if err != nil {
		logger.NewLogger(ctx).With("project_id", project.ID).LogError("projects.paper", err)
		return nil, err
	}
	return &Paper{FileName: PaperFileName(detail.Title, project.Title), Body: body}, nil
}

// RenderPaper fills the paper template. The detail title wins over the
// project title when both are set.
func RenderPaper(p domain.Project, d domain.Detail) (string, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = p.Title
	}
	data := paperData{
		Title:       title,
		Category:    p.Category,
		CategoryLow: strings.ToLower(p.Category),
		Tags:        strings.Join(p.Tags, ", "),
		FirstTag:    "Technology Stack",
		Structure:   d.Structure,
		Flow:        d.Flow,
	}
	lead := p.Tags
	if len(lead) > 3 {
		lead = lead[:3]
	}
	data.LeadTags = strings.Join(lead, ", ")
	if len(p.Tags) > 0 && strings.TrimSpace(p.Tags[0]) != "" {
		data.FirstTag = p.Tags[0]
	}

	var buf bytes.Buffer
	if err := paperTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render paper: %w", err)
	}
	return strings.TrimSpace(buf.String()) + "\n", nil
}

// PaperFileName turns the first usable title into
// "<Title_Words>_Research_Paper.txt". Anything but ASCII letters, digits,
// '-' and '_' is dropped so the name fits a Content-Disposition header.
func PaperFileName(titles ...string) string {
	for _, t := range titles {
		f := strings.Map(func(r rune) rune {
			if r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
				return r
			}
			return -1
		}, strings.Join(strings.Fields(t), "_"))
		if strings.Trim(f, "_") != "" {
			return f + "_Research_Paper.txt"
		}
	}
	return "Research_Paper.txt"
}
