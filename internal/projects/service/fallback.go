package service

import (
	"strings"

	"github.com/dev-genie/dev-genie-backend/internal/generation/normalize"
	"github.com/dev-genie/dev-genie-backend/internal/projects/domain"
)

// FallbackProjects is served when no provider produced a usable idea.
func FallbackProjects(difficulty string) []domain.Project {
	mk := func(title, desc, category string, tags ...string) domain.Project {
		return domain.Project{
			Title:          title,
			Description:    desc,
			Difficulty:     difficulty,
			Tags:           tags,
			Category:       category,
			EstimatedTime:  normalize.DefaultEstimatedTime,
			MarketDemand:   normalize.DefaultMarketDemand,
			SourceProvider: domain.SourceFallback,
		}
	}
	return []domain.Project{
		mk("Personal Finance Tracker",
			"A web application to track expenses, income, and budget planning with data visualization.",
			"Web Development", "React", "Chart.js", "Local Storage"),
		mk("Weather Forecast App",
			"Real-time weather application with location-based forecasts and weather alerts.",
			"Web Development", "JavaScript", "API Integration", "Geolocation"),
		mk("Task Management System",
			"Collaborative task management with team features, deadlines, and progress tracking.",
			"Full Stack", "CRUD Operations", "Database", "User Authentication"),
	}
}

// FallbackDetail is stored when no provider produced a usable detail.
func FallbackDetail(p domain.Project) domain.Detail {
	topic := strings.ReplaceAll(strings.ToLower(p.Category), " ", "-")
	return domain.Detail{
		ProjectID:   p.ID,
		Title:       p.Title,
		Description: strings.TrimSpace(p.Description + " This project involves modern web development practices and user-centered design principles."),
		Structure:   "Frontend: React.js with TypeScript\nBackend: Node.js with Express\nDatabase: MongoDB\nAuthentication: JWT",
		Flow:        "1. User Registration/Login\n2. Dashboard Overview\n3. Core Functionality\n4. Data Management\n5. Settings & Profile",
		Roadmap:     "Phase 1: Setup & Authentication (Week 1)\nPhase 2: Core Features (Week 2-3)\nPhase 3: UI/UX Polish (Week 4)\nPhase 4: Testing & Deployment (Week 5)",
		PseudoCode:  "// Main Application Logic\nfunction initializeApp() {\n  authenticateUser();\n  loadUserData();\n  renderDashboard();\n}",
		Resources: []string{
			"https://reactjs.org/docs",
			"https://nodejs.org/en/docs",
			"https://developer.mozilla.org/",
			"https://stackoverflow.com/",
		},
		GithubLinks: []string{
			"https://github.com/topics/react",
			"https://github.com/topics/nodejs",
			"https://github.com/topics/" + topic,
		},
		SourceProvider: domain.SourceFallback,
	}
}
