package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-genie/dev-genie-backend/internal/auth"
	"github.com/dev-genie/dev-genie-backend/internal/generation/llm"
	"github.com/dev-genie/dev-genie-backend/internal/projects/domain"
	"github.com/dev-genie/dev-genie-backend/internal/projects/service"
)

type fakeProjects struct {
	genReq domain.GenerationRequest
	genErr error
	filter domain.ListFilter
	owner  string
	getErr error
	delID  string
	delErr error
}

func (f *fakeProjects) Generate(_ context.Context, ownerID string, req domain.GenerationRequest) (*service.GenerationResult, error) {
	f.owner, f.genReq = ownerID, req
	if f.genErr != nil {
		return nil, f.genErr
	}
	return &service.GenerationResult{
		Projects: []domain.Project{{ID: "p1", Title: "Habit Tracker", Tags: []string{}}},
		Sources:  []string{"openai"},
	}, nil
}

func (f *fakeProjects) List(_ context.Context, ownerID string, flt domain.ListFilter) ([]domain.Project, error) {
	f.owner, f.filter = ownerID, flt
	return []domain.Project{}, nil
}

func (f *fakeProjects) Get(_ context.Context, ownerID, id string) (*domain.Project, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &domain.Project{ID: id, OwnerID: ownerID}, nil
}

func (f *fakeProjects) Delete(_ context.Context, ownerID, id string) error {
	f.owner, f.delID = ownerID, id
	return f.delErr
}

type fakeDetails struct {
	selection []llm.Provider
	err       error
	paperErr  error
}

func (f *fakeDetails) GetOrCreate(_ context.Context, _ string, projectID string, sel []llm.Provider) (*domain.Detail, bool, error) {
	f.selection = sel
	if f.err != nil {
		return nil, false, f.err
	}
	return &domain.Detail{ProjectID: projectID, Structure: "s"}, true, nil
}

func (f *fakeDetails) Paper(_ context.Context, _ string, projectID string) (*service.Paper, error) {
	if f.paperErr != nil {
		return nil, f.paperErr
	}
	return &service.Paper{FileName: "Habit_Tracker_Research_Paper.txt", Body: "HABIT TRACKER\n" + projectID}, nil
}

func setup(p *fakeProjects, d *fakeDetails) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/projects", func(c *gin.Context) {
		c.Set(auth.CtxUserDBID, "user-1")
		c.Next()
	})
	New(p, d).Register(g)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		p := &fakeProjects{}
		w := do(setup(p, &fakeDetails{}), http.MethodPost, "/projects/generate",
			`{"projectType":"Web","interests":"music","skills":"Go","difficulty":"Beginner","providers":["openai"]}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var body struct {
			OK       bool             `json:"ok"`
			Projects []domain.Project `json:"projects"`
			Sources  []string         `json:"sources"`
			Fallback bool             `json:"fallback"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.OK)
		assert.Len(t, body.Projects, 1)
		assert.Equal(t, []string{"openai"}, body.Sources)
		assert.Equal(t, "user-1", p.owner)
		assert.Equal(t, []string{"openai"}, p.genReq.Providers)
	})

	t.Run("invalid json", func(t *testing.T) {
		w := do(setup(&fakeProjects{}, &fakeDetails{}), http.MethodPost, "/projects/generate", `{`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		p := &fakeProjects{genErr: errors.Join(domain.ErrInvalidRequest, errors.New("difficulty"))}
		w := do(setup(p, &fakeDetails{}), http.MethodPost, "/projects/generate", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store error", func(t *testing.T) {
		p := &fakeProjects{genErr: errors.New("store projects: boom")}
		w := do(setup(p, &fakeDetails{}), http.MethodPost, "/projects/generate", `{}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"ok":false,"error":"internal error"}`, w.Body.String())
	})
}

func TestListHandler_PassesFilter(t *testing.T) {
	p := &fakeProjects{}
	w := do(setup(p, &fakeDetails{}), http.MethodGet, "/projects?q=react&category=Web+Development", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ListFilter{Query: "react", Category: "Web Development"}, p.filter)
}

func TestGetHandler_NotFound(t *testing.T) {
	p := &fakeProjects{getErr: domain.ErrProjectNotFound}
	w := do(setup(p, &fakeDetails{}), http.MethodGet, "/projects/abc", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetailsHandler(t *testing.T) {
	t.Run("empty body uses default selection", func(t *testing.T) {
		d := &fakeDetails{}
		w := do(setup(&fakeProjects{}, d), http.MethodPost, "/projects/p1/details", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, d.selection)
		assert.Contains(t, w.Body.String(), `"cached":true`)
	})

	t.Run("provider selection", func(t *testing.T) {
		d := &fakeDetails{}
		w := do(setup(&fakeProjects{}, d), http.MethodPost, "/projects/p1/details", `{"providers":["claude"]}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []llm.Provider{llm.Claude}, d.selection)
	})

	t.Run("unknown provider", func(t *testing.T) {
		w := do(setup(&fakeProjects{}, &fakeDetails{}), http.MethodPost, "/projects/p1/details", `{"providers":["bard"]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("in progress elsewhere", func(t *testing.T) {
		d := &fakeDetails{err: domain.ErrDetailInProgress}
		w := do(setup(&fakeProjects{}, d), http.MethodPost, "/projects/p1/details", "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestDeleteHandler(t *testing.T) {
	p := &fakeProjects{}
	w := do(setup(p, &fakeDetails{}), http.MethodDelete, "/projects/p1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p1", p.delID)
	assert.Equal(t, "user-1", p.owner)

	p = &fakeProjects{delErr: domain.ErrProjectNotFound}
	w = do(setup(p, &fakeDetails{}), http.MethodDelete, "/projects/p1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaperHandler(t *testing.T) {
	t.Run("download", func(t *testing.T) {
		w := do(setup(&fakeProjects{}, &fakeDetails{}), http.MethodGet, "/projects/p1/paper", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="Habit_Tracker_Research_Paper.txt"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "HABIT TRACKER\np1", w.Body.String())
	})

	t.Run("no stored detail", func(t *testing.T) {
		w := do(setup(&fakeProjects{}, &fakeDetails{paperErr: domain.ErrDetailNotFound}), http.MethodGet, "/projects/p1/paper", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "not generated yet")
	})

	t.Run("unknown project", func(t *testing.T) {
		w := do(setup(&fakeProjects{}, &fakeDetails{paperErr: domain.ErrProjectNotFound}), http.MethodGet, "/projects/p1/paper", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "project not found")
	})
}
