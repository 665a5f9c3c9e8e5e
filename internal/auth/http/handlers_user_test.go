package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dev-genie/dev-genie-backend/internal/auth"
	"github.com/dev-genie/dev-genie-backend/internal/auth/domain"
)

type fakeProfiles struct{}

func (fakeProfiles) GetProfile(_ context.Context, userID string) (*domain.User, error) {
	if userID == "gone" {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{ID: userID, FirebaseUID: "fb"}, nil
}

func (fakeProfiles) UpdateProfile(_ context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	if req.Bio != nil && *req.Bio == "too long" {
		return nil, domain.ErrInvalidProfile
	}
	return &domain.User{ID: userID, DisplayName: req.DisplayName}, nil
}

func newRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/profile")
	if userID != "" {
		g.Use(func(c *gin.Context) { c.Set(auth.CtxUserDBID, userID) })
	}
	New(fakeProfiles{}).Register(g)
	return r
}

func do(r *gin.Engine, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetProfile(t *testing.T) {
	w := do(newRouter("u-1"), http.MethodGet, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u-1"`)

	assert.Equal(t, http.StatusNotFound, do(newRouter("gone"), http.MethodGet, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(newRouter(""), http.MethodGet, "").Code)
}

func TestUpdateProfile(t *testing.T) {
	r := newRouter("u-1")

	w := do(r, http.MethodPut, `{"displayName":"Ada"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"displayName":"Ada"`)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, `{"bio":"too long"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, `not json`).Code)
}
