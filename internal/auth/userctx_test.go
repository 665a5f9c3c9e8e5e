package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dev-genie/dev-genie-backend/internal/users"
)

type fakeEnsurer struct {
	got users.UpsertUser
	err error
}

func (f *fakeEnsurer) EnsureUser(_ context.Context, u users.UpsertUser) (string, error) {
	f.got = u
	if f.err != nil {
		return "", f.err
	}
	return "db-" + u.FirebaseUID, nil
}

func newRouter(uid string, ens UserEnsurer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if uid != "" {
			c.Set(CtxFirebaseUID, uid)
			c.Set(CtxEmail, "a@b.dev")
		}
		c.Next()
	})
	r.Use(WithUser(ens))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, UserDBID(c)) })
	return r
}

func TestWithUser(t *testing.T) {
	t.Run("resolves db id", func(t *testing.T) {
		ens := &fakeEnsurer{}
		w := httptest.NewRecorder()
		newRouter("fb-1", ens).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "db-fb-1", w.Body.String())
		assert.Equal(t, "a@b.dev", ens.got.Email)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("", &fakeEnsurer{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("fb-1", &fakeEnsurer{err: errors.New("db down")}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
