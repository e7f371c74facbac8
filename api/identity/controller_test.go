package identity

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainid "github.com/beka-birhanu/vinom-maze3d/identity"
	"github.com/beka-birhanu/vinom-maze3d/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	registered map[string]bool
	designer   *domainid.Designer
}

func (a *fakeAuth) Register(username, _ string) error {
	if a.registered[username] {
		return service.ErrUsernameTaken
	}
	if username == "weak" {
		return domainid.ErrWeakPassword
	}
	a.registered[username] = true
	return nil
}

func (a *fakeAuth) SignIn(username, password string) (*domainid.Designer, string, error) {
	if username != a.designer.Username || password != "secret" {
		return nil, "", service.ErrInvalidCredentials
	}
	return a.designer, "signed-token", nil
}

type fakeTokenizer struct{}

func (fakeTokenizer) Generate(map[string]interface{}, time.Duration) (string, error) { return "", nil }

func (fakeTokenizer) Decode(tok string) (map[string]interface{}, error) {
	switch tok {
	case "valid":
		return map[string]interface{}{"designerID": "0b7c7c1e-7d8a-4f61-9a43-6a8b7e3c2d10"}, nil
	case "anonymous":
		return map[string]interface{}{}, nil
	}
	return nil, errors.New("invalid token")
}

func newEngine(auth *fakeAuth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	group := engine.Group("/v1")
	NewIdentityServer(auth).RegisterPublic(group)

	protected := engine.Group("/v1")
	protected.Use(Authoriz(fakeTokenizer{}))
	protected.GET("/whoami", func(c *gin.Context) {
		id, ok := DesignerID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return engine
}

func post(engine *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestIdentityServer(t *testing.T) {
	designer := &domainid.Designer{ID: uuid.New(), Username: "daedalus"}
	engine := newEngine(&fakeAuth{registered: map[string]bool{"taken": true}, designer: designer})

	tests := []struct {
		name   string
		path   string
		body   gin.H
		status int
	}{
		{"register", "/v1/auth/register", gin.H{"username": "icarus", "password": "x"}, http.StatusCreated},
		{"register taken", "/v1/auth/register", gin.H{"username": "taken", "password": "x"}, http.StatusConflict},
		{"register weak", "/v1/auth/register", gin.H{"username": "weak", "password": "x"}, http.StatusBadRequest},
		{"register missing password", "/v1/auth/register", gin.H{"username": "icarus"}, http.StatusBadRequest},
		{"login wrong password", "/v1/auth/login", gin.H{"username": "daedalus", "password": "nope"}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, post(engine, tt.path, tt.body).Code)
		})
	}

	t.Run("login", func(t *testing.T) {
		w := post(engine, "/v1/auth/login", gin.H{"username": "daedalus", "password": "secret"})
		require.Equal(t, http.StatusOK, w.Code)

		var response AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, designer.ID.String(), response.ID)
		assert.Equal(t, "signed-token", response.Token)
	})
}

func TestAuthoriz(t *testing.T) {
	engine := newEngine(&fakeAuth{})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic valid", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"token without designer", "Bearer anonymous", http.StatusUnauthorized},
		{"valid", "Bearer valid", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "0b7c7c1e-7d8a-4f61-9a43-6a8b7e3c2d10", w.Body.String())
			}
		})
	}
}
