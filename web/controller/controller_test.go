package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/require"

	"github.com/cinecache/cinecache/database"
	"github.com/cinecache/cinecache/logger"
	"github.com/cinecache/cinecache/web/service"
)

var initLoggerOnce sync.Once

// setupRouter builds an engine with all controllers against a throwaway
// database file, mirroring the production route table.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("CINECACHE_JWT_SECRET", "test-secret")
	t.Setenv("CINECACHE_LOG_FOLDER", t.TempDir())
	initLoggerOnce.Do(func() {
		logger.InitLogger(logging.ERROR)
	})

	removeTestDB()
	require.NoError(t, database.InitDB("test.db"))
	t.Cleanup(func() {
		if db, err := database.GetDB().DB(); err == nil {
			db.Close()
		}
		removeTestDB()
	})

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	g := engine.Group("/")

	authService := service.NewAuthService()
	NewIndexController(g, authService)
	NewUserController(g, authService)
	NewMediaController(g)
	NewUserMediaController(g)
	NewServerController(g, authService)

	return engine
}

func removeTestDB() {
	for _, name := range []string{"test.db", "test.db-wal", "test.db-shm"} {
		os.Remove(name)
	}
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(engine *gin.Engine, method string, path string, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// setupAdmin bootstraps the first admin user and returns a bearer token.
func setupAdmin(t *testing.T, engine *gin.Engine) string {
	t.Helper()
	w := doJSON(engine, http.MethodPost, "/setup-first-user", "", gin.H{
		"name":     "Admin",
		"email":    "admin@example.com",
		"username": "admin",
		"password": "admin-pw",
	})
	require.Equal(t, http.StatusOK, w.Code)
	return login(t, engine, "admin", "admin-pw")
}

func login(t *testing.T, engine *gin.Engine, username string, password string) string {
	t.Helper()
	w := doJSON(engine, http.MethodPost, "/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "bearer", resp.TokenType)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

// createUser adds a plain user through the admin route.
func createUser(t *testing.T, engine *gin.Engine, adminToken string, username string) {
	t.Helper()
	w := doJSON(engine, http.MethodPost, "/user/", adminToken, gin.H{
		"name":     username,
		"email":    username + "@example.com",
		"username": username,
		"password": username + "-pw",
	})
	require.Equal(t, http.StatusOK, w.Code)
}
