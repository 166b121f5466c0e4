package controller

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSetupFirstUserOnce(t *testing.T) {
	engine := setupRouter(t)

	body := gin.H{
		"name":     "Admin",
		"email":    "admin@example.com",
		"username": "admin",
		"password": "admin-pw",
	}
	w := doJSON(engine, http.MethodPost, "/setup-first-user", "", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")

	// Any existing user forbids the bootstrap route for good.
	w = doJSON(engine, http.MethodPost, "/setup-first-user", "", gin.H{
		"name":     "Other",
		"email":    "other@example.com",
		"username": "other",
		"password": "other-pw",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSetupFirstUserValidation(t *testing.T) {
	engine := setupRouter(t)

	w := doJSON(engine, http.MethodPost, "/setup-first-user", "", gin.H{
		"name": "Admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	engine := setupRouter(t)
	setupAdmin(t, engine)

	w := doJSON(engine, http.MethodPost, "/login", "", gin.H{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(engine, http.MethodPost, "/login", "", gin.H{
		"username": "ghost",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(engine, http.MethodPost, "/login", "", gin.H{
		"username": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// setupAdmin already proved the success path issues a bearer token.
}
