package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediasEmptyTableIs404(t *testing.T) {
	engine := setupRouter(t)

	w := doJSON(engine, http.MethodGet, "/medias/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMediaValidation(t *testing.T) {
	engine := setupRouter(t)

	// Missing required fields.
	w := doJSON(engine, http.MethodPost, "/media/", "", gin.H{
		"name": "Dune",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unrecognized enum value.
	w = doJSON(engine, http.MethodPost, "/media/", "", gin.H{
		"name":        "Dune",
		"genre":       "sci-fi",
		"mediaType":   "documentary",
		"releaseDate": "2021-10-22",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unparseable date.
	w = doJSON(engine, http.MethodPost, "/media/", "", gin.H{
		"name":        "Dune",
		"genre":       "sci-fi",
		"mediaType":   "movie",
		"releaseDate": "22/10/2021",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMediaCRUD(t *testing.T) {
	engine := setupRouter(t)

	w := doJSON(engine, http.MethodPost, "/media/", "", gin.H{
		"name":        "Frieren",
		"genre":       "fantasy",
		"mediaType":   "anime",
		"seasons":     1,
		"episodes":    28,
		"releaseDate": "2023-09-29",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(engine, http.MethodGet, "/media/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Media struct {
			Name      string `json:"name"`
			MediaType string `json:"mediaType"`
			Episodes  *int   `json:"episodes"`
		} `json:"media"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Frieren", resp.Media.Name)
	assert.Equal(t, "anime", resp.Media.MediaType)
	require.NotNil(t, resp.Media.Episodes)
	assert.Equal(t, 28, *resp.Media.Episodes)

	w = doJSON(engine, http.MethodPut, "/media/1", "", gin.H{
		"genre": "adventure",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(engine, http.MethodGet, "/medias/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(engine, http.MethodDelete, "/media/1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(engine, http.MethodGet, "/media/1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMediaNotFound(t *testing.T) {
	engine := setupRouter(t)

	w := doJSON(engine, http.MethodGet, "/media/42", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(engine, http.MethodPut, "/media/42", "", gin.H{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(engine, http.MethodDelete, "/media/42", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
