package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinecache/cinecache/database"
	"github.com/cinecache/cinecache/database/model"
)

func TestMediaCRUD(t *testing.T) {
	setup(t)
	defer teardown()

	service := MediaService{}

	actor := "Timothee Chalamet"
	media, err := service.CreateMedia(MediaCreate{
		Name:        "Dune",
		Genre:       "sci-fi",
		MediaType:   model.Movie,
		Actor:       &actor,
		ReleaseDate: time.Date(2021, 10, 22, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotZero(t, media.Id)

	retrieved, err := service.GetMedia(media.Id)
	require.NoError(t, err)
	assert.Equal(t, "Dune", retrieved.Name)
	require.NotNil(t, retrieved.Actor)
	assert.Equal(t, actor, *retrieved.Actor)
	assert.Nil(t, retrieved.Seasons)

	medias, err := service.GetMedias()
	require.NoError(t, err)
	assert.Len(t, medias, 1)

	seasons := 2
	_, err = service.UpdateMedia(media.Id, MediaCreate{Name: "Dune: Part Two", Seasons: &seasons})
	require.NoError(t, err)
	updated, err := service.GetMedia(media.Id)
	require.NoError(t, err)
	assert.Equal(t, "Dune: Part Two", updated.Name)
	assert.Equal(t, "sci-fi", updated.Genre)
	require.NotNil(t, updated.Seasons)
	assert.Equal(t, 2, *updated.Seasons)

	require.NoError(t, service.DeleteMedia(media.Id))
	_, err = service.GetMedia(media.Id)
	assert.True(t, database.IsNotFound(err))
}

func TestMediaNotFound(t *testing.T) {
	setup(t)
	defer teardown()

	service := MediaService{}

	_, err := service.GetMedia(42)
	assert.True(t, database.IsNotFound(err))

	_, err = service.UpdateMedia(42, MediaCreate{Name: "x"})
	assert.True(t, database.IsNotFound(err))

	err = service.DeleteMedia(42)
	assert.True(t, database.IsNotFound(err))
}
