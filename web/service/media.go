package service

import (
	"time"

	"github.com/cinecache/cinecache/database"
	"github.com/cinecache/cinecache/database/model"
)

// MediaCreate carries the fields for creating or replacing a media entry.
// Optional fields stay nil when not supplied.
type MediaCreate struct {
	Name        string
	Genre       string
	MediaType   model.MediaType
	Actor       *string
	Character   *string
	Seasons     *int
	Episodes    *int
	ReleaseDate time.Time
}

type MediaService struct{}

func (s *MediaService) GetMedias() ([]model.Media, error) {
	db := database.GetDB()
	var medias []model.Media
	err := db.Model(model.Media{}).Order("id ASC").Find(&medias).Error
	if err != nil {
		return nil, err
	}
	return medias, nil
}

func (s *MediaService) GetMedia(id int) (*model.Media, error) {
	db := database.GetDB()
	media := &model.Media{}
	err := db.First(media, id).Error
	if err != nil {
		return nil, err
	}
	return media, nil
}

func (s *MediaService) CreateMedia(create MediaCreate) (*model.Media, error) {
	db := database.GetDB()
	media := &model.Media{
		Name:        create.Name,
		Genre:       create.Genre,
		MediaType:   create.MediaType,
		Actor:       create.Actor,
		Character:   create.Character,
		Seasons:     create.Seasons,
		Episodes:    create.Episodes,
		ReleaseDate: create.ReleaseDate,
	}
	if err := db.Create(media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// UpdateMedia overwrites the stored entry with the supplied fields. Optional
// fields left nil keep their stored value.
func (s *MediaService) UpdateMedia(id int, update MediaCreate) (*model.Media, error) {
	db := database.GetDB()
	media := &model.Media{}
	if err := db.First(media, id).Error; err != nil {
		return nil, err
	}

	if update.Name != "" {
		media.Name = update.Name
	}
	if update.Genre != "" {
		media.Genre = update.Genre
	}
	if update.MediaType != "" {
		media.MediaType = update.MediaType
	}
	if update.Actor != nil {
		media.Actor = update.Actor
	}
	if update.Character != nil {
		media.Character = update.Character
	}
	if update.Seasons != nil {
		media.Seasons = update.Seasons
	}
	if update.Episodes != nil {
		media.Episodes = update.Episodes
	}
	if !update.ReleaseDate.IsZero() {
		media.ReleaseDate = update.ReleaseDate
	}

	if err := db.Save(media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

func (s *MediaService) DeleteMedia(id int) error {
	db := database.GetDB()
	media := &model.Media{}
	if err := db.First(media, id).Error; err != nil {
		return err
	}
	return db.Delete(media).Error
}
