package service

import (
	"time"

	"github.com/cinecache/cinecache/database"
	"github.com/cinecache/cinecache/database/model"
)

// UserMediaUpdate carries a partial watch-state update.
type UserMediaUpdate struct {
	Status    *model.WatchStatus
	Rating    *int
	WatchedOn *time.Time
}

type UserMediaService struct {
	userService  UserService
	mediaService MediaService
}

func (s *UserMediaService) GetUserMedias(userId int) ([]model.UserMedia, error) {
	db := database.GetDB()
	var list []model.UserMedia
	err := db.Model(model.UserMedia{}).
		Where("user_id = ?", userId).
		Order("id ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// AddUserMedia creates a watch-state row for one user and one media item.
// Both referenced rows must exist at creation time; the check is explicit
// rather than left to foreign-key constraints. Duplicate (user, media) pairs
// are not rejected.
func (s *UserMediaService) AddUserMedia(userId int, mediaId int, status model.WatchStatus, rating *int) (*model.UserMedia, error) {
	user, err := s.userService.GetUser(userId)
	if err != nil {
		return nil, err
	}
	media, err := s.mediaService.GetMedia(mediaId)
	if err != nil {
		return nil, err
	}

	db := database.GetDB()
	userMedia := &model.UserMedia{
		UserId:  user.Id,
		MediaId: media.Id,
		Status:  status,
		Rating:  rating,
		AddedOn: time.Now(),
	}
	if err := db.Create(userMedia).Error; err != nil {
		return nil, err
	}
	return userMedia, nil
}

func (s *UserMediaService) UpdateUserMedia(id int, update UserMediaUpdate) (*model.UserMedia, error) {
	db := database.GetDB()
	userMedia := &model.UserMedia{}
	if err := db.First(userMedia, id).Error; err != nil {
		return nil, err
	}

	if update.Status != nil {
		userMedia.Status = *update.Status
	}
	if update.Rating != nil {
		userMedia.Rating = update.Rating
	}
	if update.WatchedOn != nil {
		userMedia.WatchedOn = update.WatchedOn
	}

	if err := db.Save(userMedia).Error; err != nil {
		return nil, err
	}
	return userMedia, nil
}

func (s *UserMediaService) DeleteUserMedia(id int) error {
	db := database.GetDB()
	userMedia := &model.UserMedia{}
	if err := db.First(userMedia, id).Error; err != nil {
		return err
	}
	return db.Delete(userMedia).Error
}
