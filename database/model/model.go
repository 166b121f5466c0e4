package model

import "time"

// WatchStatus tracks a user's progress on a media item.
type WatchStatus string

const (
	Watched  WatchStatus = "watched"
	ToWatch  WatchStatus = "to-watch"
	Watching WatchStatus = "watching"
)

func (s WatchStatus) Valid() bool {
	switch s {
	case Watched, ToWatch, Watching:
		return true
	}
	return false
}

type MediaType string

const (
	Movie  MediaType = "movie"
	Series MediaType = "series"
	Anime  MediaType = "anime"
)

func (t MediaType) Valid() bool {
	switch t {
	case Movie, Series, Anime:
		return true
	}
	return false
}

// Media is a catalog entry independent of any user.
type Media struct {
	Id          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"index;not null"`
	Genre       string    `json:"genre"`
	MediaType   MediaType `json:"mediaType" gorm:"not null"`
	Actor       *string   `json:"actor,omitempty"`
	Character   *string   `json:"character,omitempty"`
	Seasons     *int      `json:"seasons,omitempty"`
	Episodes    *int      `json:"episodes,omitempty"`
	ReleaseDate time.Time `json:"releaseDate"`
}

// UserMedia joins one user to one media item with its watch state.
// Nothing prevents duplicate (user_id, media_id) pairs.
type UserMedia struct {
	Id        int         `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId    int         `json:"userId" gorm:"index;not null"`
	MediaId   int         `json:"mediaId" gorm:"index;not null"`
	Status    WatchStatus `json:"status" gorm:"not null"`
	Rating    *int        `json:"rating,omitempty"`
	AddedOn   time.Time   `json:"addedOn"`
	WatchedOn *time.Time  `json:"watchedOn,omitempty"`
}

func (UserMedia) TableName() string {
	return "user_media"
}

type Setting struct {
	Id    int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" form:"key"`
	Value string `json:"value" form:"value"`
}
