package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cinecache/cinecache/database"
	"github.com/cinecache/cinecache/database/model"
	"github.com/cinecache/cinecache/web/service"
)

type UserMediaCreateForm struct {
	MediaId int    `json:"mediaId" form:"mediaId" binding:"required"`
	Status  string `json:"status" form:"status" binding:"required"`
	Rating  *int   `json:"rating" form:"rating"`
}

type UserMediaUpdateForm struct {
	Status    *string `json:"status" form:"status"`
	Rating    *int    `json:"rating" form:"rating"`
	WatchedOn *string `json:"watchedOn" form:"watchedOn"`
}

// UserMediaController handles the per-user watch-state routes.
type UserMediaController struct {
	userMediaService service.UserMediaService
}

func NewUserMediaController(g *gin.RouterGroup) *UserMediaController {
	a := &UserMediaController{}
	a.initRouter(g)
	return a
}

func (a *UserMediaController) initRouter(g *gin.RouterGroup) {
	g.GET("/user/:id/media/", a.getUserMedias)
	g.POST("/user/:id/media/", a.addUserMedia)
	g.PUT("/user/media/:id", a.updateUserMedia)
	g.DELETE("/user/media/:id", a.deleteUserMedia)
}

func (a *UserMediaController) getUserMedias(c *gin.Context) {
	userId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid user id")
		return
	}
	list, err := a.userMediaService.GetUserMedias(userId)
	if err != nil {
		jsonMsg(c, "Get user media", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_media": list})
}

// addUserMedia creates a watch-state row after checking that both the user
// and the media item exist.
func (a *UserMediaController) addUserMedia(c *gin.Context) {
	userId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid user id")
		return
	}
	var form UserMediaCreateForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	status := model.WatchStatus(form.Status)
	if !status.Valid() {
		pureJsonMsg(c, http.StatusBadRequest, false, "unrecognized watch status "+form.Status)
		return
	}

	userMedia, err := a.userMediaService.AddUserMedia(userId, form.MediaId, status, form.Rating)
	if database.IsNotFound(err) {
		pureJsonMsg(c, http.StatusNotFound, false, "referenced user or media not found")
		return
	}
	if err != nil {
		jsonMsg(c, "Create user media", err)
		return
	}
	jsonMsgObj(c, "User media created successfully", gin.H{"id": userMedia.Id}, nil)
}

func (a *UserMediaController) updateUserMedia(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid user media id")
		return
	}
	var form UserMediaUpdateForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}

	update := service.UserMediaUpdate{Rating: form.Rating}
	if form.Status != nil {
		status := model.WatchStatus(*form.Status)
		if !status.Valid() {
			pureJsonMsg(c, http.StatusBadRequest, false, "unrecognized watch status "+*form.Status)
			return
		}
		update.Status = &status
	}
	if form.WatchedOn != nil {
		watchedOn, err := time.Parse(dateLayout, *form.WatchedOn)
		if err != nil {
			pureJsonMsg(c, http.StatusBadRequest, false, "watched date must be formatted as "+dateLayout)
			return
		}
		update.WatchedOn = &watchedOn
	}

	_, err = a.userMediaService.UpdateUserMedia(id, update)
	if database.IsNotFound(err) {
		pureJsonMsg(c, http.StatusNotFound, false, "no user media with id "+c.Param("id")+" found")
		return
	}
	jsonMsg(c, "User media updated successfully", err)
}

func (a *UserMediaController) deleteUserMedia(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid user media id")
		return
	}
	err = a.userMediaService.DeleteUserMedia(id)
	if database.IsNotFound(err) {
		pureJsonMsg(c, http.StatusNotFound, false, "no user media with id "+c.Param("id")+" found")
		return
	}
	jsonMsg(c, "User media deleted successfully", err)
}
