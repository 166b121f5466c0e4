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

const dateLayout = "2006-01-02"

type MediaForm struct {
	Name        string  `json:"name" form:"name"`
	Genre       string  `json:"genre" form:"genre"`
	MediaType   string  `json:"mediaType" form:"mediaType"`
	Actor       *string `json:"actor" form:"actor"`
	Character   *string `json:"character" form:"character"`
	Seasons     *int    `json:"seasons" form:"seasons"`
	Episodes    *int    `json:"episodes" form:"episodes"`
	ReleaseDate string  `json:"releaseDate" form:"releaseDate"`
}

// toCreate validates the enum and date at the boundary and builds the
// service-level payload. requireAll enforces the mandatory creation fields.
func (f *MediaForm) toCreate(requireAll bool) (service.MediaCreate, string) {
	create := service.MediaCreate{
		Name:      f.Name,
		Genre:     f.Genre,
		Actor:     f.Actor,
		Character: f.Character,
		Seasons:   f.Seasons,
		Episodes:  f.Episodes,
	}

	if requireAll && (f.Name == "" || f.Genre == "" || f.MediaType == "" || f.ReleaseDate == "") {
		return create, "name, genre, mediaType and releaseDate are required"
	}

	if f.MediaType != "" {
		mediaType := model.MediaType(f.MediaType)
		if !mediaType.Valid() {
			return create, "unrecognized media type " + f.MediaType
		}
		create.MediaType = mediaType
	}

	if f.ReleaseDate != "" {
		releaseDate, err := time.Parse(dateLayout, f.ReleaseDate)
		if err != nil {
			return create, "release date must be formatted as " + dateLayout
		}
		create.ReleaseDate = releaseDate
	}

	return create, ""
}

// MediaController handles the media catalog CRUD routes.
type MediaController struct {
	mediaService service.MediaService
}

func NewMediaController(g *gin.RouterGroup) *MediaController {
	a := &MediaController{}
	a.initRouter(g)
	return a
}

func (a *MediaController) initRouter(g *gin.RouterGroup) {
	g.GET("/medias/", a.getMedias)
	g.GET("/media/:id", a.getMedia)
	g.POST("/media/", a.addMedia)
	g.PUT("/media/:id", a.updateMedia)
	g.DELETE("/media/:id", a.deleteMedia)
}

func (a *MediaController) getMedias(c *gin.Context) {
	medias, err := a.mediaService.GetMedias()
	if err != nil {
		jsonMsg(c, "Get medias", err)
		return
	}
	if len(medias) == 0 {
		pureJsonMsg(c, http.StatusNotFound, false, "no media found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"medias": medias})
}

func (a *MediaController) getMedia(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid media id")
		return
	}
	media, err := a.mediaService.GetMedia(id)
	if database.IsNotFound(err) {
		pureJsonMsg(c, http.StatusNotFound, false, "no media with id "+c.Param("id")+" found")
		return
	}
	if err != nil {
		jsonMsg(c, "Get media", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": media})
}

func (a *MediaController) addMedia(c *gin.Context) {
	var form MediaForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	create, problem := form.toCreate(true)
	if problem != "" {
		pureJsonMsg(c, http.StatusBadRequest, false, problem)
		return
	}

	media, err := a.mediaService.CreateMedia(create)
	if err != nil {
		jsonMsg(c, "Create media", err)
		return
	}
	jsonMsgObj(c, "Media created successfully", gin.H{"id": media.Id}, nil)
}

func (a *MediaController) updateMedia(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid media id")
		return
	}
	var form MediaForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	update, problem := form.toCreate(false)
	if problem != "" {
		pureJsonMsg(c, http.StatusBadRequest, false, problem)
		return
	}

	_, err = a.mediaService.UpdateMedia(id, update)
	if database.IsNotFound(err) {
		pureJsonMsg(c, http.StatusNotFound, false, "no media with id "+c.Param("id")+" found")
		return
	}
	jsonMsg(c, "Media updated successfully", err)
}

func (a *MediaController) deleteMedia(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid media id")
		return
	}
	err = a.mediaService.DeleteMedia(id)
	if database.IsNotFound(err) {
		pureJsonMsg(c, http.StatusNotFound, false, "no media with id "+c.Param("id")+" found")
		return
	}
	jsonMsg(c, "Media deleted successfully", err)
}
