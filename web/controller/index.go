package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinecache/cinecache/logger"
	"github.com/cinecache/cinecache/web/service"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Username      string `json:"username" form:"username"`
	Password      string `json:"password" form:"password"`
	TwoFactorCode string `json:"twoFactorCode" form:"twoFactorCode"`
}

// SetupForm represents the one-time first-user bootstrap request.
type SetupForm struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required"`
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// IndexController handles login and the first-user bootstrap route.
type IndexController struct {
	authService *service.AuthService
	userService service.UserService
}

// NewIndexController creates a new IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup, authService *service.AuthService) *IndexController {
	a := &IndexController{authService: authService}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.POST("/login", a.login)
	g.POST("/setup-first-user", a.setupFirstUser)
}

// login authenticates the credential pair and answers with a bearer token.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if form.Username == "" || form.Password == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "username and password are required")
		return
	}

	token, user, err := a.authService.Login(form.Username, form.Password, form.TwoFactorCode)
	if err != nil {
		logger.Warningf("failed login for %q from %s", form.Username, getRemoteIp(c))
		pureJsonMsg(c, http.StatusUnauthorized, false, "invalid username or password")
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Username, getRemoteIp(c))
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// setupFirstUser creates the bootstrap admin while the users table is empty.
// Once any user exists the route is forbidden for good.
func (a *IndexController) setupFirstUser(c *gin.Context) {
	var form SetupForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}

	user, err := a.userService.SetupFirstUser(form.Name, form.Email, form.Username, form.Password)
	if errors.Is(err, service.ErrAlreadySetup) {
		pureJsonMsg(c, http.StatusForbidden, false, "setup already completed")
		return
	}
	if err != nil {
		jsonMsg(c, "Create first user", err)
		return
	}

	logger.Infof("first user %q created with admin role", user.Username)
	jsonMsgObj(c, "User created successfully", gin.H{"username": user.Username}, nil)
}
