package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cinecache/cinecache/database"
	"github.com/cinecache/cinecache/web/middleware"
	"github.com/cinecache/cinecache/web/service"
)

type UserCreateForm struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required"`
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	Role     string `json:"role" form:"role"`
}

type UserUpdateForm struct {
	Name     *string `json:"name" form:"name"`
	Email    *string `json:"email" form:"email"`
	Username *string `json:"username" form:"username"`
	Password *string `json:"password" form:"password"`
}

// UserController handles the user CRUD routes. Each route names its guards
// explicitly; DELETE and POST additionally require the admin role, so the
// role check runs before any existence check.
type UserController struct {
	userService service.UserService
}

func NewUserController(g *gin.RouterGroup, authService *service.AuthService) *UserController {
	a := &UserController{}
	a.initRouter(g, authService)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup, authService *service.AuthService) {
	auth := middleware.AuthRequired(authService)
	admin := middleware.RequireRole("admin")

	g.GET("/users/", auth, a.getUsers)
	g.GET("/user/:id", auth, a.getUser)
	g.POST("/user/", auth, admin, a.addUser)
	g.PUT("/user/:id", auth, a.updateUser)
	g.DELETE("/user/:id", auth, admin, a.deleteUser)
}

// getUsers lists all users. An empty table answers 404, not an empty list,
// matching the long-standing behavior clients depend on.
func (a *UserController) getUsers(c *gin.Context) {
	users, err := a.userService.GetUsers()
	if err != nil {
		jsonMsg(c, "Get users", err)
		return
	}
	if len(users) == 0 {
		pureJsonMsg(c, http.StatusNotFound, false, "no users found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (a *UserController) getUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid user id")
		return
	}
	user, err := a.userService.GetUser(id)
	if database.IsNotFound(err) {
		pureJsonMsg(c, http.StatusNotFound, false, "no user with id "+c.Param("id")+" found")
		return
	}
	if err != nil {
		jsonMsg(c, "Get user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (a *UserController) addUser(c *gin.Context) {
	var form UserCreateForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}

	user, err := a.userService.CreateUser(form.Name, form.Email, form.Username, form.Password, form.Role)
	if errors.Is(err, service.ErrUnknownRole) {
		pureJsonMsg(c, http.StatusBadRequest, false, "unknown role "+form.Role)
		return
	}
	if err != nil {
		jsonMsg(c, "Create user", err)
		return
	}
	jsonMsgObj(c, "User created successfully", gin.H{"id": user.Id}, nil)
}

// updateUser applies a partial update: absent fields keep their stored value.
func (a *UserController) updateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid user id")
		return
	}
	var form UserUpdateForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}

	_, err = a.userService.UpdateUser(id, service.UserUpdate{
		Name:     form.Name,
		Email:    form.Email,
		Username: form.Username,
		Password: form.Password,
	})
	if database.IsNotFound(err) {
		pureJsonMsg(c, http.StatusNotFound, false, "no user with id "+c.Param("id")+" found")
		return
	}
	jsonMsg(c, "User updated successfully", err)
}

func (a *UserController) deleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid user id")
		return
	}
	err = a.userService.DeleteUser(id)
	if database.IsNotFound(err) {
		pureJsonMsg(c, http.StatusNotFound, false, "no user with id "+c.Param("id")+" found")
		return
	}
	jsonMsg(c, "User deleted successfully", err)
}
