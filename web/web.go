// Package web provides the HTTP server for the cinecache API: router
// assembly, per-route access guards, and graceful start/stop.
package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/cinecache/cinecache/config"
	"github.com/cinecache/cinecache/logger"
	"github.com/cinecache/cinecache/util/common"
	"github.com/cinecache/cinecache/web/controller"
	"github.com/cinecache/cinecache/web/service"
)

// Server hosts the API: one controller per resource, services shared where
// routes need the same state.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index     *controller.IndexController
	user      *controller.UserController
	media     *controller.MediaController
	userMedia *controller.UserMediaController
	server    *controller.ServerController

	authService    *service.AuthService
	settingService service.SettingService

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// initRouter initializes Gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	g := engine.Group("/")
	s.index = controller.NewIndexController(g, s.authService)
	s.user = controller.NewUserController(g, s.authService)
	s.media = controller.NewMediaController(g)
	s.userMedia = controller.NewUserMediaController(g)
	s.server = controller.NewServerController(g, s.authService)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// Start initializes and starts the web server. It refuses to start without a
// signing secret rather than running with auth silently disabled.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	if config.GetJWTSecret() == "" {
		return common.NewError("CINECACHE_JWT_SECRET is not set")
	}
	s.authService = service.NewAuthService()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listen, err := s.settingService.GetListen()
	if err != nil {
		return err
	}
	port, err := s.settingService.GetPort()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(listen, strconv.Itoa(port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		defer common.Recover("web server serve")
		_ = s.httpServer.Serve(listener)
	}()

	return nil
}

// Stop gracefully shuts down the web server.
func (s *Server) Stop() error {
	s.cancel()
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
