package api

import (
	"fmt"
	"net/http"

	"reviewboard/internal/views"
	"reviewboard/internal/websocket"

	"github.com/gin-gonic/gin"
)

// Server wraps the HTTP router
type Server struct {
	handler *Handler
	router  *gin.Engine
	hub     *websocket.Hub
}

// NewServer creates a new server with all routes registered
func NewServer(svc ReviewService, hub *websocket.Hub) (*Server, error) {
	handler := NewHandler(svc, hub)

	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	// gin.New() so the request log format is ours
	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	router.Use(RequestID())
	router.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		// Health probes are too noisy to log
		if param.Path == "/healthz" {
			return ""
		}
		requestID, _ := param.Keys[requestIDKey].(string)
		return fmt.Sprintf("[%s] %s %s %s %d %s %s \"%s\" %s\n",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			requestID,
			param.ClientIP,
			param.Method,
			param.StatusCode,
			param.Latency,
			param.Path,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		c.HTML(http.StatusInternalServerError, views.ErrorPage,
			views.NewErrorData(http.StatusInternalServerError, "Something went wrong."))
		c.Abort()
	}))

	router.GET("/", handler.Index)
	router.GET("/users", handler.ListUsers)
	router.POST("/create_review", handler.CreateReview)

	router.GET("/ws", websocket.HandleWebSocket(hub))
	router.GET("/healthz", handler.Health)

	router.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, views.ErrorPage,
			views.NewErrorData(http.StatusNotFound, "No such page."))
	})

	return &Server{
		handler: handler,
		router:  router,
		hub:     hub,
	}, nil
}

// GetRouter returns the router
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
