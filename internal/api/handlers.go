package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"reviewboard/internal/models"
	"reviewboard/internal/reviews"
	"reviewboard/internal/views"
	"reviewboard/internal/websocket"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// ReviewService is what the handlers need from the review store
type ReviewService interface {
	Submit(ctx context.Context, sub reviews.Submission) (*models.Review, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	Ping(ctx context.Context) error
}

// Handler contains the page handlers
type Handler struct {
	reviews ReviewService
	hub     *websocket.Hub
}

// NewHandler creates a new handler
func NewHandler(svc ReviewService, hub *websocket.Hub) *Handler {
	return &Handler{
		reviews: svc,
		hub:     hub,
	}
}

// CreateReviewRequest is the posted review form
type CreateReviewRequest struct {
	Username string `form:"username" binding:"required,max=80"`
	Email    string `form:"email" binding:"required,max=120"`
	Text     string `form:"text" binding:"required,max=200"`
}

// ReviewEvent is broadcast on the live feed after a review is stored
type ReviewEvent struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Index renders the submission form
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, views.IndexPage, views.NewIndexData())
}

// ListUsers renders every user with their reviews
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.reviews.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	c.HTML(http.StatusOK, views.UsersPage, views.NewUsersData(users))
}

// CreateReview stores a review for the (username, email) pair and redirects home
func (h *Handler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	review, err := h.reviews.Submit(c.Request.Context(), reviews.Submission{
		Username: req.Username,
		Email:    req.Email,
		Text:     req.Text,
	})
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage("review_created", ReviewEvent{
			Username:  req.Username,
			Email:     req.Email,
			Text:      review.Text,
			Timestamp: review.Timestamp,
		}))
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// Health reports whether the store is reachable
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.reviews.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// fail logs err and renders the error page. Server errors keep their details
// in the log only.
func (h *Handler) fail(c *gin.Context, status int, err error) {
	_ = c.Error(err)

	requestID := c.GetString(requestIDKey)
	message := "Something went wrong."
	switch {
	case status < http.StatusInternalServerError:
		message = err.Error()
		log.Printf("[%s] rejected %s %s: %v", requestID, c.Request.Method, c.Request.URL.Path, err)
	case errors.Is(err, reviews.ErrUserConflict):
		log.Printf("[%s] user conflict: %v", requestID, err)
	default:
		log.Printf("[%s] %s %s failed: %v", requestID, c.Request.Method, c.Request.URL.Path, err)
	}

	c.HTML(status, views.ErrorPage, views.NewErrorData(status, message))
}
