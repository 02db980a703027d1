package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"reviewboard/internal/models"

	"gorm.io/gorm"
)

// ErrUserConflict means the username or the email already belongs to a
// different user.
var ErrUserConflict = errors.New("username or email already taken by another user")

// Submission is one posted review form.
type Submission struct {
	Username string
	Email    string
	Text     string
}

// Service manages users and their reviews
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// NewService creates a new review service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Submit finds or creates the user matching both username and email and
// attaches a new review to it. Both writes commit together or not at all.
func (s *Service) Submit(ctx context.Context, sub Submission) (*models.Review, error) {
	var review *models.Review

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findOrCreateUser(tx, sub.Username, sub.Email)
		if err != nil {
			return err
		}

		review = &models.Review{
			Text:      sub.Text,
			Timestamp: s.now(),
			UserID:    user.ID,
			User:      user,
		}
		// Omit the association so the user row is never re-upserted
		if err := tx.Omit("User").Create(review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

func findOrCreateUser(tx *gorm.DB, username, email string) (*models.User, error) {
	var user models.User
	err := tx.Where("username = ? AND email = ?", username, email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user = models.User{Username: username, Email: email}
	if err := tx.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create user %q: %w", username, ErrUserConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// isUniqueViolation also matches raw driver messages for dialectors that
// don't translate errors.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// ListUsers returns every user with their reviews, in store order.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Preload("Reviews").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Ping checks that the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
