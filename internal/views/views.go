// Package views holds the HTML pages and the plain data they render.
package views

import (
	"embed"
	"html/template"
	"net/http"

	"reviewboard/internal/models"
)

const (
	IndexPage = "index.html"
	UsersPage = "users.html"
	ErrorPage = "error.html"

	TimestampLayout = "2006-01-02 15:04:05.000000"
)

// Field limits, matching the column sizes in models.
const (
	MaxUsernameLen = 80
	MaxEmailLen    = 120
	MaxTextLen     = 200
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every embedded page.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

type IndexData struct {
	MaxUsername int
	MaxEmail    int
	MaxText     int
}

func NewIndexData() IndexData {
	return IndexData{
		MaxUsername: MaxUsernameLen,
		MaxEmail:    MaxEmailLen,
		MaxText:     MaxTextLen,
	}
}

type ReviewView struct {
	Text      string
	Timestamp string
}

type UserView struct {
	Username string
	Email    string
	Reviews  []ReviewView
}

type UsersData struct {
	Users []UserView
}

// NewUsersData flattens stored users into what the listing page shows.
func NewUsersData(users []models.User) UsersData {
	data := UsersData{Users: make([]UserView, 0, len(users))}
	for _, u := range users {
		uv := UserView{
			Username: u.Username,
			Email:    u.Email,
			Reviews:  make([]ReviewView, 0, len(u.Reviews)),
		}
		for _, r := range u.Reviews {
			uv.Reviews = append(uv.Reviews, ReviewView{
				Text:      r.Text,
				Timestamp: r.Timestamp.UTC().Format(TimestampLayout),
			})
		}
		data.Users = append(data.Users, uv)
	}
	return data
}

type ErrorData struct {
	Status  int
	Title   string
	Message string
}

func NewErrorData(status int, message string) ErrorData {
	return ErrorData{
		Status:  status,
		Title:   http.StatusText(status),
		Message: message,
	}
}
