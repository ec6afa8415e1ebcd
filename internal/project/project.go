package project

import (
	"strings"
	"time"
)

// Project is a finished or ongoing job shown in the portfolio section.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Form struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description"`
}

func (f *Form) normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
