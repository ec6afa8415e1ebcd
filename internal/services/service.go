package services

import (
	"strings"
	"time"
)

// DefaultIcon is rendered for services without a stored icon.
const DefaultIcon = "Wrench"

// AllowedIcons is the fixed icon set a service may reference.
var AllowedIcons = []string{
	"Construction", "Zap", "Hammer", "Wrench", "Settings", "Building2",
	"Home", "Factory", "Cog", "HardHat", "Shield", "CheckCircle",
}

// Service is one offering listed in the services section.
type Service struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Tag         *string   `json:"tag"`
	IconName    *string   `json:"iconName"`
	ImageURL    *string   `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Icon returns the icon to display, falling back to DefaultIcon.
func (s Service) Icon() string {
	if s.IconName == nil {
		return DefaultIcon
	}
	return *s.IconName
}

type Form struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description"`
	Tag         string `json:"tag" form:"tag"`
	IconName    string `json:"iconName" form:"iconName"`
}

func (f *Form) normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Tag = strings.TrimSpace(f.Tag)
	f.IconName = NormalizeIcon(f.IconName)
}

// NormalizeIcon maps name onto the canonical spelling from AllowedIcons, or
// returns "" when it is not part of the set.
func NormalizeIcon(name string) string {
	name = strings.TrimSpace(name)
	for _, icon := range AllowedIcons {
		if strings.EqualFold(icon, name) {
			return icon
		}
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
