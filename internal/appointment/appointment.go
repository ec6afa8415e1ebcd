package appointment

import (
	"strings"
	"time"
)

// Appointment is a contact-form submission. It is never edited or removed.
type Appointment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	Message   *string   `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type Form struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Phone   string `json:"phone" form:"phone"`
	Email   string `json:"email" form:"email" validate:"required"`
	Message string `json:"message" form:"message"`
}

func (f *Form) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.TrimSpace(f.Email)
	f.Message = strings.TrimSpace(f.Message)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
