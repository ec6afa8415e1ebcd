package product

import (
	"strings"
	"time"
)

// Product represents a catalog product and maps to the `products` table.
// Optional columns are pointers so they serialize as null when unset.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       *string   `json:"price"`
	ImageURL    *string   `json:"imageUrl"`
	Category    *string   `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Form is the create/update payload, accepted as JSON or as a (multipart) form.
type Form struct {
	Name        string `json:"name" form:"name" validate:"required"`
	Description string `json:"description" form:"description"`
	Price       string `json:"price" form:"price"`
	Category    string `json:"category" form:"category"`
}

func (f *Form) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Price = strings.TrimSpace(f.Price)
	f.Category = strings.TrimSpace(f.Category)
}

// optional maps an empty form value to NULL.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
