package presenter

import (
	"net/url"
	"strings"
	"time"

	"github.com/wichananm65/disma-site/internal/appointment"
	"github.com/wichananm65/disma-site/internal/product"
	"github.com/wichananm65/disma-site/internal/project"
	"github.com/wichananm65/disma-site/internal/services"
)

const dateLayout = "02/01/2006"

// Presenter shapes catalog entities for the HTML templates.
type Presenter struct {
	whatsAppNumber string
}

func NewPresenter(whatsAppNumber string) *Presenter {
	return &Presenter{whatsAppNumber: whatsAppNumber}
}

// Item is the flattened view of any catalog entry. Optional fields are empty
// strings instead of nil pointers so templates can test them directly.
type Item struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
	Price       string
	Category    string
	Tag         string
	IconName    string
	IconSlug    string
	WhatsAppURL string
	CreatedAt   string
}

type AppointmentRow struct {
	Name      string
	Phone     string
	Email     string
	Message   string
	CreatedAt string
}

// ContactURL links to the chat without a prefilled message.
func (p *Presenter) ContactURL() string {
	return "https://wa.me/" + p.whatsAppNumber
}

// WhatsAppURL builds a chat deep link asking about item.
func (p *Presenter) WhatsAppURL(item string) string {
	msg := "Hola, me interesa obtener más información sobre: " + item
	return p.ContactURL() + "?text=" + strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
}

func (p *Presenter) Products(list []product.Product) []Item {
	out := make([]Item, 0, len(list))
	for _, v := range list {
		out = append(out, Item{
			ID:          v.ID,
			Title:       v.Name,
			Description: deref(v.Description),
			ImageURL:    deref(v.ImageURL),
			Price:       deref(v.Price),
			Category:    deref(v.Category),
			WhatsAppURL: p.WhatsAppURL(v.Name),
			CreatedAt:   v.CreatedAt.Format(dateLayout),
		})
	}
	return out
}

func (p *Presenter) Projects(list []project.Project) []Item {
	out := make([]Item, 0, len(list))
	for _, v := range list {
		out = append(out, Item{
			ID:          v.ID,
			Title:       v.Title,
			Description: deref(v.Description),
			ImageURL:    deref(v.ImageURL),
			WhatsAppURL: p.WhatsAppURL(v.Title),
			CreatedAt:   v.CreatedAt.Format(dateLayout),
		})
	}
	return out
}

func (p *Presenter) Services(list []services.Service) []Item {
	out := make([]Item, 0, len(list))
	for _, v := range list {
		out = append(out, Item{
			ID:          v.ID,
			Title:       v.Title,
			Description: deref(v.Description),
			ImageURL:    deref(v.ImageURL),
			Tag:         deref(v.Tag),
			IconName:    deref(v.IconName),
			IconSlug:    IconSlug(v.Icon()),
			WhatsAppURL: p.WhatsAppURL(v.Title),
			CreatedAt:   v.CreatedAt.Format(dateLayout),
		})
	}
	return out
}

func (p *Presenter) Appointments(list []appointment.Appointment) []AppointmentRow {
	out := make([]AppointmentRow, 0, len(list))
	for _, a := range list {
		out = append(out, AppointmentRow{
			Name:      a.Name,
			Phone:     deref(a.Phone),
			Email:     deref(a.Email),
			Message:   deref(a.Message),
			CreatedAt: a.CreatedAt.Local().Format(dateLayout + " 15:04"),
		})
	}
	return out
}

// IconSlug converts an icon name such as "Building2" or "HardHat" to the
// kebab-case identifier used by the icon font ("building-2", "hard-hat").
func IconSlug(name string) string {
	var b strings.Builder
	for i, r := range name {
		isUpper := r >= 'A' && r <= 'Z'
		isDigit := r >= '0' && r <= '9'
		if i > 0 && (isUpper || isDigit) {
			b.WriteByte('-')
		}
		if isUpper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Year is exposed for the footer.
func Year() int {
	return time.Now().Year()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
