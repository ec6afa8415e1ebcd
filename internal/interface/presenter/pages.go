package presenter

import (
	"github.com/wichananm65/disma-site/internal/category"
	"github.com/wichananm65/disma-site/internal/services"
)

// Landing is the view model of the public home page.
type Landing struct {
	Services   []Item
	Projects   []Item
	Products   []Item
	ContactURL string
	// Contact is "ok" or "error" after a contact form submission.
	Contact string
	Year    int
}

// Tab is one section of the admin dashboard.
type Tab struct {
	Key    string
	Label  string
	Active bool
}

var adminTabs = []Tab{
	{Key: "products", Label: "Productos"},
	{Key: "projects", Label: "Proyectos"},
	{Key: "services", Label: "Servicios"},
	{Key: "appointments", Label: "Citas"},
}

// ValidTab reports whether key names a dashboard tab.
func ValidTab(key string) bool {
	for _, t := range adminTabs {
		if t.Key == key {
			return true
		}
	}
	return false
}

// Dashboard is the view model of the admin panel.
type Dashboard struct {
	Tabs         []Tab
	Active       string
	Flash        string
	FlashError   bool
	Products     []Item
	Projects     []Item
	Services     []Item
	Appointments []AppointmentRow
	Icons        []string
	// Categories and Tags feed the form suggestions.
	Categories []string
	Tags       []string
}

func FacetNames(facets []category.Facet) []string {
	out := make([]string, 0, len(facets))
	for _, f := range facets {
		out = append(out, f.Name)
	}
	return out
}

var flashMessages = map[string]string{
	"created": "Guardado correctamente",
	"updated": "Cambios guardados",
	"deleted": "Eliminado correctamente",
	"error":   "No se pudo completar la operación",
	"upload":  "Error al subir la imagen",
}

// NewDashboard selects the active tab (defaulting to products) and resolves
// the status flag into a user message.
func NewDashboard(active, status string) Dashboard {
	if !ValidTab(active) {
		active = "products"
	}
	tabs := make([]Tab, len(adminTabs))
	copy(tabs, adminTabs)
	for i := range tabs {
		tabs[i].Active = tabs[i].Key == active
	}
	return Dashboard{
		Tabs:       tabs,
		Active:     active,
		Flash:      flashMessages[status],
		FlashError: status == "error" || status == "upload",
		Icons:      services.AllowedIcons,
	}
}
