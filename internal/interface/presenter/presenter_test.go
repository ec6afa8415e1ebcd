package presenter

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/disma-site/internal/category"
	"github.com/wichananm65/disma-site/internal/product"
	"github.com/wichananm65/disma-site/internal/services"
)

func TestWhatsAppURL(t *testing.T) {
	p := NewPresenter("51965282183")

	link := p.WhatsAppURL("Acabados Premium")
	require.True(t, strings.HasPrefix(link, "https://wa.me/51965282183?text="))
	assert.NotContains(t, link, "+")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Hola, me interesa obtener más información sobre: Acabados Premium", u.Query().Get("text"))
}

func TestIconSlug(t *testing.T) {
	cases := map[string]string{
		"Wrench":      "wrench",
		"Building2":   "building-2",
		"HardHat":     "hard-hat",
		"CheckCircle": "check-circle",
	}
	for in, want := range cases {
		assert.Equal(t, want, IconSlug(in), in)
	}
}

func TestServices_DefaultIcon(t *testing.T) {
	p := NewPresenter("1")
	zap := "Zap"
	items := p.Services([]services.Service{
		{ID: "a", Title: "Sin icono"},
		{ID: "b", Title: "Con icono", IconName: &zap},
	})
	require.Len(t, items, 2)
	assert.Equal(t, "wrench", items[0].IconSlug)
	assert.Empty(t, items[0].IconName)
	assert.Equal(t, "zap", items[1].IconSlug)
}

func TestProducts_FlattensOptionals(t *testing.T) {
	price := "Consulte"
	items := NewPresenter("1").Products([]product.Product{{
		ID: "p", Name: "Cemento", Price: &price, CreatedAt: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
	}})
	require.Len(t, items, 1)
	assert.Equal(t, "Consulte", items[0].Price)
	assert.Empty(t, items[0].ImageURL)
	assert.Equal(t, "09/03/2024", items[0].CreatedAt)
}

func TestNewDashboard(t *testing.T) {
	d := NewDashboard("bogus", "upload")
	assert.Equal(t, "products", d.Active)
	assert.True(t, d.FlashError)
	assert.Equal(t, "Error al subir la imagen", d.Flash)

	d = NewDashboard("services", "created")
	assert.Equal(t, "services", d.Active)
	assert.False(t, d.FlashError)
	for _, tab := range d.Tabs {
		assert.Equal(t, tab.Key == "services", tab.Active)
	}
	assert.Len(t, d.Icons, 12)
}

func TestFacetNames(t *testing.T) {
	names := FacetNames([]category.Facet{{Name: "Acabados", Count: 1}, {Name: "Materiales", Count: 4}})
	assert.Equal(t, []string{"Acabados", "Materiales"}, names)
}
