package services

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServicesApp(seed ...Service) *fiber.App {
	c, _, _ := newCatalog(seed...)
	h := NewHandler(c)
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app
}

func TestServicesHandler_CreateListDelete(t *testing.T) {
	app := newServicesApp()

	req := httptest.NewRequest("POST", "/api/v1/services", strings.NewReader(`{"title":"Roofing","iconName":"Shield","tag":"Techos"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	var created Service
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	assert.Equal(t, "Shield", *created.IconName)

	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/services?tag=techos", nil))
	require.NoError(t, err)
	var list []Service
	require.NoError(t, json.NewDecoder(res.Body).Decode(&list))
	assert.Len(t, list, 1)

	res, err = app.Test(httptest.NewRequest("DELETE", "/api/v1/services/"+created.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/services/"+created.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestServicesHandler_BlankTitle(t *testing.T) {
	app := newServicesApp()

	req := httptest.NewRequest("POST", "/api/v1/services", strings.NewReader(`{"title":""}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}
