package project

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(seed []Project) (*fiber.App, *fakeImages) {
	s, _, images := newTestService(seed)
	h := NewHandler(s)
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app, images
}

func TestProjectHandler_CRUD(t *testing.T) {
	app, _ := newTestApp(nil)

	req := httptest.NewRequest("POST", "/api/v1/projects", strings.NewReader(`{"title":"Planta de tratamiento"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	var created Project
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))

	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/projects/"+created.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	req = httptest.NewRequest("PUT", "/api/v1/projects/"+created.ID, strings.NewReader(`{"title":"Planta II"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res, err = app.Test(httptest.NewRequest("DELETE", "/api/v1/projects/"+created.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/projects/"+created.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestProjectHandler_Errors(t *testing.T) {
	app, images := newTestApp([]Project{{ID: "p1", Title: "Obra"}})

	req := httptest.NewRequest("POST", "/api/v1/projects", strings.NewReader(`{"title":""}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	req = httptest.NewRequest("PUT", "/api/v1/projects/ghost", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)

	images.failing = true
	body, contentType := multipartBody(t, map[string]string{"title": "Con foto"}, "image", []byte("jpeg"))
	req = httptest.NewRequest("POST", "/api/v1/projects", body)
	req.Header.Set("Content-Type", contentType)
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, res.StatusCode)
}
