package services

import (
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/wichananm65/disma-site/internal/media"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(c *Catalog) *Handler {
	return &Handler{catalog: c}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/api/v1/services", h.getServices)
	r.Get("/api/v1/services/:id", h.getService)
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Post("/api/v1/services", h.createService)
	r.Put("/api/v1/services/:id", h.updateService)
	r.Delete("/api/v1/services/:id", h.deleteService)
}

func (h *Handler) getServices(c *fiber.Ctx) error {
	list, err := h.catalog.ListByTag(c.UserContext(), strings.TrimSpace(c.Query("tag")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

func (h *Handler) getService(c *fiber.Ctx) error {
	s, err := h.catalog.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s)
}

func (h *Handler) createService(c *fiber.Ctx) error {
	var f Form
	if err := c.BodyParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	s, err := h.catalog.Create(c.UserContext(), f, imageField(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

func (h *Handler) updateService(c *fiber.Ctx) error {
	var f Form
	if err := c.BodyParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	s, err := h.catalog.Update(c.UserContext(), c.Params("id"), f, imageField(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s)
}

func (h *Handler) deleteService(c *fiber.Ctx) error {
	if err := h.catalog.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Service deleted"})
}

func imageField(c *fiber.Ctx) *multipart.FileHeader {
	if fh, err := c.FormFile("image"); err == nil {
		return fh
	}
	return nil
}

func writeError(c *fiber.Ctx, err error) error {
	status, msg := fiber.StatusInternalServerError, "could not complete the operation"
	switch {
	case errors.Is(err, ErrInvalid):
		status, msg = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, ErrNotFound):
		status, msg = fiber.StatusNotFound, "Service not found"
	case errors.Is(err, media.ErrUploadFailed):
		status, msg = fiber.StatusUnprocessableEntity, "upload failed"
	}
	return c.Status(status).JSON(fiber.Map{"message": msg})
}
