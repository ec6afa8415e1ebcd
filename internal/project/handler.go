package project

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/disma-site/internal/media"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/api/v1/projects", h.getProjects)
	r.Get("/api/v1/projects/:id", h.getProject)
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Post("/api/v1/projects", h.createProject)
	r.Put("/api/v1/projects/:id", h.updateProject)
	r.Delete("/api/v1/projects/:id", h.deleteProject)
}

func (h *Handler) getProjects(c *fiber.Ctx) error {
	projects, err := h.service.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(projects)
}

func (h *Handler) getProject(c *fiber.Ctx) error {
	p, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) createProject(c *fiber.Ctx) error {
	payload := new(Form)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	image, _ := c.FormFile("image")

	created, err := h.service.Create(c.UserContext(), *payload, image)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProject(c *fiber.Ctx) error {
	payload := new(Form)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	image, _ := c.FormFile("image")

	updated, err := h.service.Update(c.UserContext(), c.Params("id"), *payload, image)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProject(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Project deleted"})
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Project not found"})
	case errors.Is(err, media.ErrUploadFailed):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "upload failed"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not complete the operation"})
}
