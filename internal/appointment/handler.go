package appointment

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Post("/api/v1/appointments", h.createAppointment)
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/api/v1/appointments", h.getAppointments)
}

func (h *Handler) createAppointment(c *fiber.Ctx) error {
	f := new(Form)
	if err := c.BodyParser(f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	a, err := h.service.Create(c.UserContext(), *f)
	if errors.Is(err, ErrInvalid) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not complete the operation"})
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *Handler) getAppointments(c *fiber.Ctx) error {
	list, err := h.service.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not complete the operation"})
	}
	return c.JSON(list)
}
