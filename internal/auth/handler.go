package auth

import "github.com/gofiber/fiber/v2"

type Handler struct {
	gate *Gate
}

func NewHandler(g *Gate) *Handler {
	return &Handler{gate: g}
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Post("/api/v1/auth/login", h.login)
	r.Post("/api/v1/auth/logout", h.logout)
	r.Get("/api/v1/auth/session", h.session)
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if !h.gate.Login(c, payload.Username, payload.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": InvalidCredentials})
	}
	return c.JSON(fiber.Map{"authenticated": true})
}

func (h *Handler) logout(c *fiber.Ctx) error {
	h.gate.Logout(c)
	return c.JSON(fiber.Map{"authenticated": false})
}

func (h *Handler) session(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"authenticated": h.gate.IsAuthenticated(c)})
}
