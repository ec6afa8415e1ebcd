package product

import (
	"errors"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/disma-site/internal/media"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/api/v1/products", h.getProducts)
	r.Get("/api/v1/products/:id", h.getProduct)
}

// RegisterProtectedRoutes expects r to sit behind the admin gate.
func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Post("/api/v1/products", h.createProduct)
	r.Put("/api/v1/products/:id", h.updateProduct)
	r.Delete("/api/v1/products/:id", h.deleteProduct)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	products, err := h.service.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}

	// optional exact-match filter; category is free text
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		filtered := make([]Product, 0, len(products))
		for _, p := range products {
			if p.Category != nil && strings.EqualFold(*p.Category, cat) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	return c.JSON(products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	f := new(Form)
	if err := c.BodyParser(f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(c.UserContext(), *f, formImage(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	f := new(Form)
	if err := c.BodyParser(f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(c.UserContext(), c.Params("id"), *f, formImage(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// formImage returns the optional "image" part of a multipart request.
func formImage(c *fiber.Ctx) *multipart.FileHeader {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return fh
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	case errors.Is(err, media.ErrUploadFailed):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "upload failed"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not complete the operation"})
	}
}
