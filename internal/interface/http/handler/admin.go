package handler

import (
	"errors"
	"mime/multipart"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/disma-site/internal/appointment"
	"github.com/wichananm65/disma-site/internal/auth"
	"github.com/wichananm65/disma-site/internal/interface/presenter"
	"github.com/wichananm65/disma-site/internal/media"
	"github.com/wichananm65/disma-site/internal/product"
	"github.com/wichananm65/disma-site/internal/project"
	"github.com/wichananm65/disma-site/internal/services"
)

// AdminHandler serves the login form and the content dashboard.
type AdminHandler struct {
	gate      *auth.Gate
	content   Content
	presenter *presenter.Presenter
	log       *zap.Logger
}

func NewAdminHandler(gate *auth.Gate, content Content, p *presenter.Presenter, log *zap.Logger) *AdminHandler {
	return &AdminHandler{gate: gate, content: content, presenter: p, log: log}
}

// RegisterPublicRoutes must run before the gated /admin group is mounted.
func (h *AdminHandler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/admin/login", h.loginPage)
	r.Post("/admin/login", h.login)
	r.Post("/admin/logout", h.logout)
}

// RegisterProtectedRoutes expects the /admin group behind auth.Gate.RequirePage.
func (h *AdminHandler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/", h.dashboard)
	r.Post("/:kind", h.create)
	r.Post("/:kind/:id", h.update)
	r.Post("/:kind/:id/delete", h.delete)
}

func (h *AdminHandler) loginPage(c *fiber.Ctx) error {
	if h.gate.IsAuthenticated(c) {
		return c.Redirect("/admin", fiber.StatusSeeOther)
	}
	return c.Render("login", fiber.Map{}, "layouts/main")
}

func (h *AdminHandler) login(c *fiber.Ctx) error {
	username, password := c.FormValue("username"), c.FormValue("password")
	if h.gate.Login(c, username, password) {
		return c.Redirect("/admin", fiber.StatusSeeOther)
	}
	return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
		"Error":    auth.InvalidCredentials,
		"Username": username,
	}, "layouts/main")
}

func (h *AdminHandler) logout(c *fiber.Ctx) error {
	h.gate.Logout(c)
	return c.Redirect(auth.LoginPath, fiber.StatusSeeOther)
}

func (h *AdminHandler) dashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()
	view := presenter.NewDashboard(c.Query("tab"), c.Query("status"))

	products, projects, offers, err := h.content.load(c)
	if err != nil {
		h.log.Error("error loading dashboard", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "could not complete the operation")
	}
	view.Products = h.presenter.Products(products)
	view.Projects = h.presenter.Projects(projects)
	view.Services = h.presenter.Services(offers)

	facets, err := h.content.Categories.List(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not complete the operation")
	}
	view.Categories = presenter.FacetNames(facets.ProductCategories)
	view.Tags = presenter.FacetNames(facets.ServiceTags)

	if view.Active == "appointments" {
		list, err := h.content.Appointments.List(ctx)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not complete the operation")
		}
		view.Appointments = h.presenter.Appointments(list)
	}
	return c.Render("admin", view, "layouts/main")
}

func (h *AdminHandler) create(c *fiber.Ctx) error {
	kind := c.Params("kind")
	ctx, image := c.UserContext(), imageOf(c)

	var err error
	switch kind {
	case "products":
		var f product.Form
		if err = c.BodyParser(&f); err == nil {
			_, err = h.content.Products.Create(ctx, f, image)
		}
	case "projects":
		var f project.Form
		if err = c.BodyParser(&f); err == nil {
			_, err = h.content.Projects.Create(ctx, f, image)
		}
	case "services":
		var f services.Form
		if err = c.BodyParser(&f); err == nil {
			_, err = h.content.Services.Create(ctx, f, image)
		}
	default:
		return fiber.ErrNotFound
	}
	return h.back(c, kind, "created", err)
}

func (h *AdminHandler) update(c *fiber.Ctx) error {
	kind, id := c.Params("kind"), c.Params("id")
	ctx, image := c.UserContext(), imageOf(c)

	var err error
	switch kind {
	case "products":
		var f product.Form
		if err = c.BodyParser(&f); err == nil {
			_, err = h.content.Products.Update(ctx, id, f, image)
		}
	case "projects":
		var f project.Form
		if err = c.BodyParser(&f); err == nil {
			_, err = h.content.Projects.Update(ctx, id, f, image)
		}
	case "services":
		var f services.Form
		if err = c.BodyParser(&f); err == nil {
			_, err = h.content.Services.Update(ctx, id, f, image)
		}
	default:
		return fiber.ErrNotFound
	}
	return h.back(c, kind, "updated", err)
}

func (h *AdminHandler) delete(c *fiber.Ctx) error {
	kind, id := c.Params("kind"), c.Params("id")
	ctx := c.UserContext()

	var err error
	switch kind {
	case "products":
		err = h.content.Products.Delete(ctx, id)
	case "projects":
		err = h.content.Projects.Delete(ctx, id)
	case "services":
		err = h.content.Services.Delete(ctx, id)
	default:
		return fiber.ErrNotFound
	}
	return h.back(c, kind, "deleted", err)
}

// back redirects to the tab of kind with a status flag. Validation failures
// carry no flag: the write simply did not happen.
func (h *AdminHandler) back(c *fiber.Ctx, kind, okStatus string, err error) error {
	q := url.Values{"tab": {kind}}
	switch {
	case err == nil:
		q.Set("status", okStatus)
	case isInvalid(err):
	case errors.Is(err, media.ErrUploadFailed):
		q.Set("status", "upload")
	default:
		q.Set("status", "error")
	}
	return c.Redirect("/admin?"+q.Encode(), fiber.StatusSeeOther)
}

func isInvalid(err error) bool {
	return errors.Is(err, product.ErrInvalid) ||
		errors.Is(err, project.ErrInvalid) ||
		errors.Is(err, services.ErrInvalid) ||
		errors.Is(err, appointment.ErrInvalid)
}

func imageOf(c *fiber.Ctx) *multipart.FileHeader {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return fh
}
