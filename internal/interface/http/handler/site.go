package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wichananm65/disma-site/internal/appointment"
	"github.com/wichananm65/disma-site/internal/category"
	"github.com/wichananm65/disma-site/internal/interface/presenter"
	"github.com/wichananm65/disma-site/internal/product"
	"github.com/wichananm65/disma-site/internal/project"
	"github.com/wichananm65/disma-site/internal/services"
)

// Content groups the catalog services shared by the HTML handlers.
type Content struct {
	Products     *product.Service
	Projects     *project.Service
	Services     *services.Catalog
	Appointments *appointment.Service
	Categories   *category.Service
}

// load fetches the three catalogs concurrently.
func (c Content) load(ctx *fiber.Ctx) ([]product.Product, []project.Project, []services.Service, error) {
	var (
		products []product.Product
		projects []project.Project
		offers   []services.Service
	)
	g, gctx := errgroup.WithContext(ctx.UserContext())
	g.Go(func() (err error) {
		products, err = c.Products.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		projects, err = c.Projects.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		offers, err = c.Services.List(gctx)
		return err
	})
	err := g.Wait()
	return products, projects, offers, err
}

// SiteHandler serves the public landing page and its contact form.
type SiteHandler struct {
	content   Content
	presenter *presenter.Presenter
	log       *zap.Logger
}

func NewSiteHandler(content Content, p *presenter.Presenter, log *zap.Logger) *SiteHandler {
	return &SiteHandler{content: content, presenter: p, log: log}
}

func (h *SiteHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/", h.index)
	r.Post("/contact", h.contact)
}

func (h *SiteHandler) index(c *fiber.Ctx) error {
	products, projects, offers, err := h.content.load(c)
	if err != nil {
		h.log.Error("error loading landing page", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "could not complete the operation")
	}

	return c.Render("index", presenter.Landing{
		Services:   h.presenter.Services(offers),
		Projects:   h.presenter.Projects(projects),
		Products:   h.presenter.Products(products),
		ContactURL: h.presenter.ContactURL(),
		Contact:    c.Query("contacto"),
		Year:       presenter.Year(),
	}, "layouts/main")
}

// contact stores a submission. Incomplete forms are dropped silently.
func (h *SiteHandler) contact(c *fiber.Ctx) error {
	var f appointment.Form
	if err := c.BodyParser(&f); err != nil {
		return c.Redirect("/#contacto", fiber.StatusSeeOther)
	}

	_, err := h.content.Appointments.Create(c.UserContext(), f)
	switch {
	case err == nil:
		return c.Redirect("/?contacto=ok#contacto", fiber.StatusSeeOther)
	case errors.Is(err, appointment.ErrInvalid):
		return c.Redirect("/#contacto", fiber.StatusSeeOther)
	default:
		return c.Redirect("/?contacto=error#contacto", fiber.StatusSeeOther)
	}
}
