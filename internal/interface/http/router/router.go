package router

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wichananm65/disma-site/internal/appointment"
	"github.com/wichananm65/disma-site/internal/auth"
	"github.com/wichananm65/disma-site/internal/category"
	"github.com/wichananm65/disma-site/internal/interface/http/handler"
	"github.com/wichananm65/disma-site/internal/interface/http/templates"
	"github.com/wichananm65/disma-site/internal/interface/presenter"
	"github.com/wichananm65/disma-site/internal/metrics"
	"github.com/wichananm65/disma-site/internal/product"
	"github.com/wichananm65/disma-site/internal/project"
	"github.com/wichananm65/disma-site/internal/services"
)

// Options carries everything the HTTP layer needs.
type Options struct {
	Log     *zap.Logger
	Gate    *auth.Gate
	Content handler.Content
	// Presenter defaults to one without a WhatsApp number.
	Presenter *presenter.Presenter

	PublicDir        string
	UploadDir        string
	CORSAllowOrigins string
	BodyLimit        int
}

// New assembles the fiber application. Route order matters: public routes
// are registered before the gates so their handlers answer first, and the
// static file handlers come last.
func New(opts Options) *fiber.App {
	if opts.Presenter == nil {
		opts.Presenter = presenter.NewPresenter("")
	}
	if opts.CORSAllowOrigins == "" {
		opts.CORSAllowOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		Views:                 html.NewFileSystem(http.FS(templates.FS), ".html"),
		BodyLimit:             opts.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(opts.Log),
	})
	app.Use(recover.New())
	app.Use(requestLogger(opts.Log))
	app.Use("/api", cors.New(cors.Config{
		AllowOrigins:     opts.CORSAllowOrigins,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: opts.CORSAllowOrigins != "*",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	productHandler := product.NewHandler(opts.Content.Products)
	projectHandler := project.NewHandler(opts.Content.Projects)
	servicesHandler := services.NewHandler(opts.Content.Services)
	appointmentHandler := appointment.NewHandler(opts.Content.Appointments)
	categoryHandler := category.NewHandler(opts.Content.Categories)
	authHandler := auth.NewHandler(opts.Gate)
	site := handler.NewSiteHandler(opts.Content, opts.Presenter, opts.Log)
	admin := handler.NewAdminHandler(opts.Gate, opts.Content, opts.Presenter, opts.Log)

	site.RegisterRoutes(app)
	authHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	projectHandler.RegisterPublicRoutes(app)
	servicesHandler.RegisterPublicRoutes(app)
	appointmentHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	admin.RegisterPublicRoutes(app)

	// static assets before the gates so uploaded images stay public
	app.Static("/bucket", opts.UploadDir)
	app.Static("/", opts.PublicDir)

	app.Use("/api", opts.Gate.RequireAPI())
	productHandler.RegisterProtectedRoutes(app)
	projectHandler.RegisterProtectedRoutes(app)
	servicesHandler.RegisterProtectedRoutes(app)
	appointmentHandler.RegisterProtectedRoutes(app)

	admin.RegisterProtectedRoutes(app.Group("/admin", opts.Gate.RequirePage()))

	return app
}

// requestLogger logs every request once it has been handled and records its
// latency under the matched route pattern.
func requestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		latency := time.Since(start)
		metrics.RecordHTTPRequest(c.Method(), c.Route().Path, status, latency)
		log.Info("request",
			zap.String("method", c.Method()),
			zap.String("url", c.OriginalURL()),
			zap.Int("status", status),
			zap.Duration("latency", latency),
		)
		return err
	}
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "could not complete the operation"
		if fe, ok := err.(*fiber.Error); ok {
			code, msg = fe.Code, fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).SendString(msg)
	}
}
