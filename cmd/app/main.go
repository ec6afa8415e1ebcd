package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/wichananm65/disma-site/internal/appointment"
	"github.com/wichananm65/disma-site/internal/auth"
	"github.com/wichananm65/disma-site/internal/category"
	"github.com/wichananm65/disma-site/internal/infrastructure/config"
	"github.com/wichananm65/disma-site/internal/infrastructure/database"
	"github.com/wichananm65/disma-site/internal/infrastructure/logger"
	"github.com/wichananm65/disma-site/internal/interface/http/handler"
	"github.com/wichananm65/disma-site/internal/interface/http/router"
	"github.com/wichananm65/disma-site/internal/interface/presenter"
	"github.com/wichananm65/disma-site/internal/media"
	"github.com/wichananm65/disma-site/internal/product"
	"github.com/wichananm65/disma-site/internal/project"
	"github.com/wichananm65/disma-site/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Production: cfg.IsProduction(),
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFile,
	})
	defer log.Sync()

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("error opening database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db, cfg.DBDriver, log); err != nil {
		log.Fatal("error migrating database", zap.Error(err))
	}

	images := media.NewStore(media.Config{Dir: cfg.UploadDir}, log)

	content := handler.Content{
		Products:     product.NewService(product.NewSQLRepository(db), images, log),
		Projects:     project.NewService(project.NewSQLRepository(db), images, log),
		Services:     services.NewCatalog(services.NewSQLRepository(db), images, log),
		Appointments: appointment.NewService(appointment.NewSQLRepository(db), log),
		Categories:   category.NewService(category.NewSQLRepository(db), log),
	}

	gate := auth.NewGate(auth.Config{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
		Secret:       []byte(cfg.SessionSecret),
		Secure:       cfg.IsProduction(),
	}, log)

	app := router.New(router.Options{
		Log:              log,
		Gate:             gate,
		Content:          content,
		Presenter:        presenter.NewPresenter(cfg.WhatsAppNumber),
		PublicDir:        cfg.PublicDir,
		UploadDir:        cfg.UploadDir,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		BodyLimit:        cfg.MaxUploadMB << 20,
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error("error during shutdown", zap.Error(err))
		}
	}()

	log.Info("starting server", zap.String("addr", cfg.Addr), zap.String("env", cfg.Env))
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
