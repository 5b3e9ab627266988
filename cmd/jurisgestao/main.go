package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jurisgestao/jurisgestao/internal/agenda"
	"github.com/jurisgestao/jurisgestao/internal/app"
	"github.com/jurisgestao/jurisgestao/internal/auth"
	"github.com/jurisgestao/jurisgestao/internal/clients"
	"github.com/jurisgestao/jurisgestao/internal/observability"
	"github.com/jurisgestao/jurisgestao/internal/platform/db"
	"github.com/jurisgestao/jurisgestao/internal/rbac"
	"github.com/jurisgestao/jurisgestao/internal/roles"
	"github.com/jurisgestao/jurisgestao/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	rbacService := rbac.NewService(rbac.NewRepository(pool), logger)
	rolesService := roles.NewService(roles.NewRepository(pool))

	// Catalog and roles are independent; grants need both.
	g, bootCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := rbacService.EnsureCatalog(bootCtx, rbac.DefaultCatalog())
		return err
	})
	g.Go(func() error {
		return rolesService.EnsureDefaults(bootCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Error("bootstrap catalog", slog.Any("error", err))
		os.Exit(1)
	}
	if err := rbacService.BindDefaults(ctx, rbac.DefaultRoleGrants()); err != nil {
		logger.Error("bind default grants", slog.Any("error", err))
		os.Exit(1)
	}

	authService := auth.NewService(auth.NewRepository(pool), rbacService)
	authenticator := &auth.Authenticator{Service: authService, Logger: logger, Realm: "jurisgestao"}

	rbacMw := rbac.Middleware{Logger: logger}
	metrics := observability.NewMetrics()

	usersService := users.NewService(users.NewRepository(pool), auth.HashPassword)
	clientsService := clients.NewService(clients.NewRepository(pool))
	agendaService := agenda.NewService(agenda.NewRepository(pool))

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		Authenticator:  authenticator,
		UsersHandler:   users.NewHandler(logger, usersService, rbacMw),
		ClientsHandler: clients.NewHandler(logger, clientsService, rbacMw),
		AgendaHandler:  agenda.NewHandler(logger, agendaService, rbacMw),
		RolesHandler:   roles.NewHandler(logger, rolesService, rbacMw),
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
