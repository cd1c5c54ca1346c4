package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mfonseca/acamp/internal/auth"
	"github.com/mfonseca/acamp/internal/cep"
	"github.com/mfonseca/acamp/internal/config"
	"github.com/mfonseca/acamp/internal/models"
	"github.com/mfonseca/acamp/internal/service"
	"github.com/mfonseca/acamp/internal/storage"
	"github.com/mfonseca/acamp/internal/storage/sqlite"
	"github.com/mfonseca/acamp/internal/web"
	"github.com/mfonseca/acamp/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	authenticator := auth.NewPasswordAuthenticator(store)
	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	roles := auth.NewRoleResolver(store)

	if err := bootstrapAdmin(context.Background(), cfg, authenticator, store); err != nil {
		slog.Error("Failed to bootstrap admin account", "error", err)
		os.Exit(1)
	}

	server, err := web.New(
		authenticator,
		sessions,
		roles,
		service.NewEditionService(store, roles),
		service.NewPersonService(store, roles),
		service.NewCatalogService(store, roles),
		service.NewPaymentService(store, roles),
		service.NewReportService(store, roles),
		cep.New(cfg.ViaCEPBaseURL),
	)
	if err != nil {
		slog.Error("Failed to build web server", "error", err)
		os.Exit(1)
	}

	// h2c allows HTTP/2 without TLS when a proxy terminates it upstream.
	handler := h2c.NewHandler(server.Handler(), &http2.Server{})

	slog.Info("Server starting", "address", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// bootstrapAdmin creates the configured admin account and its profile on
// first start. Without it a fresh database has only viewer-by-default
// identities and no way to manage anything.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, authenticator auth.Authenticator, store storage.Store) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	user, err := store.GetUserByEmail(ctx, cfg.AdminEmail)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if user == nil {
		if user, err = authenticator.Register(ctx, cfg.AdminEmail, "Administrator", cfg.AdminPassword); err != nil {
			return err
		}
		slog.Info("Admin account created", "email", cfg.AdminEmail)
	}

	return store.UpsertProfile(ctx, &models.Profile{UserID: user.ID, Role: models.RoleAdmin})
}
