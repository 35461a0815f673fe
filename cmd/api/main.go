package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/avolkov/tinycrm/internal/account"
	accountStore "github.com/avolkov/tinycrm/internal/account/store"
	"github.com/avolkov/tinycrm/internal/client"
	clientStore "github.com/avolkov/tinycrm/internal/client/store"
	"github.com/avolkov/tinycrm/internal/config"
	"github.com/avolkov/tinycrm/internal/database"
	"github.com/avolkov/tinycrm/internal/gcal"
	gcalStore "github.com/avolkov/tinycrm/internal/gcal/store"
	crmHttp "github.com/avolkov/tinycrm/internal/http"
	accountHandler "github.com/avolkov/tinycrm/internal/http/account"
	clientHandler "github.com/avolkov/tinycrm/internal/http/client"
	gcalHandler "github.com/avolkov/tinycrm/internal/http/gcal"
	interactionHandler "github.com/avolkov/tinycrm/internal/http/interaction"
	tagHandler "github.com/avolkov/tinycrm/internal/http/tag"
	timeentryHandler "github.com/avolkov/tinycrm/internal/http/timeentry"
	trackerHandler "github.com/avolkov/tinycrm/internal/http/tracker"
	transactionHandler "github.com/avolkov/tinycrm/internal/http/transaction"
	"github.com/avolkov/tinycrm/internal/identity"
	"github.com/avolkov/tinycrm/internal/interaction"
	interactionStore "github.com/avolkov/tinycrm/internal/interaction/store"
	"github.com/avolkov/tinycrm/internal/tag"
	tagStore "github.com/avolkov/tinycrm/internal/tag/store"
	"github.com/avolkov/tinycrm/internal/timeentry"
	timeentryStore "github.com/avolkov/tinycrm/internal/timeentry/store"
	"github.com/avolkov/tinycrm/internal/tracker"
	trackerStore "github.com/avolkov/tinycrm/internal/tracker/store"
	"github.com/avolkov/tinycrm/internal/transaction"
	transactionStore "github.com/avolkov/tinycrm/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	verifier := identity.NewGoogleVerifier(cfg.Google.ClientID, cfg.Google.Timeout)

	var (
		accountService = account.NewService(accountStore.New(db), verifier)
		clientService  = client.NewService(clientStore.New(db))
		tagService     = tag.NewService(tagStore.New(db))
		interactionSvc = interaction.NewService(interactionStore.New(db))
		transactionSvc = transaction.NewService(transactionStore.New(db))
		timeentrySvc   = timeentry.NewService(timeentryStore.New(db))
		trackerService = tracker.NewService(trackerStore.New(db))
		gcalService    = gcal.NewService(gcalStore.New(db), gcal.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			Timeout:      cfg.Google.Timeout,
		})
	)

	sessionSecret := []byte(cfg.Auth.SessionSecret)

	auth := crmHttp.NewAuthenticator(crmHttp.AuthConfig{
		GlobalToken:    cfg.Auth.GlobalToken,
		GlobalUsername: cfg.Auth.GlobalUsername,
		SessionSecret:  sessionSecret,
	}, accountService)

	var (
		accountH     = accountHandler.NewHandler(accountService, sessionSecret, cfg.Auth.SessionTTL)
		clientH      = clientHandler.NewHandler(clientService)
		tagH         = tagHandler.NewHandler(tagService)
		interactionH = interactionHandler.NewHandler(interactionSvc)
		transactionH = transactionHandler.NewHandler(transactionSvc)
		timeentryH   = timeentryHandler.NewHandler(timeentrySvc)
		trackerH     = trackerHandler.NewHandler(trackerService)
		gcalH        = gcalHandler.NewHandler(gcalService)
	)

	router := crmHttp.New(auth, cfg.Server.FrontendOrigin,
		accountH, clientH, tagH, interactionH, transactionH, timeentryH, trackerH, gcalH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	server := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
