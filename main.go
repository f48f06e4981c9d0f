package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/pkg/config"
	"github.com/pocketledger/backend/pkg/controllers"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/pocketledger/backend/pkg/rates"
	"github.com/pocketledger/backend/pkg/router"
	"github.com/pocketledger/backend/pkg/settings"
	"github.com/pocketledger/backend/pkg/store"
	"github.com/pocketledger/backend/pkg/store/gormstore"
	"github.com/pocketledger/backend/pkg/store/mongostore"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	// "token <owner>" prints a bearer token for the owner
	if len(os.Args) == 3 && os.Args[1] == "token" {
		if cfg.AuthSecret == "" {
			log.Fatal().Msg("AUTH_SECRET must be set to create tokens")
		}

		token, err := router.NewToken(cfg.AuthSecret, os.Args[2], 0)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		fmt.Println(token)
		return
	}

	// Create data directory
	err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Settings are always kept in the local database
	db, err := models.Connect(cfg.SQLitePath)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	var transactions store.Store[models.Transaction]
	var budgets store.Store[models.Budget]
	disconnect := func(context.Context) error { return nil }

	switch cfg.DataBackend {
	case config.BackendMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoDB, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		cancel()
		if err != nil {
			log.Fatal().Msg(err.Error())
		}

		transactions = mongostore.New[models.Transaction](mongoDB, store.Transactions)
		budgets = mongostore.New[models.Budget](mongoDB, store.Budgets)
		disconnect = mongoDB.Client().Disconnect
	default:
		transactions = gormstore.New[models.Transaction](db)
		budgets = gormstore.New[models.Budget](db)
	}
	log.Info().Str("backend", cfg.DataBackend).Msg("Storage")

	var source rates.Source = rates.DefaultStatic()
	if cfg.RatesURL != "" {
		remote, err := rates.NewRemote(nil, cfg.RatesURL, cfg.RatesTTL)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		source = rates.Fallback{remote, rates.DefaultStatic()}
	}

	co := controllers.New(transactions, budgets, source, settings.New(db, cfg.DefaultCurrency))

	r, teardown, err := router.Config(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	router.AttachRoutes(cfg, co, r.Group("/"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	if err := disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("storage disconnect")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
