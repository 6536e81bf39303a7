// @title Event RSVP API
// @version 1.0
// @description Records exactly one RSVP per event and email, and reports tallies and attendee lists to organizers.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"eventrsvp/config"
	_ "eventrsvp/docs"
	"eventrsvp/internal/adapters/auth"
	"eventrsvp/internal/adapters/email"
	httpdelivery "eventrsvp/internal/delivery/http"
	"eventrsvp/internal/delivery/http/controllers"
	"eventrsvp/internal/domain"
	"eventrsvp/internal/repository/dynamo"
	"eventrsvp/internal/repository/memory"
	"eventrsvp/internal/repository/postgres"
	"eventrsvp/internal/services"
)

func main() {
	logger := config.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.DBUrl, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}

	ledger := newLedger(cfg, db)
	defer func() {
		if err := ledger.Close(); err != nil {
			logger.Warn("close ledger", "err", err)
		}
	}()
	logger.Info("attendance ledger ready", "driver", cfg.LedgerDriver)

	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.DynamoDB.Region,
			AccessKeyID:        cfg.DynamoDB.AccessKeyID,
			SecretAccessKey:    cfg.DynamoDB.SecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer())

	jwt := auth.NewJWT(cfg.JWTSecret)
	authSvc := services.NewAuthService(
		postgres.NewUserRepository(db),
		postgres.NewRoleRepository(db),
		auth.NewBcryptHasher(bcrypt.DefaultCost),
		jwt,
		cfg.JWTExpiry,
	)

	handler := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Logger:         logger,
		Gate:           services.NewAdmissionGate(jwt),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RSVP:           controllers.NewRSVPController(logger, services.NewRSVPService(ledger, emailSvc, logger)),
		Stats:          controllers.NewStatsController(logger, services.NewStatsService(ledger, logger)),
		Events:         controllers.NewEventController(logger, services.NewEventService(postgres.NewEventRepository(db))),
		Auth:           controllers.NewAuthController(logger, authSvc),
		Health:         controllers.NewHealthController(logger, ledger),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// newLedger selects the attendance ledger backend. The postgres ledger shares
// the catalog pool.
func newLedger(cfg *config.Config, db *sql.DB) domain.AttendanceLedger {
	switch cfg.LedgerDriver {
	case config.LedgerDynamoDB:
		client := dynamo.NewClient(dynamo.ClientConfig{
			Region:          cfg.DynamoDB.Region,
			AccessKeyID:     cfg.DynamoDB.AccessKeyID,
			SecretAccessKey: cfg.DynamoDB.SecretAccessKey,
			Endpoint:        cfg.DynamoDB.Endpoint,
		})
		return dynamo.NewAttendanceLedger(client, cfg.DynamoDBTable)
	case config.LedgerMemory:
		return memory.NewAttendanceLedger()
	default:
		return postgres.NewAttendanceLedger(db)
	}
}
