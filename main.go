package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/msomdec/msgdrop/internal/domain"
	"github.com/msomdec/msgdrop/internal/handler"
	"github.com/msomdec/msgdrop/internal/repository/disk"
	"github.com/msomdec/msgdrop/internal/repository/postgres"
	"github.com/msomdec/msgdrop/internal/repository/sqlite"
	"github.com/msomdec/msgdrop/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	port := envOrDefault("PORT", "3000")
	uploadDir := envOrDefault("UPLOAD_DIR", "uploads")

	bcryptCost := 12
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			slog.Error("invalid BCRYPT_COST", "error", err)
			os.Exit(1)
		}
		if parsed < 4 || parsed > 14 {
			slog.Error("BCRYPT_COST must be between 4 and 14", "value", parsed)
			os.Exit(1)
		}
		bcryptCost = parsed
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	blobs, err := disk.New(uploadDir)
	if err != nil {
		slog.Error("failed to create upload directory", "error", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(store.Users(), bcryptCost)
	messageService := service.NewMessageService(store.Messages(), blobs)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, messageService)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler.RequestLogger(handler.SecurityHeaders(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore picks the database backend from DATABASE_DRIVER. SQLite is the
// default; set DATABASE_DRIVER=postgres and DATABASE_URL to run against
// Postgres.
func openStore(ctx context.Context) (domain.Store, error) {
	switch driver := envOrDefault("DATABASE_DRIVER", "sqlite"); driver {
	case "postgres":
		return postgres.New(ctx, os.Getenv("DATABASE_URL"))
	default:
		return sqlite.New(envOrDefault("DATABASE_PATH", "msgdrop.db"))
	}
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
