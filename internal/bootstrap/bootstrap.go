// Package bootstrap wires adapters from configuration for the pdfsat
// binaries.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"pdfsat/internal/adapters/deck"
	"pdfsat/internal/adapters/document"
	"pdfsat/internal/adapters/filesystem"
	"pdfsat/internal/adapters/minio"
	"pdfsat/internal/adapters/poppler"
	"pdfsat/internal/adapters/redis"
	"pdfsat/internal/adapters/sqlite"
	"pdfsat/internal/config"
	"pdfsat/internal/ports"
)

// Documents returns an opener for every supported format. PDF support is
// left out, with a warning, when poppler cannot be found.
func Documents(cfg config.Config, logger *slog.Logger) *document.Opener {
	opener := document.NewOpener().
		Register(deck.NewOpener(logger), ".dsh", ".xml")

	pdf, err := poppler.NewOpener(cfg.PopplerDir, logger)
	if err != nil {
		logger.Warn("PDF support disabled", "error", err)
		return opener
	}
	return opener.Register(pdf, ".pdf")
}

// SessionStore opens Redis when PDFSAT_REDIS_URL is set, SQLite otherwise
func SessionStore(ctx context.Context, cfg config.Config) (ports.SessionStore, error) {
	if cfg.UseRedis() {
		store, err := redis.NewSessionStore(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis session store: %w", err)
		}
		return store, nil
	}

	store, err := sqlite.Open(cfg.StateDB)
	if err != nil {
		return nil, fmt.Errorf("sqlite session store: %w", err)
	}
	return store, nil
}

// Sink returns the export destination: an S3-compatible bucket for
// s3://bucket/prefix, a local directory otherwise
func Sink(ctx context.Context, cfg config.Config, dest string) (ports.SlideSink, error) {
	if minio.IsDestination(dest) {
		if cfg.S3Endpoint == "" {
			return nil, fmt.Errorf("exporting to %s needs PDFSAT_S3_ENDPOINT", dest)
		}
		return minio.NewSink(ctx, minio.Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
		}, dest)
	}
	return filesystem.NewDirSink(dest)
}
