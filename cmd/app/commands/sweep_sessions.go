package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/allisson/photosafe/internal/app"
	"github.com/allisson/photosafe/internal/config"
)

// sessionSweeper removes expired unlock sessions.
type sessionSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// tokenSweeper removes expired bearer tokens.
type tokenSweeper interface {
	SweepExpiredTokens(ctx context.Context) (int64, error)
}

// RunSweepSessions deletes expired unlock sessions and bearer tokens.
// Intended to run periodically (e.g. from cron); expired rows deny access on
// read regardless, the sweep just keeps the tables small.
//
// Requirements: Database must be migrated and accessible.
func RunSweepSessions(ctx context.Context, format string) error {
	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	sessionUseCase, err := container.SessionUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize session use case: %w", err)
	}

	authUseCase, err := container.AuthUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize auth use case: %w", err)
	}

	return sweepSessions(ctx, sessionUseCase, authUseCase, logger, os.Stdout, format)
}

// sweepSessions executes the sweep and writes the result in the given format.
func sweepSessions(
	ctx context.Context,
	sessions sessionSweeper,
	tokens tokenSweeper,
	logger *slog.Logger,
	out io.Writer,
	format string,
) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}

	logger.Info("sweeping expired unlock sessions and bearer tokens")

	removedSessions, err := sessions.SweepExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to sweep expired sessions: %w", err)
	}

	removedTokens, err := tokens.SweepExpiredTokens(ctx)
	if err != nil {
		return fmt.Errorf("failed to sweep expired tokens: %w", err)
	}

	if format == "json" {
		outputSweepJSON(out, removedSessions, removedTokens)
	} else {
		outputSweepText(out, removedSessions, removedTokens)
	}

	logger.Info("sweep completed",
		slog.Int64("sessions_removed", removedSessions),
		slog.Int64("tokens_removed", removedTokens),
	)

	return nil
}

// outputSweepText writes the result in human-readable text format.
func outputSweepText(out io.Writer, sessions, tokens int64) {
	fmt.Fprintf(out, "Successfully deleted %d expired session(s) and %d expired token(s)\n", sessions, tokens)
}

// outputSweepJSON writes the result in JSON format for machine consumption.
func outputSweepJSON(out io.Writer, sessions, tokens int64) {
	result := map[string]interface{}{
		"sessions_removed": sessions,
		"tokens_removed":   tokens,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(out, string(jsonBytes))
}
