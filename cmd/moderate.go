package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mediadirect/mediadirect/internal/models"
	"github.com/mediadirect/mediadirect/internal/shared"
	"github.com/mediadirect/mediadirect/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Moderate applies one moderation status to a batch of hosted assets.
func (r *Runner) Moderate(ctx context.Context, cmd *cli.Command) error {
	status, err := models.ParseModerationStatus(cmd.String("status"))
	if err != nil {
		return err
	}

	var ids []string
	for _, part := range strings.Split(cmd.String("ids"), ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: asset ids", shared.ErrMissingArgument)
	}

	config := r.loadConfig(cmd.String("config"))

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	_, engine, err := r.buildEngines(config, db)
	if err != nil {
		return err
	}

	r.logger.Info("applying moderation decision", "status", status, "assets", len(ids))

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			if update.Phase == tasks.MoveEntries {
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := engine.SetStatus(ctx, ids, status, progressCh)
	close(progressCh)

	if err != nil {
		if result != nil && result.Updated > 0 {
			r.writePlain("\nStopped after updating %d of %d assets.\n", result.Updated, result.Total)
		}
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	r.writePlain("\n")
	r.writePlainHeader("Moderation Complete!")
	r.writePlain("Status: %s\n", result.Status)
	r.writePlain("Assets updated: %d/%d\n", result.Updated, result.Total)

	return nil
}
