package main

import (
	"context"
	"fmt"

	"github.com/mediadirect/mediadirect/internal/shared"
	"github.com/mediadirect/mediadirect/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Migrate uploads one submission's assets to the media host.
func (r *Runner) Migrate(ctx context.Context, cmd *cli.Command) error {
	submissionID := cmd.StringArg("submission")
	if submissionID == "" {
		return fmt.Errorf("%w: submission id", shared.ErrMissingArgument)
	}

	config := r.loadConfig(cmd.String("config"))

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	engine, _, err := r.buildEngines(config, db)
	if err != nil {
		return err
	}

	r.logger.Info("starting migration", "submission", submissionID)
	r.writePlain("Migrating submission %s...\n\n", submissionID)

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.ResolveSubmission:
				r.writePlain("🔎 %s\n", update.Message)
			case tasks.UploadAssets:
				r.writePlain("   %s\n", update.Message)
			case tasks.NotifyAuthor:
				r.writePlain("\n✉️  %s\n", update.Message)
			}
		}
	}()

	result, err := engine.MigrateSubmission(ctx, submissionID, progressCh)
	close(progressCh)

	if err != nil {
		if result != nil && result.Migrated > 0 {
			r.writePlain("\nAborted after hosting %d of %d assets.\n", result.Migrated, result.TotalAssets)
		}
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	r.writePlain("\n")
	r.writePlainHeader("Migration Complete!")
	r.writePlain("Submission: %s\n", result.SubmissionID)
	r.writePlain("Assets hosted: %d/%d\n", result.Migrated, result.TotalAssets)
	if result.Skipped > 0 {
		r.writePlain("Already hosted: %d\n", result.Skipped)
	}
	if result.Notified {
		r.writePlain("Author notified by email.\n")
	}

	return nil
}
