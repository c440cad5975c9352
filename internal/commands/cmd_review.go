package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/prooflab/redline/internal/core/logging"
	"github.com/prooflab/redline/internal/tui/views/review"
)

type ReviewCmd struct {
	flags *Flags
}

// NewReviewCmd creates a new review command
func NewReviewCmd(flags *Flags) *ReviewCmd {
	return &ReviewCmd{flags: flags}
}

// Register adds the review command to the application
func (cmd *ReviewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "review",
		Usage:     "Review a run's suggestions interactively",
		UsageText: "redline review <run-id>",
		Description: `Opens the review table for a run: accept or reject suggestions one by
one or in bulk, filter by text or document, and export the corrected
documents with only the accepted changes applied.

Runs from older backend versions without stored suggestions fall back
to a read-only view of the correction artifacts.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ReviewCmd) run(ctx context.Context, c *cli.Command) error {
	runID := c.Args().First()
	if runID == "" {
		return fmt.Errorf("usage: redline review <run-id>")
	}
	return RunReview(ctx, cmd.flags, runID)
}

// RunReview launches the review view. Shared with the watch handoff and the
// root command's bare-run-id shortcut.
func RunReview(ctx context.Context, flags *Flags, runID string) error {
	ctx = logging.WithRunID(ctx, runID)
	view := review.New(ctx, review.Opts{
		Client:    flags.Client,
		RunID:     runID,
		ExportDir: flags.Config.Export.Dir,
		ExportExt: flags.Config.Export.Extension,
		Logger:    logging.Component("review"),
	})

	if _, err := tea.NewProgram(view, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("review: %w", err)
	}
	return nil
}
