package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/prooflab/redline/internal/core/styles"
	"github.com/prooflab/redline/internal/tui/views/review"
)

type ExportCmd struct {
	flags *Flags

	// Command-specific flags
	outDir string
	ext    string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags) *ExportCmd {
	return &ExportCmd{flags: flags}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Download a run's documents with accepted changes applied",
		UsageText: "redline export <run-id> [--out <dir>]",
		Description: `Asks the backend to rebuild the run's documents with only the accepted
suggestions applied and saves the result as run_<id>_accepted.<ext>.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output directory (defaults to the configured export dir)",
				Destination: &cmd.outDir,
			},
			&cli.StringFlag{
				Name:        "ext",
				Usage:       "output file extension",
				Destination: &cmd.ext,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	runID := c.Args().First()
	if runID == "" {
		return fmt.Errorf("usage: redline export <run-id>")
	}

	data, err := cmd.flags.Client.ExportAccepted(ctx, runID)
	if err != nil {
		return apiErr("export", err)
	}

	dir := cmd.outDir
	if dir == "" {
		dir = cmd.flags.Config.Export.Dir
	}
	ext := cmd.ext
	if ext == "" {
		ext = cmd.flags.Config.Export.Extension
	}

	path := filepath.Join(dir, review.ExportFilename(runID, ext))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Fprintln(c.Root().Writer, styles.SuccessStyle.Render("Exported ")+path)
	return nil
}
