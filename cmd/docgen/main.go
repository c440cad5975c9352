// Command docgen generates CLI reference documentation from the redline
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/prooflab/redline/internal/commands"
)

func main() {
	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "redline",
		Usage:     "Review automated text corrections from the terminal",
		UsageText: "redline [global options] command [command options]",
		Description: `Redline is a client for a document correction service. Upload documents,
start correction runs, review each suggested change interactively, and
export the corrected documents with only the accepted changes applied.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("REDLINE_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file (defaults to <data-dir>/redline.log)",
				Sources: cli.EnvVars("REDLINE_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("REDLINE_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "path to data directory (tokens, logs)",
				Sources: cli.EnvVars("REDLINE_DATA_DIR"),
				Value:   commands.DefaultDataDir(),
			},
			&cli.StringFlag{
				Name:    "api",
				Usage:   "backend base URL (overrides the config file)",
				Sources: cli.EnvVars("REDLINE_API_URL"),
			},
		},
	}

	root = commands.NewLoginCmd(flags).Register(root)
	root = commands.NewRegisterCmd(flags).Register(root)
	root = commands.NewLogoutCmd(flags).Register(root)
	root = commands.NewWhoamiCmd(flags).Register(root)
	root = commands.NewHealthCmd(flags).Register(root)
	root = commands.NewProjectsCmd(flags).Register(root)
	root = commands.NewUploadCmd(flags).Register(root)
	root = commands.NewRunCmd(flags).Register(root)
	root = commands.NewReviewCmd(flags).Register(root)
	root = commands.NewExportCmd(flags).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
