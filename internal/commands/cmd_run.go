package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/prooflab/redline/internal/api"
	"github.com/prooflab/redline/internal/core/logging"
	"github.com/prooflab/redline/internal/core/styles"
	"github.com/prooflab/redline/internal/core/suggest"
	"github.com/prooflab/redline/internal/tui/views/runs"
	"github.com/prooflab/redline/pkg/iojson"
)

type RunCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	projectID  string
	docIDs     []string
	mode       string
	useAI      bool
	watch      bool

	// -f reads a full run request from JSON instead of flags
	fileReader iojson.FileReader[api.CreateRun]
}

// NewRunCmd creates a new run command
func NewRunCmd(flags *Flags) *RunCmd {
	return &RunCmd{flags: flags}
}

// Register adds the run command and its subcommands to the application
func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	jsonFlag := &cli.BoolFlag{
		Name:        "json",
		Usage:       "output as JSON",
		Destination: &cmd.jsonOutput,
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Start and inspect correction runs",
		UsageText: "redline run <command>",
		Commands: []*cli.Command{
			{
				Name:      "new",
				Usage:     "Start a correction run",
				UsageText: "redline run new --project <id> --doc <id>... [--watch]",
				Description: `Starts a correction run over the given documents. With -f, the whole
request is read as JSON from a file or stdin instead of flags:

  redline run new -f run.json
  redline projects show 4f2a --json | jq '{project_id: .id, ...}' | redline run new`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "project",
						Aliases:     []string{"P"},
						Usage:       "project id",
						Destination: &cmd.projectID,
					},
					&cli.StringSliceFlag{
						Name:        "doc",
						Aliases:     []string{"d"},
						Usage:       "document id (repeatable)",
						Destination: &cmd.docIDs,
					},
					&cli.StringFlag{
						Name:        "mode",
						Usage:       "correction mode",
						Destination: &cmd.mode,
					},
					&cli.BoolFlag{
						Name:        "ai",
						Usage:       "enable AI-assisted corrections",
						Destination: &cmd.useAI,
					},
					&cli.BoolFlag{
						Name:        "watch",
						Aliases:     []string{"w"},
						Usage:       "watch the run after starting it",
						Destination: &cmd.watch,
					},
					cmd.fileReader.Flag(),
				},
				Action: cmd.runNew,
			},
			{
				Name:      "show",
				Usage:     "Show a run's status",
				UsageText: "redline run show <run-id> [--json]",
				Flags:     []cli.Flag{jsonFlag},
				Action:    cmd.runShow,
			},
			{
				Name:      "watch",
				Usage:     "Watch a run live until it finishes",
				UsageText: "redline run watch <run-id>",
				Action:    cmd.runWatch,
			},
			{
				Name:      "summary",
				Usage:     "Render the run's summary report",
				UsageText: "redline run summary <run-id>",
				Action:    cmd.runSummary,
			},
			{
				Name:      "changelog",
				Usage:     "Print the run's correction changelog CSV",
				UsageText: "redline run changelog <run-id>",
				Action:    cmd.runChangelog,
			},
			{
				Name:      "artifacts",
				Usage:     "List the run's artifacts",
				UsageText: "redline run artifacts <run-id> [--json]",
				Flags:     []cli.Flag{jsonFlag},
				Action:    cmd.runArtifacts,
			},
			{
				Name:      "artifact",
				Usage:     "Download one artifact to stdout or a file",
				UsageText: "redline run artifact <run-id> <filename> [-o <path>]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "write to file instead of stdout",
					},
				},
				Action: cmd.runArtifact,
			},
		},
	})

	return app
}

func (cmd *RunCmd) runNew(ctx context.Context, c *cli.Command) error {
	var req api.CreateRun

	switch {
	case cmd.projectID != "":
		if len(cmd.docIDs) == 0 {
			return fmt.Errorf("at least one --doc is required")
		}
		req = api.CreateRun{
			ProjectID:   cmd.projectID,
			DocumentIDs: cmd.docIDs,
			Mode:        cmd.mode,
			UseAI:       cmd.useAI,
		}
	default:
		var err error
		req, err = cmd.fileReader.Read()
		if err != nil {
			return err
		}
		if req.ProjectID == "" || len(req.DocumentIDs) == 0 {
			return fmt.Errorf("run request needs project_id and document_ids")
		}
	}

	result, err := cmd.flags.Client.StartRun(ctx, req)
	if err != nil {
		return apiErr("start run", err)
	}

	fmt.Fprintln(c.Root().Writer, styles.SuccessStyle.Render("Run started")+" "+styles.TextMutedStyle.Render(result.RunID))

	if cmd.watch {
		return cmd.watchRun(ctx, result.RunID)
	}
	return nil
}

func (cmd *RunCmd) runShow(ctx context.Context, c *cli.Command) error {
	runID := c.Args().First()
	if runID == "" {
		return fmt.Errorf("usage: redline run show <run-id>")
	}

	run, err := cmd.flags.Client.GetRun(ctx, runID)
	if err != nil {
		return apiErr("get run", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, run)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "ID\t%s\n", run.ID)
	_, _ = fmt.Fprintf(w, "PROJECT\t%s\n", run.ProjectID)
	_, _ = fmt.Fprintf(w, "STATUS\t%s\n", run.Status)
	_, _ = fmt.Fprintf(w, "CREATED\t%s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	return w.Flush()
}

func (cmd *RunCmd) runWatch(ctx context.Context, c *cli.Command) error {
	runID := c.Args().First()
	if runID == "" {
		return fmt.Errorf("usage: redline run watch <run-id>")
	}
	return cmd.watchRun(ctx, runID)
}

// watchRun runs the watch TUI and chains into the review TUI when the user
// asks for it on a completed run.
func (cmd *RunCmd) watchRun(ctx context.Context, runID string) error {
	ctx = logging.WithRunID(ctx, runID)
	view := runs.New(ctx, runs.Opts{
		Client:           cmd.flags.Client,
		RunID:            runID,
		RunInterval:      cmd.flags.Config.TUI.RunPollInterval,
		ArtifactInterval: cmd.flags.Config.TUI.ArtifactPollInterval,
		Logger:           logging.Component("watch"),
	})

	if _, err := tea.NewProgram(view, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	if view.ReviewRequested() {
		return RunReview(ctx, cmd.flags, runID)
	}
	return nil
}

func (cmd *RunCmd) runSummary(ctx context.Context, c *cli.Command) error {
	runID := c.Args().First()
	if runID == "" {
		return fmt.Errorf("usage: redline run summary <run-id>")
	}

	md, err := cmd.flags.Client.SummaryMarkdown(ctx, runID)
	if err != nil {
		return apiErr("fetch summary", err)
	}

	// Render only for terminals; raw markdown pipes cleanly.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		_, err = c.Root().Writer.Write(md)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(string(md))
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	fmt.Fprint(c.Root().Writer, rendered)
	return nil
}

func (cmd *RunCmd) runChangelog(ctx context.Context, c *cli.Command) error {
	runID := c.Args().First()
	if runID == "" {
		return fmt.Errorf("usage: redline run changelog <run-id>")
	}

	csv, err := cmd.flags.Client.ChangelogCSV(ctx, runID)
	if err != nil {
		return apiErr("fetch changelog", err)
	}
	_, err = c.Root().Writer.Write(csv)
	return err
}

func (cmd *RunCmd) runArtifacts(ctx context.Context, c *cli.Command) error {
	runID := c.Args().First()
	if runID == "" {
		return fmt.Errorf("usage: redline run artifacts <run-id>")
	}

	list, err := cmd.flags.Client.ListArtifacts(ctx, runID)
	if err != nil {
		return apiErr("list artifacts", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, list)
	}

	for _, f := range list.Files {
		if suggest.IsCorrectionArtifact(f) {
			fmt.Fprintln(out, styles.SuccessStyle.Render("▸ ")+f)
		} else {
			fmt.Fprintln(out, "  "+f)
		}
	}
	return nil
}

func (cmd *RunCmd) runArtifact(ctx context.Context, c *cli.Command) error {
	runID := c.Args().Get(0)
	filename := c.Args().Get(1)
	if runID == "" || filename == "" {
		return fmt.Errorf("usage: redline run artifact <run-id> <filename>")
	}

	data, err := cmd.flags.Client.GetArtifact(ctx, runID, filename)
	if err != nil {
		return apiErr("fetch artifact", err)
	}

	if outPath := c.String("out"); outPath != "" {
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		fmt.Fprintln(c.Root().Writer, "Wrote "+outPath)
		return nil
	}

	_, err = c.Root().Writer.Write(data)
	return err
}
