package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/prooflab/redline/internal/api"
	"github.com/prooflab/redline/internal/core/styles"
	"github.com/prooflab/redline/internal/core/validate"
	"github.com/prooflab/redline/pkg/iojson"
)

type ProjectsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	name       string
	variant    string
	mode       string
	force      bool
}

// NewProjectsCmd creates a new projects command
func NewProjectsCmd(flags *Flags) *ProjectsCmd {
	return &ProjectsCmd{flags: flags}
}

// Register adds the projects command and its subcommands to the application
func (cmd *ProjectsCmd) Register(app *cli.Command) *cli.Command {
	jsonFlag := &cli.BoolFlag{
		Name:        "json",
		Usage:       "output as JSON",
		Destination: &cmd.jsonOutput,
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:      "projects",
		Usage:     "Manage correction projects",
		UsageText: "redline projects <command>",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List your projects",
				UsageText: "redline projects ls [--json]",
				Flags:     []cli.Flag{jsonFlag},
				Action:    cmd.runLs,
			},
			{
				Name:      "new",
				Usage:     "Create a project",
				UsageText: "redline projects new [--name <name>]",
				Description: `Creates a project. When --name is omitted and stdin is a terminal, an
interactive form prompts for the fields.`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "name",
						Aliases:     []string{"n"},
						Usage:       "project name",
						Destination: &cmd.name,
					},
					&cli.StringFlag{
						Name:        "variant",
						Usage:       "language variant passed to the correction engine",
						Destination: &cmd.variant,
					},
					&cli.StringFlag{
						Name:        "mode",
						Usage:       "default correction mode for runs in this project",
						Destination: &cmd.mode,
					},
				},
				Action: cmd.runNew,
			},
			{
				Name:      "show",
				Usage:     "Show a project with its documents and runs",
				UsageText: "redline projects show <project-id> [--json]",
				Flags:     []cli.Flag{jsonFlag},
				Action:    cmd.runShow,
			},
			{
				Name:      "rename",
				Usage:     "Rename a project",
				UsageText: "redline projects rename <project-id> <new-name>",
				Action:    cmd.runRename,
			},
			{
				Name:      "rm",
				Usage:     "Delete a project",
				UsageText: "redline projects rm [--force] <project-id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "force",
						Aliases:     []string{"f"},
						Usage:       "skip the confirmation prompt",
						Destination: &cmd.force,
					},
				},
				Action: cmd.runRm,
			},
		},
	})

	return app
}

func (cmd *ProjectsCmd) runLs(ctx context.Context, c *cli.Command) error {
	projects, err := cmd.flags.Client.ListProjects(ctx)
	if err != nil {
		return apiErr("list projects", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, p := range projects {
			if err := iojson.WriteLine(out, p); err != nil {
				return fmt.Errorf("encode project: %w", err)
			}
		}
		return nil
	}

	if len(projects) == 0 {
		fmt.Fprintln(os.Stderr, "No projects found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tVARIANT\tCREATED")
	for _, p := range projects {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Variant, p.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func (cmd *ProjectsCmd) runNew(ctx context.Context, c *cli.Command) error {
	if cmd.name == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("missing --name and stdin is not a terminal")
		}
		if err := cmd.newForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}
	if err := validate.ProjectNameField("name", cmd.name); err != nil {
		return err
	}

	project, err := cmd.flags.Client.CreateProject(ctx, api.CreateProject{
		Name:    strings.TrimSpace(cmd.name),
		Variant: cmd.variant,
		Mode:    cmd.mode,
	})
	if err != nil {
		return apiErr("create project", err)
	}

	fmt.Fprintln(c.Root().Writer, styles.SuccessStyle.Render("Created project "+project.Name)+" "+styles.TextMutedStyle.Render(project.ID))
	return nil
}

func (cmd *ProjectsCmd) newForm() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Validate(validate.ProjectName).
				Value(&cmd.name),
			huh.NewInput().
				Title("Variant").
				Description("Language variant, e.g. en-US (optional)").
				Value(&cmd.variant),
		),
	).WithTheme(styles.FormTheme()).Run()
}

func (cmd *ProjectsCmd) runShow(ctx context.Context, c *cli.Command) error {
	projectID := c.Args().First()
	if projectID == "" {
		return fmt.Errorf("usage: redline projects show <project-id>")
	}

	detail, err := cmd.flags.Client.GetProject(ctx, projectID)
	if err != nil {
		return apiErr("get project", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, detail)
	}

	fmt.Fprintln(out, styles.TitleStyle.Render(detail.Name)+" "+styles.TextMutedStyle.Render(detail.ID))

	if len(detail.Documents) > 0 {
		fmt.Fprintln(out, styles.SubtitleStyle.Render("Documents"))
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, d := range detail.Documents {
			_, _ = fmt.Fprintf(w, "  %s\t%s\t%s\n", d.ID, d.Name, d.Status)
		}
		_ = w.Flush()
	}

	if len(detail.Runs) > 0 {
		fmt.Fprintln(out, styles.SubtitleStyle.Render("Runs"))
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, r := range detail.Runs {
			_, _ = fmt.Fprintf(w, "  %s\t%s\t%s\n", r.ID, r.Status, r.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		_ = w.Flush()
	}

	return nil
}

func (cmd *ProjectsCmd) runRename(ctx context.Context, c *cli.Command) error {
	projectID := c.Args().Get(0)
	newName := c.Args().Get(1)
	if projectID == "" || newName == "" {
		return fmt.Errorf("usage: redline projects rename <project-id> <new-name>")
	}
	if err := validate.ProjectNameField("name", newName); err != nil {
		return err
	}

	project, err := cmd.flags.Client.UpdateProject(ctx, projectID, api.UpdateProject{Name: strings.TrimSpace(newName)})
	if err != nil {
		return apiErr("rename project", err)
	}

	fmt.Fprintln(c.Root().Writer, styles.SuccessStyle.Render("Renamed to "+project.Name))
	return nil
}

func (cmd *ProjectsCmd) runRm(ctx context.Context, c *cli.Command) error {
	projectID := c.Args().First()
	if projectID == "" {
		return fmt.Errorf("usage: redline projects rm <project-id>")
	}

	if !cmd.force {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("refusing to delete without --force when stdin is not a terminal")
		}
		var confirmed bool
		err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete project %s and all of its documents and runs?", projectID)).
				Value(&confirmed),
		)).WithTheme(styles.FormTheme()).Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
		if !confirmed {
			return nil
		}
	}

	if err := cmd.flags.Client.DeleteProject(ctx, projectID); err != nil {
		return apiErr("delete project", err)
	}

	fmt.Fprintln(c.Root().Writer, "Deleted "+projectID)
	return nil
}
