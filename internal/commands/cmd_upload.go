package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/prooflab/redline/internal/core/styles"
)

type UploadCmd struct {
	flags *Flags

	// Command-specific flags
	projectID string
}

// NewUploadCmd creates a new upload command
func NewUploadCmd(flags *Flags) *UploadCmd {
	return &UploadCmd{flags: flags}
}

// Register adds the upload command to the application
func (cmd *UploadCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "upload",
		Usage:     "Upload documents to a project",
		UsageText: "redline upload --project <project-id> <path-or-glob>...",
		Description: `Uploads local documents to a project in one request. Arguments may be
file paths or doublestar globs:

  redline upload --project 4f2a docs/report.docx
  redline upload --project 4f2a 'drafts/**/*.docx'`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "project",
				Aliases:     []string{"P"},
				Usage:       "target project id",
				Required:    true,
				Destination: &cmd.projectID,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *UploadCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("usage: redline upload --project <project-id> <path-or-glob>...")
	}

	paths, err := ExpandGlobs(c.Args().Slice())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files matched")
	}

	if err := cmd.flags.Client.UploadDocuments(ctx, cmd.projectID, paths); err != nil {
		return apiErr("upload", err)
	}

	fmt.Fprintln(c.Root().Writer, styles.SuccessStyle.Render(fmt.Sprintf("Uploaded %d file(s)", len(paths))))
	for _, p := range paths {
		fmt.Fprintln(c.Root().Writer, "  "+p)
	}
	return nil
}

// ExpandGlobs resolves each argument to files: literal paths pass through
// after a stat, glob patterns expand via doublestar. Directories matched by
// a glob are skipped. The result is sorted and de-duplicated.
func ExpandGlobs(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string

	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, arg := range args {
		if !containsGlobMeta(arg) {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", arg, err)
			}
			if info.IsDir() {
				return nil, fmt.Errorf("%s is a directory; use a glob like %s", arg, filepath.Join(arg, "**", "*"))
			}
			add(arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			add(m)
		}
	}

	sort.Strings(out)
	return out, nil
}

func containsGlobMeta(s string) bool {
	for _, r := range s {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
