package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/prooflab/redline/internal/core/styles"
	"github.com/prooflab/redline/pkg/iojson"
)

type LogoutCmd struct {
	flags *Flags
}

// NewLogoutCmd creates a new logout command
func NewLogoutCmd(flags *Flags) *LogoutCmd {
	return &LogoutCmd{flags: flags}
}

// Register adds the logout command to the application
func (cmd *LogoutCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "logout",
		Usage:     "Discard the stored access token",
		UsageText: "redline logout",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := cmd.flags.Session.Logout(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			fmt.Fprintln(c.Root().Writer, "Logged out")
			return nil
		},
	})

	return app
}

type WhoamiCmd struct {
	flags *Flags

	jsonOutput bool
}

// NewWhoamiCmd creates a new whoami command
func NewWhoamiCmd(flags *Flags) *WhoamiCmd {
	return &WhoamiCmd{flags: flags}
}

// Register adds the whoami command to the application
func (cmd *WhoamiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "whoami",
		Usage:     "Show the logged-in account",
		UsageText: "redline whoami [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *WhoamiCmd) run(ctx context.Context, c *cli.Command) error {
	if err := cmd.flags.Session.Init(ctx); err != nil {
		return err
	}
	if !cmd.flags.Session.Authenticated() {
		return fmt.Errorf("not logged in; run 'redline login'")
	}

	user := cmd.flags.Session.User()
	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, user)
	}
	fmt.Fprintln(c.Root().Writer, user.Email)
	return nil
}

type HealthCmd struct {
	flags *Flags
}

// NewHealthCmd creates a new health command
func NewHealthCmd(flags *Flags) *HealthCmd {
	return &HealthCmd{flags: flags}
}

// Register adds the health command to the application
func (cmd *HealthCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "health",
		Usage:     "Check that the backend is reachable",
		UsageText: "redline health",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := cmd.flags.Client.Health(ctx); err != nil {
				return fmt.Errorf("backend unreachable: %w", err)
			}
			fmt.Fprintln(c.Root().Writer, styles.SuccessStyle.Render("ok"))
			return nil
		},
	})

	return app
}
