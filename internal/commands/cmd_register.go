package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/prooflab/redline/internal/api"
	"github.com/prooflab/redline/internal/core/styles"
)

type RegisterCmd struct {
	flags *Flags

	// Command-specific flags
	email    string
	password string
}

// NewRegisterCmd creates a new register command
func NewRegisterCmd(flags *Flags) *RegisterCmd {
	return &RegisterCmd{flags: flags}
}

// Register adds the register command to the application
func (cmd *RegisterCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "register",
		Usage:     "Create an account and log in",
		UsageText: "redline register [--email <email>] [--password <password>]",
		Description: `Creates a new account on the backend, then stores the issued token
exactly like 'redline login'.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "email",
				Aliases:     []string{"e"},
				Usage:       "account email",
				Destination: &cmd.email,
			},
			&cli.StringFlag{
				Name:        "password",
				Aliases:     []string{"p"},
				Usage:       "account password (prefer the interactive prompt)",
				Destination: &cmd.password,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RegisterCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.email == "" || cmd.password == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("missing --email or --password and stdin is not a terminal")
		}
		if err := credentialsForm("Create account", &cmd.email, &cmd.password); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	creds := api.Credentials{Email: cmd.email, Password: cmd.password}
	if err := cmd.flags.Session.Register(ctx, creds); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	user := cmd.flags.Session.User()
	fmt.Fprintln(c.Root().Writer, styles.SuccessStyle.Render("Account created, logged in as "+user.Email))
	return nil
}
