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
	"github.com/prooflab/redline/internal/core/validate"
)

type LoginCmd struct {
	flags *Flags

	// Command-specific flags
	email    string
	password string
}

// NewLoginCmd creates a new login command
func NewLoginCmd(flags *Flags) *LoginCmd {
	return &LoginCmd{flags: flags}
}

// Register adds the login command to the application
func (cmd *LoginCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "login",
		Usage:     "Authenticate against the correction backend",
		UsageText: "redline login [--email <email>] [--password <password>]",
		Description: `Exchanges credentials for an access token and stores it under the data
directory. Subsequent commands attach the token automatically.

When --email or --password is omitted and stdin is a terminal, an
interactive form prompts for the missing values.`,
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

func (cmd *LoginCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.email == "" || cmd.password == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("missing --email or --password and stdin is not a terminal")
		}
		if err := credentialsForm("Log in", &cmd.email, &cmd.password); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	creds := api.Credentials{Email: cmd.email, Password: cmd.password}
	if err := cmd.flags.Session.Login(ctx, creds); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	user := cmd.flags.Session.User()
	fmt.Fprintln(c.Root().Writer, styles.SuccessStyle.Render("Logged in as "+user.Email))
	return nil
}

// credentialsForm prompts for whichever of email/password is still empty.
func credentialsForm(title string, email, password *string) error {
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Validate(validate.Email).
			Value(email))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Validate(validate.Required("password")).
			Value(password))
	}

	group := huh.NewGroup(fields...).Title(title)
	return huh.NewForm(group).WithTheme(styles.FormTheme()).Run()
}
