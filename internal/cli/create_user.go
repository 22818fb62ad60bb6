package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/entrypoint"
)

// CreateUserCommand registers a user from the terminal, prompting for the password.
type CreateUserCommand struct {
	Username     string
	Name         string
	BirthDate    string
	DatabasePath string

	// readPassword is replaced in tests
	readPassword func(prompt string) (string, error)
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{readPassword: newPasswordPrompt(os.Stdin)}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Login name (required)")
	fs.StringVar(&cmd.Name, "name", "", "Display name (required)")
	fs.StringVar(&cmd.BirthDate, "birth-date", "", "Birth date as YYYY-MM-DD (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -username <name> -name <display name> -birth-date <YYYY-MM-DD> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user. The password is read from the terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case cmd.Username == "":
		return fmt.Errorf("required flag -username not provided")
	case cmd.Name == "":
		return fmt.Errorf("required flag -name not provided")
	case cmd.BirthDate == "":
		return fmt.Errorf("required flag -birth-date not provided")
	}

	return nil
}

func (cmd *CreateUserCommand) Run() error {
	birthDate, err := time.Parse("2006-01-02", cmd.BirthDate)
	if err != nil {
		return fmt.Errorf("invalid -birth-date %q: %w", cmd.BirthDate, err)
	}

	password, err := cmd.readPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := cmd.readPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	cfg := config.NewConfig()
	cfg.Database.Path = cmd.DatabasePath

	app, err := entrypoint.NewApp(cfg, logger.Silent)
	if err != nil {
		return err
	}
	defer app.Close()

	user, err := app.Users.Create(context.Background(), &entities.User{
		Username:  cmd.Username,
		Name:      cmd.Name,
		BirthDate: birthDate,
	}, password)
	if err != nil {
		return err
	}

	fmt.Printf("Created user %q with id %d\n", user.Username, user.ID)
	return nil
}

// newPasswordPrompt reads passwords from in without echo when it is a terminal,
// falling back to plain line reads for piped input.
func newPasswordPrompt(in *os.File) func(prompt string) (string, error) {
	lines := bufio.NewReader(in)
	return func(prompt string) (string, error) {
		fmt.Fprint(os.Stderr, prompt)

		fd := int(in.Fd())
		if term.IsTerminal(fd) {
			raw, err := term.ReadPassword(fd)
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return "", fmt.Errorf("failed to read password: %w", err)
			}
			return string(raw), nil
		}

		line, err := lines.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}
