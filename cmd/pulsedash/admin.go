package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"syscall"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/sagecrest/pulsedash/internal/adapter/postgres"
	"github.com/sagecrest/pulsedash/internal/config"
	"github.com/sagecrest/pulsedash/internal/service"
)

// runAdmin dispatches admin subcommands (create-credential, list-credentials,
// reset-password).
func runAdmin(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" {
		printAdminHelp()
		return nil
	}

	switch args[0] {
	case "create-credential":
		return runAdminCreateCredential(args[1:])
	case "list-credentials":
		return runAdminListCredentials(args[1:])
	case "reset-password":
		return runAdminResetPassword(args[1:])
	default:
		printAdminHelp()
		return fmt.Errorf("unknown admin command: %s", args[0])
	}
}

func printAdminHelp() {
	fmt.Fprintf(os.Stderr, `Usage: pulsedash admin <command> [options]

Commands:
  create-credential   Create a new dashboard credential
  list-credentials    List all credentials
  reset-password      Reset a credential's password
  help                Show this help message

Examples:
  pulsedash admin create-credential --name "Ops" --admin
  pulsedash admin list-credentials
  pulsedash admin reset-password --id 3f1c...
`)
}

func loadAdminDeps() (*service.AuthService, *postgres.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	store := postgres.NewStore(pool)
	authSvc := service.NewAuthService(store, nil)

	cleanup := func() {
		pool.Close()
	}
	return authSvc, store, cleanup, nil
}

func runAdminCreateCredential(args []string) error {
	fs := flag.NewFlagSet("create-credential", flag.ContinueOnError)
	name := fs.String("name", "", "display name (required)")
	admin := fs.Bool("admin", false, "grant admin access")
	password := fs.String("password", "", "password (prompted if not provided)") //nolint:gosec // CLI flag
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	pass := *password
	if pass == "" {
		var err error
		pass, err = promptPassword("Password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if pass != confirm {
			return fmt.Errorf("passwords do not match")
		}
	}

	authSvc, _, cleanup, err := loadAdminDeps()
	if err != nil {
		return err
	}
	defer cleanup()

	cred, err := authSvc.Provision(context.Background(), pass, *name, *admin)
	if err != nil {
		return fmt.Errorf("create credential: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Credential created: %s (id=%s, admin=%t)\n", cred.DisplayName, cred.ID, cred.IsAdmin)
	return nil
}

func runAdminListCredentials(args []string) error {
	fs := flag.NewFlagSet("list-credentials", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, store, cleanup, err := loadAdminDeps()
	if err != nil {
		return err
	}
	defer cleanup()

	creds, err := store.ListCredentials(context.Background())
	if err != nil {
		return fmt.Errorf("list credentials: %w", err)
	}

	if len(creds) == 0 {
		fmt.Println("No credentials found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tADMIN\tCREATED")
	for i := range creds {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%t\t%s\n",
			creds[i].ID, creds[i].DisplayName, creds[i].IsAdmin, creds[i].CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func runAdminResetPassword(args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	id := fs.String("id", "", "credential id (required)")
	password := fs.String("password", "", "new password (prompted if not provided)") //nolint:gosec // CLI flag
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	newPass := *password
	if newPass == "" {
		var err error
		newPass, err = promptPassword("New password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if newPass != confirm {
			return fmt.Errorf("passwords do not match")
		}
	}

	authSvc, _, cleanup, err := loadAdminDeps()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := authSvc.ResetPassword(context.Background(), *id, newPass); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Password reset successfully for %s\n", *id)
	return nil
}

// promptPassword reads a password from the terminal without echoing.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin)) //nolint:unconvert // int conversion needed on some platforms
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
