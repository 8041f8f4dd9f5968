// Package main is an operator CLI for the portfolio backend database.
//
// A single-admin site has no in-band password recovery — if the admin
// password is lost, recovery is an operator action against the database
// file:
//
//	admin -db data/portfolio.db reset-password
//
// Stop the server first, or run against a copy: the tool opens the same
// SQLite file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/sakif/portfolio-backend/internal/apperror"
	"github.com/sakif/portfolio-backend/internal/auth"
	sqliteRepo "github.com/sakif/portfolio-backend/internal/repository/sqlite"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	dbPath := "data/portfolio.db"
	username := "admin"

	// Tiny hand-rolled arg loop — two flags and one subcommand don't earn a
	// flag-parsing dependency.
	var command string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-db":
			i++
			if i >= len(args) {
				return errors.New("-db requires a path")
			}
			dbPath = args[i]
		case "-user":
			i++
			if i >= len(args) {
				return errors.New("-user requires a username")
			}
			username = args[i]
		default:
			command = args[i]
		}
	}

	switch command {
	case "reset-password":
		return resetPassword(dbPath, username)
	case "":
		return errors.New("usage: admin [-db path] [-user name] reset-password")
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// resetPassword prompts (hidden input) for a new password, confirms it, and
// writes the bcrypt hash over the stored one.
func resetPassword(dbPath, username string) error {
	password, err := promptPassword(fmt.Sprintf("New password for %q: ", username))
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}
	if password == "" {
		return errors.New("password must not be empty")
	}

	hash, err := auth.NewPasswordService().Hash(password)
	if err != nil {
		return err
	}

	db, err := sqliteRepo.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.UpdatePassword(context.Background(), username, hash); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return fmt.Errorf("no user %q in %s — start the server once with ADMIN_PASSWORD set to seed it", username, dbPath)
		}
		return err
	}

	color.Green("password updated for %q", username)
	return nil
}

// promptPassword reads a password from the terminal without echoing it.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}
