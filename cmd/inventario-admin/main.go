// Package main is the entry point for the Inventario admin CLI.
// This tool provides administrative commands for managing user accounts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmarrez/inventario/internal/config"
	"github.com/dmarrez/inventario/internal/repository"
	"github.com/dmarrez/inventario/internal/repository/postgres"
	"github.com/dmarrez/inventario/internal/repository/sqlite"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version":
		fmt.Printf("Inventario Admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "user":
		if err := runUserCommand(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runUserCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("user command requires a subcommand: list, delete")
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("user list", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		limit := fs.Int("limit", 100, "maximum number of users to list")
		offset := fs.Int("offset", 0, "number of users to skip")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return listUsers(*configPath, *limit, *offset)

	case "delete":
		fs := flag.NewFlagSet("user delete", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("user delete requires exactly one user id")
		}
		userID, err := strconv.ParseInt(fs.Arg(0), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", fs.Arg(0))
		}
		return deleteUser(*configPath, userID)

	default:
		return fmt.Errorf("unknown user subcommand: %s", args[0])
	}
}

func listUsers(configPath string, limit, offset int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, closeDB, err := openRepositories(ctx, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	users, err := repos.User.List(ctx, repository.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tCREATED")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

func deleteUser(configPath string, userID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, closeDB, err := openRepositories(ctx, configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	// Products cascade with the user at the store level.
	if err := repos.User.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}

	fmt.Printf("User %d deleted (products removed by cascade)\n", userID)
	return nil
}

// openRepositories loads the configuration and connects the configured
// database driver. The returned func closes the connection.
func openRepositories(ctx context.Context, configPath string) (*repository.Repositories, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Admin output goes to stdout; keep log noise down.
	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)

	if cfg.Database.IsEmbedded() {
		db, err := sqlite.NewDB(ctx, sqlite.Config{
			Path:        cfg.Database.Path,
			JournalMode: cfg.Database.JournalMode,
			BusyTimeout: cfg.Database.BusyTimeout,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		repos := &repository.Repositories{
			User:    sqlite.NewUserRepository(db),
			Product: sqlite.NewProductRepository(db),
		}
		return repos, func() { _ = db.Close() }, nil
	}

	db, err := postgres.NewDB(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("database unreachable: %w", err)
	}
	repos := &repository.Repositories{
		User:    postgres.NewUserRepository(db),
		Product: postgres.NewProductRepository(db),
	}
	return repos, func() { _ = db.Close() }, nil
}

func printUsage() {
	fmt.Println(`Inventario Admin CLI

Usage:
  inventario-admin <command> [arguments]

Commands:
  user list    List user accounts
  user delete  Delete a user account and, by cascade, its products
  version      Print version information
  help         Show this help message

Examples:
  inventario-admin user list --limit 50
  inventario-admin user delete 42
  inventario-admin user list --config /etc/inventario/config.yaml

Configuration is read the same way as the server: a config file plus
INVENTARIO_-prefixed environment variables.`)
}
