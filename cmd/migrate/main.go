// Command migrate manages the event-planning database schema.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/config"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/logger"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/migration"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

var errUsage = errors.New("invalid usage")

func main() {
	var (
		migrationsPath string
		logLevel       string
		confirm        bool
	)
	flag.StringVar(&migrationsPath, "path", defaultMigrationsPath, "Path to the migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&confirm, "confirm", false, "Confirm destructive commands (drop)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		log.Fatal("Failed to resolve migrations path", zap.Error(err))
	}

	if err := run(log, absPath, args, confirm); err != nil {
		if errors.Is(err, errUsage) {
			log.Error(err.Error())
			printUsage()
			os.Exit(2)
		}
		log.Fatal("Migration command failed", zap.String("command", args[0]), zap.Error(err))
	}
}

func run(log *zap.Logger, path string, args []string, confirm bool) error {
	command := args[0]
	log.Info("Migration CLI started", zap.String("command", command), zap.String("path", path))

	// create and list only touch the filesystem
	switch command {
	case "create":
		if len(args) < 2 {
			return fmt.Errorf("%w: create <name> [description]", errUsage)
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		f, err := migration.CreateMigration(path, args[1], description)
		if err != nil {
			return err
		}
		log.Info("Migration created",
			zap.Uint("version", f.Version),
			zap.String("up", f.UpPath),
			zap.String("down", f.DownPath),
		)
		return nil
	case "list":
		files, err := migration.ListMigrations(path)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Printf("  %s\n", f.BaseName())
		}
		log.Info("Migrations found", zap.Int("count", len(files)))
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, path, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()

	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "step":
		n, err := intArg(args, "step <n>")
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "goto":
		n, err := intArg(args, "goto <version>")
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: version must not be negative", errUsage)
		}
		return m.GoTo(uint(n))
	case "version":
		status, err := m.Status()
		if err != nil {
			return err
		}
		if !status.Applied {
			log.Info("No migrations applied")
			return nil
		}
		log.Info("Current schema version", zap.Uint("version", status.Version), zap.Bool("dirty", status.Dirty))
		return nil
	case "force":
		n, err := intArg(args, "force <version>")
		if err != nil {
			return err
		}
		return m.Force(n)
	case "drop":
		if !confirm {
			return fmt.Errorf("%w: drop requires -confirm", errUsage)
		}
		return m.Drop()
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func intArg(args []string, usage string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errUsage, args[1])
	}
	return n, nil
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Event SaaS database migrations

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (negative rolls back)
  goto <version>        Migrate to a specific version
  version               Show the current schema version
  force <version>       Set the version without running SQL (clears dirty state)
  drop                  Drop every table (requires -confirm)
  create <name> [desc]  Create the next numbered up/down pair
  list                  List migration files

Flags:
  -path string          Migrations directory (default: migrations)
  -log-level string     debug, info, warn, error (default: info)
  -confirm              Confirm destructive commands

Environment:
  EVENTSAAS_DATABASE_HOST, EVENTSAAS_DATABASE_PORT, EVENTSAAS_DATABASE_USER,
  EVENTSAAS_DATABASE_PASSWORD, EVENTSAAS_DATABASE_DBNAME, EVENTSAAS_DATABASE_SSLMODE

Examples:
  migrate up
  migrate step -1
  migrate create add_vendor_tags "Tag vendors for search"
  migrate -confirm drop
`)
}
