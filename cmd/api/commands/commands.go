package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/itemkeeper/core/internal/adapters/repository"
	"github.com/itemkeeper/core/internal/domain/entities"
	"github.com/itemkeeper/core/internal/infrastructure/config"
	"github.com/itemkeeper/core/internal/infrastructure/logger"
	"github.com/itemkeeper/core/internal/infrastructure/server"
)

// Version information, overridden at build time
var (
	Version   = "1.0.0"
	GitCommit = "development"
)

var serviceArgs = cobra.MatchAll(
	cobra.ExactArgs(1),
	cobra.OnlyValidArgs,
)

var validServices = []string{entities.ServiceCatalog, entities.ServiceShopping}

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "serve [catalog|shopping]",
		Short:     "Start an API server",
		Long:      "Start the catalog (Items API) or the shopping list server with all configured routes and middleware",
		Args:      serviceArgs,
		ValidArgs: validServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(args[0])
		},
	}
}

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "init [catalog|shopping]",
		Short:     "Create an empty database file",
		Long:      "Create the configured database file with an empty document unless it already exists",
		Args:      serviceArgs,
		ValidArgs: validServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return initDatabase(cmd.Context(), cmd.OutOrStdout(), cfg, args[0])
		},
	}
}

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "check [catalog|shopping]",
		Short:     "Verify the database file exists and parses",
		Args:      serviceArgs,
		ValidArgs: validServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return checkDatabase(cmd.Context(), cmd.OutOrStdout(), cfg, args[0])
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print itemkeeper version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "itemkeeper %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit: %s\n", GitCommit)
		},
	}
}

func runServer(service string) error {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	srv, err := server.New(cfg, service, appLogger)
	if errors.Is(err, entities.ErrDatabaseNotFound) {
		path, _ := cfg.Store.PathFor(service)
		appLogger.Errorw("Database file not found", "path", path)
		appLogger.Errorw("In local development: run `itemkeeper init " + service + "` or create the file manually.")
		appLogger.Errorw("In Docker: mount a volume or bind mount so that the database file exists.")
		return err
	}
	if err != nil {
		appLogger.Errorw("Failed to initialize server", "error", err)
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Infow("Starting API server",
			"app", cfg.App.Name,
			"version", cfg.App.Version,
			"service", service,
			"port", cfg.Server.Port,
			"environment", cfg.App.Environment,
		)
		errCh <- srv.Start(cfg.Server.GetAddr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Errorw("Server failed to start", "error", err)
			return err
		}
		return nil
	case <-quit:
	}

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorw("Server forced to shutdown", "error", err)
		return err
	}

	appLogger.Info("Server exited gracefully")
	return nil
}

// database is the part of a repository the init command needs
type database interface {
	Init(ctx context.Context) (bool, error)
	Path() string
}

func storeOptions(cfg *config.Config, service string) (repository.StoreOptions, error) {
	mode, err := cfg.Store.Mode()
	if err != nil {
		return repository.StoreOptions{}, err
	}
	path, err := cfg.Store.PathFor(service)
	if err != nil {
		return repository.StoreOptions{}, err
	}
	return repository.StoreOptions{Path: path, AtomicWrites: cfg.Store.AtomicWrites, FileMode: mode}, nil
}

func initDatabase(ctx context.Context, out io.Writer, cfg *config.Config, service string) error {
	opts, err := storeOptions(cfg, service)
	if err != nil {
		return err
	}

	var db database
	if service == entities.ServiceCatalog {
		db = repository.NewCatalogRepository(opts)
	} else {
		db = repository.NewShoppingRepository(opts)
	}

	created, err := db.Init(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize %s database: %w", service, err)
	}

	if created {
		fmt.Fprintf(out, "Created empty %s database at %s\n", service, db.Path())
	} else {
		fmt.Fprintf(out, "%s database already exists at %s\n", service, db.Path())
	}
	return nil
}

// checkDatabase loads the document strictly, so a shopping list that the
// server would silently treat as empty is still reported.
func checkDatabase(ctx context.Context, out io.Writer, cfg *config.Config, service string) error {
	opts, err := storeOptions(cfg, service)
	if err != nil {
		return err
	}

	var count int
	if service == entities.ServiceCatalog {
		doc, err := repository.NewCatalogRepository(opts).Load(ctx)
		if err != nil {
			return err
		}
		count = len(doc.Items)
	} else {
		opts.Service = service
		opts.Policy = repository.PolicyStrict
		store := repository.NewDocumentStore(opts, func() entities.ShoppingList {
			return entities.ShoppingList{}
		}, nil)
		list, err := store.Load(ctx)
		if err != nil {
			return err
		}
		count = len(list)
	}

	fmt.Fprintf(out, "%s database OK: %s (%d items)\n", service, opts.Path, count)
	return nil
}
