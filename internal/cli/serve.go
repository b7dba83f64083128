package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/evcraddock/comments/internal/comment"
	"github.com/evcraddock/comments/internal/config"
	"github.com/evcraddock/comments/internal/db"
	"github.com/evcraddock/comments/internal/docdb"
	"github.com/evcraddock/comments/internal/logging"
	"github.com/evcraddock/comments/internal/web"
)

func newServeCmd() *cobra.Command {
	v := config.New()
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the comments API server",
		Long: `Start the HTTP server for the comments API.

Settings come from flags, COMMENTS_* environment variables (for example
COMMENTS_MONGO_URI), an optional YAML file given with --config, and defaults,
in that order of precedence.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), v, configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().Int("port", 8080, "port to listen on")
	cmd.Flags().String("backend", config.BackendMongo, "storage backend (mongo|sqlite)")
	cmd.Flags().String("db", "", "SQLite database path (default: ~/.comments/comments.db)")
	cmd.Flags().String("mongo-uri", "", "MongoDB connection URI (default: mongodb://localhost:27017)")
	cmd.Flags().Bool("dev", false, "dev mode: human-readable debug logging")

	bindings := []struct{ key, flag string }{
		{"port", "port"},
		{"backend", "backend"},
		{"sqlite.path", "db"},
		{"mongo.uri", "mongo-uri"},
		{"dev_mode", "dev"},
	}
	for _, b := range bindings {
		if err := v.BindPFlag(b.key, cmd.Flags().Lookup(b.flag)); err != nil {
			panic(fmt.Sprintf("binding --%s: %v", b.flag, err))
		}
	}

	return cmd
}

func runServe(ctx context.Context, v *viper.Viper, configPath string) error {
	cfg, err := config.Load(v, configPath)
	if err != nil {
		return err
	}

	logging.Setup(cfg.DevMode)
	if cfg.DevMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	srv, err := web.NewServer(store, web.Options{
		BasePath:    cfg.BasePath,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		return err
	}

	slog.Info("starting comments API",
		"backend", cfg.Backend,
		"port", cfg.Port,
		"base_path", cfg.BasePath,
	)
	return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Port), cfg.ShutdownTimeout)
}

// openStore opens the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg config.Config) (comment.Store, func(), error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		database, err := openDB(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return comment.NewRepository(database), func() { closeDB(database) }, nil

	case config.BackendMongo:
		client, err := docdb.Connect(ctx, docdb.Options{URI: cfg.Mongo.URI, Timeout: cfg.Mongo.Timeout})
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				slog.Warn("disconnecting from mongo", "error", err)
			}
		}

		coll := docdb.Collection(client, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err := docdb.EnsureIndexes(ctx, coll); err != nil {
			disconnect()
			return nil, nil, err
		}
		return comment.NewMongoRepository(coll, cfg.Mongo.Timeout), disconnect, nil
	}

	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// openDB opens the SQLite database at path, or the default path if empty.
func openDB(path string) (*sql.DB, error) {
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// closeDB closes the database, logging any error.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		slog.Warn("closing database", "error", err)
	}
}
