package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/evcraddock/comments/internal/comment"
	"github.com/evcraddock/comments/internal/config"
)

func TestOpenStoreSQLite(t *testing.T) {
	cfg := config.Config{
		Backend: config.BackendSQLite,
		SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "serve.db")},
	}

	store, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer closeStore()

	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if _, err := store.Create(context.Background(), comment.Draft{Text: "hi", Author: "a"}); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestOpenStoreUnknownBackend(t *testing.T) {
	_, _, err := openStore(context.Background(), config.Config{Backend: "redis"})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestOpenStoreMongoBadURI(t *testing.T) {
	cfg := config.Config{
		Backend: config.BackendMongo,
		Mongo:   config.MongoConfig{URI: "not-a-uri", Database: "comments", Collection: "comments"},
	}
	if _, _, err := openStore(context.Background(), cfg); err == nil {
		t.Fatal("expected error for malformed mongo URI")
	}
}

func TestRunServeInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  interface{}
	}{
		{"port", "port", 0},
		{"backend", "backend", "redis"},
		{"base path", "base_path", "api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := config.New()
			v.Set(tt.key, tt.val)
			if err := runServe(context.Background(), v, ""); err == nil {
				t.Fatal("expected config error")
			}
		})
	}
}

func TestRunServeMissingConfigFile(t *testing.T) {
	v := config.New()
	if err := runServe(context.Background(), v, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestServeFlagsBound(t *testing.T) {
	cmd := newServeCmd()
	for _, name := range []string{"config", "port", "backend", "db", "mongo-uri", "dev"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing --%s flag", name)
		}
	}
}
