// Package ledgermigrate imports legacy attribute documents into the
// ledger store. Files are named <character-id>.<category>.json; the
// importer detects legacy versus current format per file, converts, and
// keeps going past individual failures.
package ledgermigrate

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/migrate"
	entrypoint "github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/platform/cmd"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/service"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/storage/sqlite"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/telemetry"
)

// Config holds ledger-migrate command configuration.
type Config struct {
	DBPath string `env:"WORLDSIM_DB_PATH" envDefault:"data/worldsim.db"`
	Dir    string `env:"WORLDSIM_MIGRATE_DIR"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the ledger database")
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "Directory of legacy ledger documents")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.Dir == "" {
		return Config{}, fmt.Errorf("a document directory is required (-dir)")
	}
	return cfg, nil
}

// Run imports every .json document under cfg.Dir and reports counts.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	svc, err := service.NewLedgerService(store, telemetry.NewEmitter(store), service.DefaultProfiles())
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(cfg.Dir)
	if err != nil {
		return fmt.Errorf("read document dir: %w", err)
	}

	var imported, failed int
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := importFile(ctx, svc, filepath.Join(cfg.Dir, entry.Name())); err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", entry.Name(), err)
			continue
		}
		imported++
		fmt.Fprintf(out, "ok   %s\n", entry.Name())
	}
	fmt.Fprintf(out, "imported %d, failed %d\n", imported, failed)

	if imported == 0 && failed > 0 {
		return fmt.Errorf("all %d documents failed to import", failed)
	}
	return nil
}

// importFile converts one document and stores it as the character's
// first snapshot.
func importFile(ctx context.Context, svc *service.LedgerService, path string) error {
	characterID, category, err := splitDocumentName(filepath.Base(path))
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	src, err := migrate.Detect(data)
	if err != nil {
		return err
	}
	imported, err := migrate.Import(src)
	if err != nil {
		return err
	}
	return svc.ImportLedger(ctx, characterID, category, imported)
}

func splitDocumentName(name string) (characterID, category string, err error) {
	name = strings.TrimSuffix(name, ".json")
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return "", "", fmt.Errorf("document name %q is not <character-id>.<category>.json", name)
	}
	return name[:idx], name[idx+1:], nil
}
