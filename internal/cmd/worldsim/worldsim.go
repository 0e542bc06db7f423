// Package worldsim parses worldsim command flags and runs the ledger
// daemon: it streams world-event and decay instructions from a JSON
// lines input and applies them to persistent character ledgers.
package worldsim

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/decay"
	entrypoint "github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/platform/cmd"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/platform/id"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/policy"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/service"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/storage/sqlite"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/telemetry"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/worldevent"
)

// Config holds worldsim command configuration.
type Config struct {
	DBPath    string `env:"WORLDSIM_DB_PATH" envDefault:"data/worldsim.db"`
	Input     string `env:"WORLDSIM_INPUT" envDefault:"-"`
	TuningDir string `env:"WORLDSIM_TUNING_DIR"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the ledger database")
	fs.StringVar(&cfg.Input, "input", cfg.Input, "JSON lines input file, or - for stdin")
	fs.StringVar(&cfg.TuningDir, "tuning", cfg.TuningDir, "Directory of YAML tuning overrides")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the ledger daemon.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWorldsim, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		profiles, err := buildProfiles(cfg.TuningDir)
		if err != nil {
			return fmt.Errorf("load tuning: %w", err)
		}
		svc, err := service.NewLedgerService(store, telemetry.NewEmitter(store), profiles)
		if err != nil {
			return err
		}

		input, closeInput, err := openInput(cfg.Input)
		if err != nil {
			return err
		}
		defer closeInput()

		return process(ctx, svc, input)
	})
}

// buildProfiles starts from the built-in category profiles and layers
// optional YAML overrides from dir: <category>_policy.yaml and
// <category>_decay.yaml.
func buildProfiles(dir string) (map[string]service.CategoryProfile, error) {
	profiles := service.DefaultProfiles()
	if dir == "" {
		return profiles, nil
	}

	build := map[string]func(policy.Config) *policy.Policy{
		service.CategoryAlignment: policy.NewAlignmentPolicy,
		service.CategoryInfluence: policy.NewInfluencePolicy,
		service.CategoryPrestige:  policy.NewPrestigePolicy,
	}
	for category, profile := range profiles {
		policyPath := filepath.Join(dir, category+"_policy.yaml")
		if _, err := os.Stat(policyPath); err == nil {
			cfg, err := policy.Load(policyPath, profile.Policy.Config())
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", policyPath, err)
			}
			profile.Policy = build[category](cfg)
		}
		decayPath := filepath.Join(dir, category+"_decay.yaml")
		if _, err := os.Stat(decayPath); err == nil {
			cfg, err := decay.Load(decayPath, profile.Decay)
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", decayPath, err)
			}
			profile.Decay = cfg
		}
		profiles[category] = profile
	}
	return profiles, nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// instruction is one JSON line of daemon input.
type instruction struct {
	Op          string    `json:"op"`
	CharacterID string    `json:"character_id"`
	Category    string    `json:"category"`
	Elapsed     float64   `json:"elapsed"`
	At          time.Time `json:"at"`

	Event worldevent.Event       `json:"event"`
	Actor worldevent.Actor       `json:"actor"`
	Env   worldevent.Environment `json:"env"`

	Modifiers decay.Modifiers `json:"modifiers"`
}

// process applies instructions until the input ends or the context is
// canceled. Bad lines are counted and skipped, not fatal.
func process(ctx context.Context, svc *service.LedgerService, input io.Reader) error {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var applied, failed int
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			log.Printf("stopping: %d applied, %d failed", applied, failed)
			return ctx.Err()
		default:
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var inst instruction
		if err := json.Unmarshal(line, &inst); err != nil {
			failed++
			log.Printf("decode instruction: %v", err)
			continue
		}
		if err := apply(ctx, svc, inst); err != nil {
			failed++
			log.Printf("apply %s %s/%s: %v", inst.Op, inst.CharacterID, inst.Category, err)
			continue
		}
		applied++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	log.Printf("done: %d applied, %d failed", applied, failed)
	return nil
}

func apply(ctx context.Context, svc *service.LedgerService, inst instruction) error {
	switch inst.Op {
	case "", "event":
		if inst.Event.ID == "" {
			eventID, err := id.NewID()
			if err != nil {
				return fmt.Errorf("assign event id: %w", err)
			}
			inst.Event.ID = eventID
		}
		_, err := svc.ApplyOccurrence(ctx, inst.CharacterID, inst.Category, worldevent.Occurrence{
			Event: inst.Event,
			Actor: inst.Actor,
			Env:   inst.Env,
		})
		return err
	case "decay":
		at := inst.At
		if at.IsZero() {
			at = time.Now().UTC()
		}
		_, err := svc.ApplyDecay(ctx, inst.CharacterID, inst.Category, inst.Elapsed, at, inst.Modifiers)
		return err
	default:
		return fmt.Errorf("unknown op %q", inst.Op)
	}
}
