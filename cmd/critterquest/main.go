// Package main is the entry point for the CritterQuest terminal client.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/samdwyer/critterquest/internal/config"
	"github.com/samdwyer/critterquest/internal/game"
	"github.com/samdwyer/critterquest/internal/gamedata"
	"github.com/samdwyer/critterquest/internal/storage"
	"github.com/samdwyer/critterquest/internal/storage/driver"
	"github.com/samdwyer/critterquest/internal/telemetry"
)

const defaultSlot = "default"

func main() {
	fresh := flag.Bool("new", false, "start a new game instead of loading the save slot")
	slotFlag := flag.String("slot", "", "save slot name")
	list := flag.Bool("list", false, "list save slots and exit")
	flag.Parse()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	if cfg.TelemetryEnabled {
		telemetry.ApplyHoneycombEnv()
		shutdown, err := telemetry.Setup(ctx, telemetry.Config{Component: "client", SampleRatio: cfg.TelemetrySample})
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Game will run without observability")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	data, err := gamedata.LoadData()
	if err != nil {
		log.Fatalf("Failed to load game data: %v", err)
	}

	store, err := driver.Open(cfg.StorageDriver, cfg.StoragePath)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	if *list {
		if err := printSlots(ctx, store); err != nil {
			log.Fatalf("Failed to list saves: %v", err)
		}
		return
	}

	slot := *slotFlag
	if slot == "" {
		slot = cfg.SaveSlot
	}
	if slot == "" {
		slot = defaultSlot
	}

	gcfg := cfg.Game()
	engine := game.NewEngine(data, gcfg, gcfg.NewRand(), game.NewScheduler(game.RealClock()))

	sess, err := openSession(ctx, engine, store, slot, *fresh)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	g, err := game.New(engine, sess, game.Options{
		Saver:            store,
		Slot:             slot,
		TickInterval:     cfg.TickInterval,
		AutoSaveInterval: cfg.AutoSaveInterval,
	})
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// openSession resumes slot unless fresh is set or the slot is empty.
func openSession(ctx context.Context, engine *game.Engine, store storage.Store, slot string, fresh bool) (*game.Session, error) {
	if !fresh {
		save, err := store.Load(ctx, slot)
		switch {
		case err == nil:
			return engine.Restore(save)
		case !errors.Is(err, storage.ErrNotFound):
			return nil, err
		}
	}
	return engine.NewSession(uuid.NewString())
}

func printSlots(ctx context.Context, store storage.Store) error {
	slots, err := store.List(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLOT\tAREA\tMONEY\tSAVED")
	for _, s := range slots {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.Name, s.AreaID, s.Money, s.SavedAt.Format(time.DateTime))
	}
	return w.Flush()
}
