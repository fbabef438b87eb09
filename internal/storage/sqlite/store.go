// Package sqlite provides a SQLite-backed save store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite"

	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/game"
	"github.com/samdwyer/critterquest/internal/gamedata"
	"github.com/samdwyer/critterquest/internal/storage"
	"github.com/samdwyer/critterquest/internal/storage/sqlite/migrations"
	"github.com/samdwyer/critterquest/internal/telemetry"
	"github.com/samdwyer/critterquest/internal/world"
)

// Store persists saves in SQLite. Creatures and their moves get their own
// tables; the remaining session maps are stored as JSON columns.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite save store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save replaces the save in slot.
func (s *Store) Save(ctx context.Context, slot string, data *game.SaveData) (err error) {
	ctx, span := telemetry.Tracer("storage").Start(ctx, "storage.save")
	span.SetAttributes(attribute.String("driver", "sqlite"), attribute.String("slot", slot))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(slot) == "" {
		return fmt.Errorf("slot is required")
	}
	if data == nil {
		return fmt.Errorf("save data is required")
	}

	inventory, err := json.Marshal(data.Inventory)
	if err != nil {
		return fmt.Errorf("marshal inventory: %w", err)
	}
	progress, err := json.Marshal(data.Progress)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	gyms, err := json.Marshal(data.DefeatedGyms)
	if err != nil {
		return fmt.Errorf("marshal defeated gyms: %w", err)
	}
	acquired, err := json.Marshal(data.FirstAcquired)
	if err != nil {
		return fmt.Errorf("marshal first acquired: %w", err)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM combatant_moves WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("clear moves: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM combatants WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("clear combatants: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `
INSERT INTO saves (
    slot, session_id, version, area_id, active_index, money, auto_battle,
    inventory_json, progress_json, defeated_gyms_json, first_acquired_json, saved_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET
    session_id = excluded.session_id,
    version = excluded.version,
    area_id = excluded.area_id,
    active_index = excluded.active_index,
    money = excluded.money,
    auto_battle = excluded.auto_battle,
    inventory_json = excluded.inventory_json,
    progress_json = excluded.progress_json,
    defeated_gyms_json = excluded.defeated_gyms_json,
    first_acquired_json = excluded.first_acquired_json,
    saved_at = excluded.saved_at`,
		slot, data.SessionID, data.Version, data.AreaID, data.Active, data.Money, boolToInt(data.AutoBattle),
		string(inventory), string(progress), string(gyms), string(acquired), toMillis(data.SavedAt),
	); err != nil {
		return fmt.Errorf("upsert save: %w", err)
	}

	for pos, c := range data.Creatures {
		if _, err = tx.ExecContext(ctx, `
INSERT INTO combatants (
    slot, position, species_id, level, experience, current_hp,
    status, status_turns, confusion_turns, ability
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			slot, pos, c.SpeciesID, c.Level, c.Experience, c.CurrentHP,
			string(c.Status), c.StatusTurns, c.ConfusionTurns, string(c.Ability),
		); err != nil {
			return fmt.Errorf("insert combatant %d: %w", pos, err)
		}
		for i, m := range c.Moves {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO combatant_moves (slot, position, move_index, move_id, pp) VALUES (?, ?, ?, ?, ?)`,
				slot, pos, i, m.MoveID, m.PP,
			); err != nil {
				return fmt.Errorf("insert move %d/%d: %w", pos, i, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	span.SetAttributes(attribute.Int("creatures", len(data.Creatures)))
	return nil
}

// Load reads the save in slot.
func (s *Store) Load(ctx context.Context, slot string) (*game.SaveData, error) {
	ctx, span := telemetry.Tracer("storage").Start(ctx, "storage.load")
	span.SetAttributes(attribute.String("driver", "sqlite"), attribute.String("slot", slot))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	var data game.SaveData
	var autoBattle int
	var savedAt int64
	var inventory, progress, gyms, acquired string
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT session_id, version, area_id, active_index, money, auto_battle,
       inventory_json, progress_json, defeated_gyms_json, first_acquired_json, saved_at
FROM saves WHERE slot = ?`, slot).Scan(
		&data.SessionID, &data.Version, &data.AreaID, &data.Active, &data.Money, &autoBattle,
		&inventory, &progress, &gyms, &acquired, &savedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query save: %w", err)
	}
	data.AutoBattle = autoBattle != 0
	data.SavedAt = fromMillis(savedAt)

	data.Inventory = map[string]int{}
	data.Progress = world.Progress{}
	data.FirstAcquired = map[string]time.Time{}
	for _, col := range []struct {
		name string
		raw  string
		dst  any
	}{
		{"inventory", inventory, &data.Inventory},
		{"progress", progress, &data.Progress},
		{"defeated gyms", gyms, &data.DefeatedGyms},
		{"first acquired", acquired, &data.FirstAcquired},
	} {
		if err := json.Unmarshal([]byte(col.raw), col.dst); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", col.name, err)
		}
	}

	creatures, err := s.loadCreatures(ctx, slot)
	if err != nil {
		return nil, err
	}
	data.Creatures = creatures
	return &data, nil
}

func (s *Store) loadCreatures(ctx context.Context, slot string) ([]entity.Record, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT species_id, level, experience, current_hp, status, status_turns, confusion_turns, ability
FROM combatants WHERE slot = ? ORDER BY position`, slot)
	if err != nil {
		return nil, fmt.Errorf("query combatants: %w", err)
	}
	defer rows.Close()

	var records []entity.Record
	for rows.Next() {
		var r entity.Record
		var status, ability string
		if err := rows.Scan(&r.SpeciesID, &r.Level, &r.Experience, &r.CurrentHP, &status, &r.StatusTurns, &r.ConfusionTurns, &ability); err != nil {
			return nil, fmt.Errorf("scan combatant: %w", err)
		}
		r.Status = gamedata.StatusCondition(status)
		r.Ability = gamedata.AbilityID(ability)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate combatants: %w", err)
	}

	moveRows, err := s.sqlDB.QueryContext(ctx, `
SELECT position, move_id, pp FROM combatant_moves WHERE slot = ? ORDER BY position, move_index`, slot)
	if err != nil {
		return nil, fmt.Errorf("query moves: %w", err)
	}
	defer moveRows.Close()
	for moveRows.Next() {
		var (
			pos int
			m   entity.MoveRecord
		)
		if err := moveRows.Scan(&pos, &m.MoveID, &m.PP); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		if pos < 0 || pos >= len(records) {
			continue
		}
		records[pos].Moves = append(records[pos].Moves, m)
	}
	if err := moveRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate moves: %w", err)
	}
	return records, nil
}

// List returns every save, most recent first.
func (s *Store) List(ctx context.Context) ([]storage.Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT slot, session_id, area_id, money, saved_at FROM saves ORDER BY saved_at DESC, slot`)
	if err != nil {
		return nil, fmt.Errorf("query saves: %w", err)
	}
	defer rows.Close()

	var slots []storage.Slot
	for rows.Next() {
		var (
			slot    storage.Slot
			savedAt int64
		)
		if err := rows.Scan(&slot.Name, &slot.SessionID, &slot.AreaID, &slot.Money, &savedAt); err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		slot.SavedAt = fromMillis(savedAt)
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
