package levelsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/localfirst-games/mazerunner/game/level"
)

// ErrStageNotFound reports a stage number with no row behind it.
var ErrStageNotFound = errors.New("stage not found")

// Store persists maze stages in SQLite.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS maze_stages (
	stage_number INTEGER PRIMARY KEY,
	layout       TEXT    NOT NULL,
	width        INTEGER NOT NULL,
	height       INTEGER NOT NULL,
	start_x      INTEGER NOT NULL,
	start_y      INTEGER NOT NULL,
	end_x        INTEGER NOT NULL,
	end_y        INTEGER NOT NULL
)`

// Open opens a SQLite stage store at path, creating the schema on first use.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutStage inserts one stage, replacing any existing row for its number.
func (s *Store) PutStage(ctx context.Context, d level.Descriptor) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO maze_stages (stage_number, layout, width, height, start_x, start_y, end_x, end_y)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(stage_number) DO UPDATE SET
			layout  = excluded.layout,
			width   = excluded.width,
			height  = excluded.height,
			start_x = excluded.start_x,
			start_y = excluded.start_y,
			end_x   = excluded.end_x,
			end_y   = excluded.end_y`,
		d.StageNumber, d.Layout, d.Width, d.Height, d.StartX, d.StartY, d.EndX, d.EndY)
	if err != nil {
		return fmt.Errorf("put stage %d: %w", d.StageNumber, err)
	}
	return nil
}

// Stage fetches one stage by number.
func (s *Store) Stage(ctx context.Context, number int) (*level.Descriptor, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT stage_number, layout, width, height, start_x, start_y, end_x, end_y
		FROM maze_stages WHERE stage_number = ?`, number)

	var d level.Descriptor
	err := row.Scan(&d.StageNumber, &d.Layout, &d.Width, &d.Height, &d.StartX, &d.StartY, &d.EndX, &d.EndY)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrStageNotFound, number)
	}
	if err != nil {
		return nil, fmt.Errorf("load stage %d: %w", number, err)
	}
	return &d, nil
}

// StageNumbers lists the stored stage numbers in ascending order.
func (s *Store) StageNumbers(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT stage_number FROM maze_stages ORDER BY stage_number`)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("list stages: %w", err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	return numbers, nil
}

// CountStages returns how many stages the store holds.
func (s *Store) CountStages(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM maze_stages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stages: %w", err)
	}
	return n, nil
}
