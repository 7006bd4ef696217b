package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/playperu/matchday/internal/matchday"
)

// savedAtLayout is fixed width so saved_at sorts as text.
const savedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteSaveStore implements SaveStore on the saves table, keeping the
// snapshot in a JSONB column.
type SQLiteSaveStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteSaveStore(db *sql.DB) *SQLiteSaveStore {
	return &SQLiteSaveStore{db: db, now: time.Now}
}

func (s *SQLiteSaveStore) SaveGame(ctx context.Context, slot string, state *matchday.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding save %q: %w", slot, err)
	}

	var teamName, managerName string
	if t, ok := state.Index().Team(state.PlayerTeamID); ok {
		teamName, managerName = t.Name, t.ManagerName
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO saves (slot, team_name, manager_name, game_date, saved_at, data)
		 VALUES (?, ?, ?, ?, ?, jsonb(?))
		 ON CONFLICT (slot) DO UPDATE SET
		   team_name = excluded.team_name,
		   manager_name = excluded.manager_name,
		   game_date = excluded.game_date,
		   saved_at = excluded.saved_at,
		   data = excluded.data`,
		slot, teamName, managerName,
		state.CurrentDate.UTC().Format(time.RFC3339),
		s.now().UTC().Format(savedAtLayout),
		string(data),
	)
	if err != nil {
		return fmt.Errorf("writing save %q: %w", slot, err)
	}
	return nil
}

func (s *SQLiteSaveStore) LoadGame(ctx context.Context, slot string) (*matchday.GameState, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM saves WHERE slot = ?`, slot,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading save %q: %w", slot, err)
	}

	var state matchday.GameState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("decoding save %q: %w", slot, err)
	}
	state.Normalize()
	return &state, nil
}

func (s *SQLiteSaveStore) ListSaves(ctx context.Context) ([]SaveSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slot, team_name, manager_name, game_date, saved_at
		 FROM saves ORDER BY saved_at DESC, slot`)
	if err != nil {
		return nil, fmt.Errorf("listing saves: %w", err)
	}
	defer rows.Close()

	saves := []SaveSummary{}
	for rows.Next() {
		var (
			sum             SaveSummary
			gameDate, saved string
		)
		if err := rows.Scan(&sum.Slot, &sum.TeamName, &sum.ManagerName, &gameDate, &saved); err != nil {
			return nil, fmt.Errorf("scanning save: %w", err)
		}
		sum.GameDate, _ = time.Parse(time.RFC3339, gameDate)
		sum.SavedAt, _ = time.Parse(savedAtLayout, saved)
		saves = append(saves, sum)
	}
	return saves, rows.Err()
}

func (s *SQLiteSaveStore) DeleteSave(ctx context.Context, slot string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot)
	if err != nil {
		return fmt.Errorf("deleting save %q: %w", slot, err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
