package server

import (
	"context"
	"errors"
	"time"

	"github.com/playperu/matchday/internal/matchday"
)

var ErrNotFound = errors.New("not found")

// SaveSummary describes a stored career without decoding its snapshot.
type SaveSummary struct {
	Slot        string    `json:"slot"`
	TeamName    string    `json:"teamName"`
	ManagerName string    `json:"managerName"`
	GameDate    time.Time `json:"gameDate"`
	SavedAt     time.Time `json:"savedAt"`
}

// SaveStore persists career snapshots by slot.
type SaveStore interface {
	SaveGame(ctx context.Context, slot string, s *matchday.GameState) error
	LoadGame(ctx context.Context, slot string) (*matchday.GameState, error)
	ListSaves(ctx context.Context) ([]SaveSummary, error)
	DeleteSave(ctx context.Context, slot string) error
}
