package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonny/dispatchbot/internal/domain/model"
	"github.com/jonny/dispatchbot/internal/domain/port/outbound"
)

// GameStore keeps games in process memory. Games are lost on restart.
type GameStore struct {
	mu    sync.RWMutex
	games map[string]model.Game
}

var _ outbound.GameStore = (*GameStore)(nil)

func NewGameStore() *GameStore {
	return &GameStore{games: make(map[string]model.Game)}
}

func (s *GameStore) Put(_ context.Context, key string, game model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[key] = game
	return nil
}

func (s *GameStore) Get(_ context.Context, key string) (model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[key]
	if !ok {
		return model.Game{}, fmt.Errorf("game %s: %w", key, outbound.ErrNotFound)
	}
	return g, nil
}

func (s *GameStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, key)
	return nil
}

// Len returns the number of stored games.
func (s *GameStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
