package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/jonny/dispatchbot/internal/domain/model"
	"github.com/jonny/dispatchbot/internal/domain/port/outbound"
)

// fakeChannels serves a fixed channel graph and records every lookup.
type fakeChannels struct {
	mu       sync.Mutex
	channels map[string]model.Channel
	errs     map[string]error
	calls    []string
}

func newFakeChannels(chs ...model.Channel) *fakeChannels {
	f := &fakeChannels{
		channels: make(map[string]model.Channel),
		errs:     make(map[string]error),
	}
	for _, c := range chs {
		f.channels[c.ID] = c
	}
	return f
}

func (f *fakeChannels) FetchChannel(_ context.Context, id string) (model.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, id)
	if err, ok := f.errs[id]; ok {
		return model.Channel{}, err
	}
	c, ok := f.channels[id]
	if !ok {
		return model.Channel{}, fmt.Errorf("HTTP 404 Not Found: unknown channel %s", id)
	}
	return c, nil
}

func (f *fakeChannels) fetched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

var _ outbound.ChannelFetcher = (*fakeChannels)(nil)

// fakeAudits records audit entries in memory.
type fakeAudits struct {
	mu      sync.Mutex
	entries []model.AuditLog
	err     error
}

func (f *fakeAudits) Create(_ context.Context, l model.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, l)
	return nil
}

func (f *fakeAudits) List(_ context.Context, _ outbound.AuditFilter, _ outbound.PageRequest) (outbound.PageResult[model.AuditLog], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return outbound.PageResult[model.AuditLog]{Items: f.entries, TotalCount: int64(len(f.entries))}, nil
}

func (f *fakeAudits) eventTypes() []model.AuditEventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.AuditEventType, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.EventType)
	}
	return out
}

var _ outbound.AuditRepository = (*fakeAudits)(nil)

type fakeGames struct {
	mu    sync.Mutex
	games map[string]model.Game
	err   error
}

func newFakeGames() *fakeGames {
	return &fakeGames{games: make(map[string]model.Game)}
}

func (f *fakeGames) Put(_ context.Context, key string, g model.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.games[key] = g
	return nil
}

func (f *fakeGames) Get(_ context.Context, key string) (model.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.games[key]
	if !ok {
		return model.Game{}, outbound.ErrNotFound
	}
	return g, nil
}

func (f *fakeGames) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.games, key)
	return nil
}

var _ outbound.GameStore = (*fakeGames)(nil)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

var errUpstream = errors.New("discord unavailable: connection reset")
