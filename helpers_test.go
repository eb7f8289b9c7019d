package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// logCapture records every slog record emitted through its logger
type logCapture struct {
	mu      sync.Mutex
	records []slog.Record
}

type captureHandler struct {
	c     *logCapture
	attrs []slog.Attr
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	r = r.Clone()
	r.AddAttrs(h.attrs...)
	h.c.mu.Lock()
	h.c.records = append(h.c.records, r)
	h.c.mu.Unlock()
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &captureHandler{c: h.c, attrs: merged}
}

func (h *captureHandler) WithGroup(string) slog.Handler { return h }

func newCaptureLogger() (*slog.Logger, *logCapture) {
	c := &logCapture{}
	return slog.New(&captureHandler{c: c}), c
}

// count returns how many records at level contain substr in their message
func (c *logCapture) count(level slog.Level, substr string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, r := range c.records {
		if r.Level == level && strings.Contains(r.Message, substr) {
			n++
		}
	}
	return n
}

// attr returns the value of key on the last record whose message contains substr
func (c *logCapture) attr(substr, key string) (slog.Value, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.records) - 1; i >= 0; i-- {
		r := c.records[i]
		if !strings.Contains(r.Message, substr) {
			continue
		}
		var v slog.Value
		found := false
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == key {
				v, found = a.Value, true
				return false
			}
			return true
		})
		return v, found
	}
	return slog.Value{}, false
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fataler is satisfied by *testing.T and *rapid.T
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

func mustDefs(t fataler) *Defs {
	t.Helper()
	defs, err := LoadDefaultDefs()
	if err != nil {
		t.Fatalf("load defs: %v", err)
	}
	return defs
}

// recordingTracker keeps tracked events in memory
type recordingTracker struct {
	mu     sync.Mutex
	events []AnalyticsEvent
}

func (r *recordingTracker) Track(evtType string, id ObjectID, data string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, AnalyticsEvent{Type: evtType, ObjectID: id, Data: data})
}

func (r *recordingTracker) count(evtType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == evtType {
			n++
		}
	}
	return n
}

// world bundles the collaborators an airdrop barn needs
type world struct {
	defs     *Defs
	grid     *SpatialGrid
	registry *ObjectRegistry
	gameMap  *GameMap
	pings    *PingBoard
	events   *recordingTracker
	barn     *AirdropBarn
	logs     *logCapture
}

func newWorld(t fataler, cfg AirdropConfig) *world {
	t.Helper()
	log, logs := newCaptureLogger()
	w := &world{
		defs:   mustDefs(t),
		grid:   NewSpatialGrid(256, 256, DefaultCellSize),
		pings:  &PingBoard{},
		events: &recordingTracker{},
		logs:   logs,
	}
	w.registry = NewObjectRegistry(w.grid)
	w.gameMap = NewGameMap(w.defs, w.registry, log)
	w.barn = NewAirdropBarn(cfg, w.defs, w.registry, w.grid, w.gameMap, w.pings, w.events, log)
	return w
}

func testAirdropConfig() AirdropConfig {
	return AirdropConfig{FallTime: 10, MaxActive: 50, CrushDamage: 100}
}
