package main

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Event types for analytics tracking
const (
	EvtAirdropSpawn     = "airdrop_spawn"
	EvtAirdropRejected  = "airdrop_rejected"
	EvtAirdropLand      = "airdrop_land"
	EvtAirdropCrush     = "airdrop_crush"
	EvtCeilingDestroyed = "ceiling_destroyed"
)

const (
	analyticsQueueSize  = 1024
	analyticsBatchSize  = 50
	analyticsFlushEvery = 5 * time.Second
)

// EventTracker receives gameplay events. Implementations must not block.
type EventTracker interface {
	Track(evtType string, objectID ObjectID, data string)
}

// AnalyticsEvent represents a single trackable event
type AnalyticsEvent struct {
	Type      string
	ObjectID  ObjectID
	Data      string // JSON metadata (optional)
	Timestamp time.Time
}

// Analytics handles event tracking with batched background writes
type Analytics struct {
	db     *DB
	gameID string
	log    *slog.Logger
	events chan AnalyticsEvent
	stop   chan struct{}
	wg     sync.WaitGroup

	mu      sync.Mutex
	dropped int
}

// NewAnalytics creates and starts the analytics background writer
func NewAnalytics(db *DB, gameID string, log *slog.Logger) *Analytics {
	a := &Analytics{
		db:     db,
		gameID: gameID,
		log:    log,
		events: make(chan AnalyticsEvent, analyticsQueueSize),
		stop:   make(chan struct{}),
	}
	a.wg.Add(1)
	go a.writer()
	return a
}

// Track enqueues an event for async persistence (non-blocking)
func (a *Analytics) Track(evtType string, objectID ObjectID, data string) {
	select {
	case a.events <- AnalyticsEvent{
		Type:      evtType,
		ObjectID:  objectID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}:
	default:
		// never block the game loop
		a.mu.Lock()
		a.dropped++
		a.mu.Unlock()
	}
}

// Dropped returns how many events were discarded because the queue was full
func (a *Analytics) Dropped() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dropped
}

// Stop drains pending events and shuts down the writer
func (a *Analytics) Stop() {
	close(a.stop)
	a.wg.Wait()
}

func (a *Analytics) writer() {
	defer a.wg.Done()

	batch := make([]AnalyticsEvent, 0, 64)
	ticker := time.NewTicker(analyticsFlushEvery)
	defer ticker.Stop()

	for {
		select {
		case evt := <-a.events:
			batch = append(batch, evt)
			if len(batch) >= analyticsBatchSize {
				a.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				a.flush(batch)
				batch = batch[:0]
			}
		case <-a.stop:
			for {
				select {
				case evt := <-a.events:
					batch = append(batch, evt)
				default:
					a.flush(batch)
					return
				}
			}
		}
	}
}

// flush writes a batch of events to the database
func (a *Analytics) flush(events []AnalyticsEvent) {
	if a.db == nil || len(events) == 0 {
		return
	}
	tx, err := a.db.conn.Begin()
	if err != nil {
		a.log.Error("analytics: begin tx", "err", err)
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO analytics_events (game_id, event_type, object_id, data, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		a.log.Error("analytics: prepare", "err", err)
		return
	}
	defer stmt.Close()

	for _, evt := range events {
		oid := sql.NullInt64{Int64: int64(evt.ObjectID), Valid: evt.ObjectID > 0}
		data := sql.NullString{String: evt.Data, Valid: evt.Data != ""}
		if _, err := stmt.Exec(a.gameID, evt.Type, oid, data, evt.Timestamp.Format(time.RFC3339)); err != nil {
			a.log.Error("analytics: insert", "type", evt.Type, "err", err)
		}
	}
	if err := tx.Commit(); err != nil {
		a.log.Error("analytics: commit", "err", err)
	}
}

// EventCounts returns counts of each event type recorded for this game
func (a *Analytics) EventCounts() (map[string]int, error) {
	if a.db == nil {
		return nil, nil
	}
	rows, err := a.db.conn.Query(`
		SELECT event_type, COUNT(*) FROM analytics_events
		WHERE game_id = ?
		GROUP BY event_type ORDER BY COUNT(*) DESC
	`, a.gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var evtType string
		var count int
		if err := rows.Scan(&evtType, &count); err != nil {
			return nil, err
		}
		result[evtType] = count
	}
	return result, rows.Err()
}

// CrushedObjects returns the ids of objects crushed by airdrops, oldest first
func (a *Analytics) CrushedObjects() ([]ObjectID, error) {
	if a.db == nil {
		return nil, nil
	}
	rows, err := a.db.conn.Query(`
		SELECT json_extract(data, '$.target') FROM analytics_events
		WHERE game_id = ? AND event_type = ? AND json_valid(data)
		ORDER BY id
	`, a.gameID, EvtAirdropCrush)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ObjectID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result = append(result, ObjectID(id))
	}
	return result, rows.Err()
}

// EventData encodes event metadata as JSON. Nil or empty maps give "".
func EventData(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(b)
}
