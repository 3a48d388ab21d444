package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/domain/repository"
)

// ClickHouseEventStore implements EventStore on the journal_events table.
type ClickHouseEventStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseEventStore creates ClickHouse-backed event storage.
func NewClickHouseEventStore(db *sql.DB, table string) repository.EventStore {
	return &ClickHouseEventStore{db: db, table: table}
}

func (s *ClickHouseEventStore) Init(ctx context.Context) error {
	return nil // schema init in pkg/clickhouse
}

func (s *ClickHouseEventStore) Store(ctx context.Context, rec *models.RawRecord) error {
	return s.StoreBatch(ctx, []*models.RawRecord{rec})
}

func (s *ClickHouseEventStore) StoreBatch(ctx context.Context, recs []*models.RawRecord) error {
	if len(recs) == 0 {
		return nil
	}
	// Multi-row VALUES insert to reduce round-trips.
	const chunkSize = 2000
	for start := 0; start < len(recs); start += chunkSize {
		end := start + chunkSize
		if end > len(recs) {
			end = len(recs)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*8)
		for _, rec := range recs[start:end] {
			if rec == nil {
				continue
			}
			payload := "{}"
			if rec.Payload != nil {
				if b, err := json.Marshal(rec.Payload); err == nil {
					payload = string(b)
				}
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				rec.ID,
				rec.Key,
				rec.Kind,
				rec.Symbol,
				rec.Timeframe,
				rec.Tags,
				asMillis(rec.CreatedAtMs),
				asMillis(rec.UpdatedAtMs),
				payload,
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf(
			"INSERT INTO %s (id, key, kind, symbol, timeframe, tags, created_at_ms, updated_at_ms, payload) VALUES %s",
			s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("store batch: %w", err)
		}
	}
	return nil
}

// FetchSince returns records created at or after sinceMs, plus every
// record with no creation time: timestamp-less records must reach the
// engine, which decides their fate.
func (s *ClickHouseEventStore) FetchSince(ctx context.Context, sinceMs int64, limit int) ([]*models.RawRecord, error) {
	q := fmt.Sprintf(
		"SELECT id, key, kind, symbol, timeframe, tags, created_at_ms, updated_at_ms, payload FROM %s WHERE created_at_ms >= ? OR created_at_ms = 0 ORDER BY created_at_ms DESC LIMIT ?",
		s.table)
	rows, err := s.db.QueryContext(ctx, q, sinceMs, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch since: %w", err)
	}
	defer rows.Close()

	var recs []*models.RawRecord
	for rows.Next() {
		var (
			rec       models.RawRecord
			tags      []string
			createdMs int64
			updatedMs int64
			payload   string
		)
		if err := rows.Scan(&rec.ID, &rec.Key, &rec.Kind, &rec.Symbol, &rec.Timeframe, &tags, &createdMs, &updatedMs, &payload); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Tags = tags
		if createdMs != 0 {
			rec.CreatedAtMs = float64(createdMs)
		}
		if updatedMs != 0 {
			rec.UpdatedAtMs = float64(updatedMs)
		}
		if payload != "" && payload != "{}" {
			var p models.RawPayload
			if err := json.Unmarshal([]byte(payload), &p); err == nil {
				rec.Payload = &p
			}
		}
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}

func (s *ClickHouseEventStore) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *ClickHouseEventStore) Close() error {
	return nil // pool owned by pkg/clickhouse client
}

// asMillis coerces the loosely-typed creation timestamps for storage;
// unusable values store as 0 (absent).
func asMillis(v any) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return int64(x)
	case int64:
		return x
	case int:
		return int64(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return int64(f)
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return int64(f)
		}
	}
	return 0
}
