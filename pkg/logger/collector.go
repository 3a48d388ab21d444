package logger

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// AuditPublisher sends aggregated audit entries to a topic. Implemented by
// the Kafka producer so the audit-viewer surface can subscribe to them.
type AuditPublisher interface {
	PublishMessage(ctx context.Context, topic string, payload interface{}) error
}

type AuditConfig struct {
	TimeInterval   time.Duration // flush interval (e.g., 30s)
	CountThreshold int           // max unique entries before flush (e.g., 100)
	Topic          string        // topic to send aggregated entries
	Publisher      AuditPublisher
}

// AuditEntry is one deduplicated warn/error log line with occurrence counts.
type AuditEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields"`
	Caller    string                 `json:"caller"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

// AuditCollector deduplicates repeated warn/error logs and periodically
// publishes the aggregate batch for the audit viewer.
type AuditCollector struct {
	config  *AuditConfig
	entries map[string]*AuditEntry
	mutex   sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewAuditCollector(config *AuditConfig) *AuditCollector {
	ctx, cancel := context.WithCancel(context.Background())

	collector := &AuditCollector{
		config:  config,
		entries: make(map[string]*AuditEntry),
		ctx:     ctx,
		cancel:  cancel,
	}

	collector.wg.Add(1)
	go collector.periodicFlush()

	return collector
}

func (c *AuditCollector) AddLog(level, message string, fields map[string]interface{}, caller string) {
	now := time.Now()
	key := c.generateKey(level, message, fields, caller)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if entry, exists := c.entries[key]; exists {
		entry.Count++
		entry.LastSeen = now
	} else {
		c.entries[key] = &AuditEntry{
			Level:     level,
			Message:   message,
			Fields:    fields,
			Caller:    caller,
			Count:     1,
			FirstSeen: now,
			LastSeen:  now,
		}
	}

	if len(c.entries) >= c.config.CountThreshold {
		c.flush()
	}
}

func (c *AuditCollector) generateKey(level, message string, fields map[string]interface{}, caller string) string {
	data := struct {
		Level   string                 `json:"level"`
		Message string                 `json:"message"`
		Fields  map[string]interface{} `json:"fields"`
		Caller  string                 `json:"caller"`
	}{level, message, fields, caller}

	jsonData, _ := json.Marshal(data)
	hash := sha256.Sum256(jsonData)
	return fmt.Sprintf("%x", hash)
}

func (c *AuditCollector) periodicFlush() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.TimeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mutex.Lock()
			c.flush()
			c.mutex.Unlock()
		case <-c.ctx.Done():
			c.mutex.Lock()
			c.flush()
			c.mutex.Unlock()
			return
		}
	}
}

// flush publishes and resets the pending entries; callers hold the mutex.
func (c *AuditCollector) flush() {
	if len(c.entries) == 0 {
		return
	}

	batch := make([]AuditEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		batch = append(batch, *entry)
	}
	c.entries = make(map[string]*AuditEntry)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := c.config.Publisher.PublishMessage(ctx, c.config.Topic, batch); err != nil {
			fmt.Printf("audit collector: publish failed: %v\n", err)
		}
	}()
}

func (c *AuditCollector) Close() {
	c.cancel()
	c.wg.Wait()
}
