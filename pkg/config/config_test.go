package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
environment: test
server:
  port: 8080
  read_timeout: 10s
  write_timeout: 15s
  shutdown_timeout: 5s
log:
  level: debug
  format: json
  output: stdout
clickhouse:
  host: ch.local
  port: 9000
  database: tradelens
  user: default
  table: journal_events
kafka:
  brokers: [localhost:9092]
  events_topic: journal.events
  consumer:
    group_id: tradelens-ingest
    workers: 2
analytics:
  fetch_limit: 100
  cache_ttl: 10s
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "ch.local", cfg.ClickHouse.Host)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 100, cfg.Analytics.FetchLimit)
	assert.Equal(t, 10*time.Second, cfg.Analytics.CacheTTL)
}

func TestLoadRejectsMissingClickHouseHost(t *testing.T) {
	_, err := Load(writeConfig(t, "environment: test\nclickhouse:\n  database: x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clickhouse.host")
}

func TestValidateAppliesAnalyticsDefaults(t *testing.T) {
	c := &Config{Environment: "test"}
	c.ClickHouse.Host = "h"
	c.ClickHouse.Database = "d"

	require.NoError(t, c.Validate())
	assert.Equal(t, 5000, c.Analytics.FetchLimit)
	assert.Equal(t, 30*time.Second, c.Analytics.CacheTTL)
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CLICKHOUSE_HOST", "ch.override")
	t.Setenv("REDIS_ADDR", "redis.override:6379")

	cfg, err := LoadWithEnv(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "ch.override", cfg.ClickHouse.Host)
	assert.True(t, cfg.Analytics.Redis.Enabled)
	assert.Equal(t, "redis.override:6379", cfg.Analytics.Redis.Addr)
}

func TestLoadRejectsFeedWithoutURL(t *testing.T) {
	_, err := Load(writeConfig(t, `
environment: test
clickhouse:
  host: h
  database: d
feed:
  enabled: true
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed.websocket_url")
}
