package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"TradeLens/internal/domain/models"
	drepo "TradeLens/internal/domain/repository"
	"TradeLens/pkg/logger"

	"github.com/gorilla/websocket"
)

// Client implements an EventStream backed by the trading-assistant
// backend's journal WebSocket feed.
type Client struct {
	websocketURL   string
	token          string
	channels       []string
	reconnectDelay time.Duration
	pingInterval   time.Duration
	log            *logger.Logger

	conn      *websocket.Conn
	connected bool
}

// New creates a journal feed EventStream.
func New(websocketURL, token string, channels []string, reconnectDelay, pingInterval time.Duration, log *logger.Logger) drepo.EventStream {
	return &Client{
		websocketURL:   websocketURL,
		token:          token,
		channels:       channels,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
		log:            log,
	}
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	u := c.websocketURL
	if c.token != "" {
		u = fmt.Sprintf("%s?token=%s", c.websocketURL, c.token)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("feed connect: %w", err)
	}
	c.conn = conn
	c.connected = true
	c.log.Info("feed connected", logger.String("url", c.websocketURL))
	return nil
}

// Subscribe subscribes to configured journal channels.
func (c *Client) Subscribe(ctx context.Context) error {
	if c.conn == nil || !c.connected {
		return fmt.Errorf("feed not connected")
	}
	for _, ch := range c.channels {
		msg := map[string]string{"type": "subscribe", "channel": ch}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", ch, err)
		}
		c.log.Info("feed subscribed", logger.String("channel", ch))
	}
	return nil
}

type feedMessage struct {
	Type    string              `json:"type"`
	Records []*models.RawRecord `json:"records"`
}

// Read streams raw journal records and errors.
func (c *Client) Read(ctx context.Context) (<-chan *models.RawRecord, <-chan error) {
	records := make(chan *models.RawRecord, 1024)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(records)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if c.conn == nil {
					errs <- fmt.Errorf("feed conn nil")
					return
				}
				_, b, err := c.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("feed read: %w", err)
					return
				}
				var m feedMessage
				if err := json.Unmarshal(b, &m); err != nil {
					// ignore non-journal frames
					continue
				}
				if m.Type != "journal" {
					continue
				}
				for _, rec := range m.Records {
					if rec == nil {
						continue
					}
					select {
					case records <- rec:
					default:
						// drop on backpressure
					}
				}
			}
		}
	}()

	return records, errs
}

// Reconnect closes and reconnects.
func (c *Client) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *Client) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool { return c.connected }
