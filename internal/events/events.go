// Package events publishes domain events to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tasktracker/internal/domain"
	"tasktracker/internal/logger"

	"github.com/nats-io/nats.go"
)

// SubjectPrefix is prepended to every event subject
const SubjectPrefix = "tracker."

// Message is the JSON payload of a published event
type Message struct {
	Type string          `json:"type"`
	ID   int64           `json:"id"`
	At   time.Time       `json:"at"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Subject returns the NATS subject for e
func Subject(e domain.Event) string {
	return SubjectPrefix + e.Subject()
}

// Encode builds the wire payload for e
func Encode(e domain.Event) ([]byte, error) {
	msg := Message{Type: e.Subject(), ID: e.ID, At: e.At.UTC()}
	if e.Data != nil {
		data, err := json.Marshal(e.Data)
		if err != nil {
			return nil, fmt.Errorf("encode event data: %w", err)
		}
		msg.Data = data
	}
	return json.Marshal(msg)
}

// Publisher sends events over a NATS connection
type Publisher struct {
	nc *nats.Conn
}

// Connect dials NATS. Reconnects are retried forever; publishes made while
// disconnected are buffered by the client.
func Connect(url, name string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	logger.Info("nats connected", "url", nc.ConnectedUrl())
	return &Publisher{nc: nc}, nil
}

// NewPublisher wraps an existing connection
func NewPublisher(nc *nats.Conn) *Publisher {
	return &Publisher{nc: nc}
}

func (p *Publisher) Publish(ctx context.Context, e domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(e)
	if err != nil {
		return err
	}
	return p.nc.Publish(Subject(e), data)
}

// Subscribe calls fn for every tracker event until ctx is done
func (p *Publisher) Subscribe(ctx context.Context, fn func(subject string, msg Message)) error {
	sub, err := p.nc.Subscribe(SubjectPrefix+">", func(m *nats.Msg) {
		var msg Message
		if err := json.Unmarshal(m.Data, &msg); err != nil {
			logger.Warn("malformed event", "subject", m.Subject, "error", err)
			return
		}
		fn(m.Subject, msg)
	})
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	<-ctx.Done()
	return sub.Unsubscribe()
}

// Ping reports whether the connection is up
func (p *Publisher) Ping() error {
	if !p.nc.IsConnected() {
		return fmt.Errorf("nats: %s", p.nc.Status())
	}
	return nil
}

// Close flushes pending publishes and closes the connection
func (p *Publisher) Close() error {
	return p.nc.Drain()
}

// Noop drops every event. Used when NATS_URL is not set.
type Noop struct{}

func (Noop) Publish(ctx context.Context, e domain.Event) error { return nil }
