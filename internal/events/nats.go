package events

import (
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSConfig configures the NATS connection.
type NATSConfig struct {
	// URL is the NATS server URL
	URL string

	// Subject is the base subject; events go to <Subject>.<topic>
	Subject string

	// ConnectTimeout is the connection timeout
	ConnectTimeout time.Duration
}

// NATSSink forwards front-end events to NATS so other processes can follow
// menu activity.
type NATSSink struct {
	conn    *nats.Conn
	subject string
}

// NewNATSSink connects to NATS. The connection retries in the background so a
// server that is not up yet does not block startup.
func NewNATSSink(cfg NATSConfig) (*NATSSink, error) {
	if cfg.URL == "" {
		cfg.URL = nats.DefaultURL
	}
	if cfg.Subject == "" {
		cfg.Subject = "appmenu.events"
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 5 * time.Second
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name("appmenu"),
		nats.Timeout(cfg.ConnectTimeout),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &NATSSink{conn: conn, subject: cfg.Subject}, nil
}

// Emit implements Sink. Publishing only buffers the message in the client.
func (s *NATSSink) Emit(topic, payload string) {
	if err := s.conn.Publish(s.subject+"."+topic, []byte(payload)); err != nil {
		log.Printf("nats: publish %s failed: %v", topic, err)
	}
}

// Close drains pending messages and closes the connection.
func (s *NATSSink) Close() error {
	return s.conn.Drain()
}
