package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rentmax/journeyd/internal/journey"
)

// DefaultSubject is the NATS subject journey records are published on.
const DefaultSubject = "rentmax.journey.extracted"

// NATS publishes journey records onto a NATS subject for downstream CRM
// consumers.
type NATS struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

func NewNATS(url, token, subject string, logger *slog.Logger) (*NATS, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	if subject == "" {
		subject = DefaultSubject
	}
	return &NATS{conn: nc, subject: subject, logger: logger}, nil
}

func (n *NATS) Name() string { return "nats" }

func (n *NATS) Deliver(ctx context.Context, rec *journey.Record) error {
	payload, err := json.Marshal(rec.Flatten())
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := n.conn.Publish(n.subject, payload); err != nil {
		return fmt.Errorf("publish record: %w", err)
	}
	return nil
}

func (n *NATS) Close() {
	n.conn.Close()
}
