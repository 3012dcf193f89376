package queue

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
)

// Subjects for notification and email events.
const (
	SubjectNotifications = "pawmarket.notifications"
	SubjectEmails        = "pawmarket.emails"
)

// Publisher is the fire-and-forget producer interface the modules consume.
// No delivery guarantee is required of callers; publish failures are logged
// and swallowed at the call site.
type Publisher interface {
	Publish(ctx context.Context, subject string, event any) error
}

// NATSPublisher implements Publisher on a NATS connection.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to the given NATS URL.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: conn}, nil
}

// Publish marshals the event as JSON and publishes it on the subject.
func (p *NATSPublisher) Publish(_ context.Context, subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.conn.Publish(subject, data)
}

// Close drains the underlying connection.
func (p *NATSPublisher) Close() {
	p.conn.Close()
}
