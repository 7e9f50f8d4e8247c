package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/OliverSchlueter/cctv-smtp/internal/alarm"
	"github.com/goccy/go-json"
	"github.com/roadrunner-server/errors"
)

const Timeout = 5 * time.Second

// StatusError is returned when the webhook answers with anything but 200.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook responded with non-ok status: %d", e.Code)
}

type Dispatcher struct {
	url    string
	key    string
	client *http.Client
}

type Configuration struct {
	URL string
	Key string
	// Client defaults to a client with the fixed webhook timeout.
	Client *http.Client
}

func NewDispatcher(config Configuration) *Dispatcher {
	if config.Client == nil {
		config.Client = &http.Client{Timeout: Timeout}
	}

	return &Dispatcher{
		url:    config.URL,
		key:    config.Key,
		client: config.Client,
	}
}

// Send posts the event once. Only HTTP 200 counts as delivered.
func (d *Dispatcher) Send(ctx context.Context, event alarm.Event) error {
	const op = errors.Op("webhook_send")

	data, err := json.Marshal(event)
	if err != nil {
		return errors.E(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(data))
	if err != nil {
		return errors.E(op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", d.key)

	resp, err := d.client.Do(req)
	if err != nil {
		return errors.E(op, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return errors.E(op, &StatusError{Code: resp.StatusCode})
	}

	return nil
}
