package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OliverSchlueter/cctv-smtp/internal/alarm"
	"github.com/OliverSchlueter/goutils/sloki"
)

type Dispatcher interface {
	Send(ctx context.Context, event alarm.Event) error
}

type SubjectPolicy interface {
	SubjectAllowed(subject string) bool
}

type Pipeline struct {
	policy     SubjectPolicy
	dispatcher Dispatcher
}

type Configuration struct {
	Policy     SubjectPolicy
	Dispatcher Dispatcher
}

func New(config Configuration) *Pipeline {
	return &Pipeline{
		policy:     config.Policy,
		dispatcher: config.Dispatcher,
	}
}

// Handle turns a decoded message into an alarm and forwards it. Mail with a
// foreign subject is dropped without error. Webhook failures are only logged.
func (p *Pipeline) Handle(ctx context.Context, msg Message) error {
	subject := msg.Subject()
	if !p.policy.SubjectAllowed(subject) {
		slog.Info("Ignoring non-alarm message", slog.String("subject", subject))
		return nil
	}

	body, ok := msg.Text()
	if !ok {
		return ErrNoTextBody
	}

	event, err := alarm.Decode(body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAlarm, err)
	}

	if err := p.dispatcher.Send(ctx, *event); err != nil {
		slog.Warn("Failed to send alarm event", slog.String("event", event.String()), sloki.WrapError(err))
		return nil
	}

	slog.Info("Sent alarm event", slog.String("event", event.String()))
	return nil
}
