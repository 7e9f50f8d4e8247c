package pipeline

import (
	"bytes"
	"fmt"

	"github.com/jhillyerd/enmime"
)

// Message is a decoded email as far as the alarm pipeline cares.
type Message interface {
	Subject() string
	// Text returns the first text body part and whether one exists.
	Text() (string, bool)
}

// Decoder turns the raw DATA buffer into a Message.
type Decoder func(raw []byte) (Message, error)

type envelope struct {
	env *enmime.Envelope
}

func (e envelope) Subject() string {
	return e.env.GetHeader("Subject")
}

func (e envelope) Text() (string, bool) {
	return e.env.Text, e.env.Text != ""
}

// DecodeMessage parses raw RFC 5322 data with enmime.
func DecodeMessage(raw []byte) (Message, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode email: %w", err)
	}
	return envelope{env: env}, nil
}
