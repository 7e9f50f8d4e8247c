package alarm

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyBody        = errors.New("alarm body is empty")
	ErrMissingEventType = errors.New("alarm is missing EventType")
	ErrMissingDateTime  = errors.New("alarm is missing DateTime")
)

// record mirrors the camera's XML so that absent elements can be told apart
// from empty ones.
type record struct {
	Input1    *string `xml:"Input1"`
	EventType *string `xml:"EventType"`
	ExtraText *string `xml:"ExtraText"`
	DateTime  *string `xml:"DateTime"`
}

// Decode parses the XML alarm document the camera puts into the mail body.
// The root element name is not checked.
func Decode(body string) (*Event, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyBody
	}

	var r record
	if err := xml.Unmarshal([]byte(body), &r); err != nil {
		return nil, fmt.Errorf("failed to decode alarm xml: %w", err)
	}

	if r.EventType == nil {
		return nil, ErrMissingEventType
	}
	if r.DateTime == nil {
		return nil, ErrMissingDateTime
	}

	e := &Event{
		Input1:    r.Input1,
		EventType: *r.EventType,
		DateTime:  *r.DateTime,
	}
	if r.ExtraText != nil {
		e.ExtraText = *r.ExtraText
	}

	return e, nil
}
