package alarm

import (
	"fmt"
	"strings"
)

// Event is one camera alarm occurrence as forwarded to the webhook.
type Event struct {
	Input1    *string `json:"input1" xml:"Input1"`
	EventType string  `json:"event_type" xml:"EventType"`
	ExtraText string  `json:"extra_text" xml:"ExtraText"`
	DateTime  string  `json:"date_time" xml:"DateTime"`
}

func (e Event) String() string {
	var sb strings.Builder
	if e.Input1 != nil && strings.TrimSpace(*e.Input1) != "" {
		fmt.Fprintf(&sb, "#%s | ", *e.Input1)
	}
	fmt.Fprintf(&sb, "%s @ %s", e.EventType, e.DateTime)
	return sb.String()
}
