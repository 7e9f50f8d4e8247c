package alarm

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
)

func strPtr(s string) *string {
	return &s
}

func TestDecode(t *testing.T) {
	body := `
<?xml version="1.0" encoding="UTF-8"?>
<Alarm>
	<Input1>Front door</Input1>
	<EventType>Motion</EventType>
	<ExtraText>Zone 2</ExtraText>
	<DateTime>2024-01-01T00:00:00</DateTime>
</Alarm>
`
	e, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	if e.Input1 == nil || *e.Input1 != "Front door" {
		t.Errorf("Expected Input1 'Front door', got %v", e.Input1)
	}
	if e.EventType != "Motion" || e.ExtraText != "Zone 2" || e.DateTime != "2024-01-01T00:00:00" {
		t.Errorf("Unexpected event %+v", e)
	}
}

func TestDecodeOptionalFields(t *testing.T) {
	e, err := Decode("<Event><EventType>Motion</EventType><DateTime>2024-01-01T00:00:00</DateTime></Event>")
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if e.Input1 != nil {
		t.Errorf("Expected Input1 to be nil, got %q", *e.Input1)
	}
	if e.ExtraText != "" {
		t.Errorf("Expected empty ExtraText, got %q", e.ExtraText)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"empty", "  \r\n ", ErrEmptyBody},
		{"missing event type", "<A><DateTime>now</DateTime></A>", ErrMissingEventType},
		{"missing date time", "<A><EventType>Motion</EventType></A>", ErrMissingDateTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.body)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := Decode("this is not xml"); err == nil {
		t.Error("Expected error for non-xml body")
	}
	if _, err := Decode("<A><EventType>Motion</A>"); err == nil {
		t.Error("Expected error for malformed xml")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Event{EventType: "Motion", DateTime: "2024-01-01T00:00:00"}, "Motion @ 2024-01-01T00:00:00"},
		{Event{Input1: strPtr("Gate"), EventType: "Tamper", DateTime: "12:00"}, "#Gate | Tamper @ 12:00"},
		{Event{Input1: strPtr("   "), EventType: "Tamper", DateTime: "12:00"}, "Tamper @ 12:00"},
		{Event{Input1: strPtr(""), EventType: "Tamper", DateTime: "12:00"}, "Tamper @ 12:00"},
	}

	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

func TestEventJSON(t *testing.T) {
	data, err := json.Marshal(Event{EventType: "Motion", DateTime: "2024-01-01T00:00:00"})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	expected := `{"input1":null,"event_type":"Motion","extra_text":"","date_time":"2024-01-01T00:00:00"}`
	if string(data) != expected {
		t.Errorf("Expected %s, got %s", expected, data)
	}
}
