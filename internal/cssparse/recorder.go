package cssparse

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// EventKind identifies which Handler method produced an Event.
type EventKind int

// Event kinds, one per Handler method.
const (
	EventImport EventKind = iota
	EventStartRule
	EventSelector
	EventProperty
	EventValue
	EventEndRule
)

var eventKindNames = [...]string{
	EventImport:    "import",
	EventStartRule: "start-rule",
	EventSelector:  "selector",
	EventProperty:  "property",
	EventValue:     "value",
	EventEndRule:   "end-rule",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return "EventKind(" + strconv.Itoa(int(k)) + ")"
	}
	return eventKindNames[k]
}

// MarshalText encodes the kind by name, so JSON output stays readable.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (k *EventKind) UnmarshalText(b []byte) error {
	for i, name := range eventKindNames {
		if name == string(b) {
			*k = EventKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", b)
}

// Event is one recorded Handler call. Text is empty for rule boundaries.
type Event struct {
	Kind EventKind `json:"kind"`
	Text string    `json:"text,omitempty"`
}

func (e Event) String() string {
	switch e.Kind {
	case EventStartRule, EventEndRule:
		return e.Kind.String()
	}
	return e.Kind.String() + " " + strconv.Quote(e.Text)
}

// Recorder is a Handler that keeps every event it receives.
type Recorder struct {
	Events []Event
}

// Reset drops the recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

func (r *Recorder) add(kind EventKind, text string) {
	r.Events = append(r.Events, Event{Kind: kind, Text: text})
}

func (r *Recorder) HandleImport(text string)   { r.add(EventImport, text) }
func (r *Recorder) StartRule()                 { r.add(EventStartRule, "") }
func (r *Recorder) HandleSelector(text string) { r.add(EventSelector, text) }
func (r *Recorder) HandleProperty(name string) { r.add(EventProperty, name) }
func (r *Recorder) HandleValue(text string)    { r.add(EventValue, text) }
func (r *Recorder) EndRule()                   { r.add(EventEndRule, "") }

// MarshalJSON encodes the recorded events as a JSON array.
func (r *Recorder) MarshalJSON() ([]byte, error) {
	if r.Events == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Events)
}
