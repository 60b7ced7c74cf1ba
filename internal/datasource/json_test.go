package datasource

import (
	"testing"
)

func TestLoadJSONBareArray(t *testing.T) {
	path := writeFile(t, "events.json", []byte(`[
		{"id": "a", "title": "one", "start_ms": 1, "end_ms": 2},
		{"id": "b", "start_ms": 3, "end_ms": 4, "color": "#abc"}
	]`))

	events, lanes, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if lanes != nil {
		t.Errorf("bare array should carry no lanes, got %v", lanes)
	}
	if events[0].Title != "one" || events[1].Color != "#abc" {
		t.Errorf("fields not decoded: %+v", events)
	}
}

func TestLoadJSONWrappedObject(t *testing.T) {
	path := writeFile(t, "events.json", []byte(`{
		"lanes": [
			{"name": "work", "color": "#ff0000"},
			{"name": "life", "color": "#00ff00", "height": 30}
		],
		"events": [{"id": "a", "start_ms": 0, "end_ms": 10}]
	}`))

	events, lanes, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if len(events) != 1 || len(lanes) != 2 {
		t.Fatalf("got %d events, %d lanes", len(events), len(lanes))
	}
	if lanes[1].Height != 30 {
		t.Errorf("lane height = %d, want 30", lanes[1].Height)
	}
}

func TestLoadJSONInvalid(t *testing.T) {
	path := writeFile(t, "events.json", []byte(`{invalid`))
	if _, _, err := LoadJSON(path); err == nil {
		t.Error("invalid JSON should error")
	}
}

func TestLoadJSONMissingFile(t *testing.T) {
	if _, _, err := LoadJSON("/nonexistent/events.json"); err == nil {
		t.Error("missing file should error")
	}
}
