package datasource

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/Geddart/linearcal/pkg/model"
)

// eventFile is the JSON event file layout: either a bare array of events or
// an object wrapping one under "events" (the export format carries lanes
// alongside).
type eventFile struct {
	Lanes  []model.Lane  `json:"lanes,omitempty"`
	Events []model.Event `json:"events"`
}

// LoadJSON reads events (and optional lane definitions) from a JSON file.
func LoadJSON(path string) ([]model.Event, []model.Lane, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	// Bare array form first: it is what most generators emit.
	var events []model.Event
	if err := json.Unmarshal(data, &events); err == nil {
		return events, nil, nil
	}

	var file eventFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return file.Events, file.Lanes, nil
}
