package repository

import (
	"encoding/json"
	"fmt"

	"github.com/matchday-app/matchday/internal/model"
)

// ExportDocument is the interchange shape for export/import. Field
// order is stable so exported files diff cleanly. Settings is a
// pointer so an omitted section can fall back to defaults on import.
type ExportDocument struct {
	Players   []model.Player      `json:"players"`
	Teams     []model.Team        `json:"teams"`
	Matches   []model.Match       `json:"matches"`
	Settings  *model.GameSettings `json:"settings"`
	Standings []model.Standing    `json:"standings"`
}

// EncodeExport renders the shareable subset of state as pretty-printed
// JSON suitable for hand inspection or re-import.
func EncodeExport(state model.GameState) ([]byte, error) {
	settings := state.Settings
	doc := ExportDocument{
		Players:   state.Players,
		Teams:     state.Teams,
		Matches:   state.Matches,
		Settings:  &settings,
		Standings: state.Standings,
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return out, nil
}

// DecodeExport parses an exported document. Missing collections come
// back as empty slices and a missing settings section as defaults, so
// callers can apply the result without nil checks.
func DecodeExport(data []byte) (ExportDocument, error) {
	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ExportDocument{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.Players == nil {
		doc.Players = []model.Player{}
	}
	if doc.Teams == nil {
		doc.Teams = []model.Team{}
	}
	if doc.Matches == nil {
		doc.Matches = []model.Match{}
	}
	if doc.Settings == nil {
		s := model.DefaultSettings()
		doc.Settings = &s
	}
	if doc.Standings == nil {
		doc.Standings = []model.Standing{}
	}
	return doc, nil
}
