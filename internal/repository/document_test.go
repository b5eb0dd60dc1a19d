package repository_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matchday-app/matchday/internal/model"
	"github.com/matchday-app/matchday/internal/repository"
)

func TestEncodeExport_StableShape(t *testing.T) {
	state := model.NewGameState()
	state.Players = []model.Player{{ID: "p1", Name: "Alice", SkillLevel: 6}}

	out, err := repository.EncodeExport(state)
	require.NoError(t, err)

	// Pretty-printed and re-parseable.
	require.Contains(t, string(out), "\n  \"players\"")
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &doc))
	for _, key := range []string{"players", "teams", "matches", "settings", "standings"} {
		require.Contains(t, doc, key)
	}
}

func TestDecodeExport_Defaults(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty object", `{}`},
		{"null collections", `{"players": null, "teams": null, "matches": null, "standings": null}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := repository.DecodeExport([]byte(tc.input))
			require.NoError(t, err)
			require.NotNil(t, doc.Players)
			require.NotNil(t, doc.Teams)
			require.NotNil(t, doc.Matches)
			require.NotNil(t, doc.Standings)
			require.NotNil(t, doc.Settings)
			require.Equal(t, model.DefaultSettings(), *doc.Settings)
		})
	}
}

func TestDecodeExport_Malformed(t *testing.T) {
	_, err := repository.DecodeExport([]byte(`not json at all`))
	require.ErrorIs(t, err, repository.ErrCorrupt)
}

func TestExport_RoundTripThroughDecode(t *testing.T) {
	state := model.NewGameState()
	state.Teams = []model.Team{{ID: "team-1", Name: "Red Foxes", PlayerIDs: []string{}, CaptainIDs: []string{}}}
	state.Matches = []model.Match{{ID: "m1", GameNumber: 1, TeamAID: "team-1", TeamBID: "team-2", Status: model.MatchScheduled}}

	out, err := repository.EncodeExport(state)
	require.NoError(t, err)
	doc, err := repository.DecodeExport(out)
	require.NoError(t, err)
	require.Equal(t, state.Teams, doc.Teams)
	require.Equal(t, state.Matches, doc.Matches)
	require.Equal(t, state.Settings, *doc.Settings)
}
