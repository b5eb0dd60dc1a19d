package file_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/matchday-app/matchday/internal/model"
	"github.com/matchday-app/matchday/internal/repository"
	"github.com/matchday-app/matchday/internal/repository/file"
)

func newStore(t *testing.T) (*file.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	return file.New(path, zerolog.New(io.Discard)), path
}

func sampleState() model.GameState {
	state := model.NewGameState()
	state.TournamentName = "Court 3"
	state.LastResetDate = "2026-08-30"
	state.Players = []model.Player{
		{ID: "p1", Name: "Alice", SkillLevel: 7, SignupOrder: 1, CreatedAt: time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)},
	}
	state.Teams = []model.Team{
		{ID: "team-1", Name: "Red Foxes", Color: "red", PlayerIDs: []string{"p1"}, CaptainIDs: []string{"p1"}, AverageSkill: 7},
	}
	state.Matches = []model.Match{
		{ID: "m1", GameNumber: 1, TeamAID: "team-1", TeamBID: "team-2", Status: model.MatchScheduled, Duration: 10},
	}
	return state
}

func TestStore_LoadMissingFile(t *testing.T) {
	store, _ := newStore(t)
	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	want := sampleState()

	require.NoError(t, store.Save(ctx, want))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestStore_SaveReplacesPreviousDocument(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleState()))

	next := model.NewGameState()
	next.TournamentName = "Replaced"
	require.NoError(t, store.Save(ctx, next))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "Replaced", got.TournamentName)
	require.Empty(t, got.Players)
}

func TestStore_CorruptDocument(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{{nope"), 0o644))
	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, repository.ErrCorrupt)
}

func TestStore_FutureSchemaVersion(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"state": {}, "version": 99}`), 0o644))
	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, repository.ErrUnsupportedVersion)
}

func TestStore_MigratesV1Document(t *testing.T) {
	store, path := newStore(t)
	v1 := `{
  "state": {
    "players": [
      {"id": "p1", "name": "Alice", "skillLevel": 7, "isWaitlist": false, "isCaptain": true, "signupOrder": 1, "createdAt": "2026-08-29T18:30:00Z"}
    ],
    "teams": [
      {"id": "team-1", "name": "Red Foxes", "color": "red", "players": ["p1"], "captainId": "p1", "averageSkill": 7},
      {"id": "team-2", "name": "Blue Sharks", "color": "blue", "players": [], "averageSkill": 0}
    ],
    "matches": [
      {"id": "m1", "gameNumber": 1, "teamAId": "team-1", "teamBId": "team-2", "scoreA": 2, "scoreB": 0, "status": "completed", "duration": 10, "startTime": "2026-08-29T19:00:00Z"},
      {"id": "m2", "gameNumber": 2, "teamAId": "team-2", "teamBId": "team-1", "scoreA": 0, "scoreB": 0, "status": "in-progress", "duration": 10}
    ],
    "settings": {"teamsCount": 2, "playersPerTeam": 4, "gamesPerTeam": 3, "matchDuration": 12},
    "tournamentName": "Legacy League",
    "lastResetDate": "2026-08-29"
  },
  "version": 1
}`
	require.NoError(t, os.WriteFile(path, []byte(v1), 0o644))

	got, err := store.Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, "Legacy League", got.TournamentName)
	require.Equal(t, "2026-08-29", got.LastResetDate)

	require.Len(t, got.Players, 1)
	require.Equal(t, time.Date(2026, 8, 29, 18, 30, 0, 0, time.UTC), got.Players[0].CreatedAt)
	require.True(t, got.Players[0].IsCaptain)

	// Legacy single captainId becomes the multi-captain set.
	require.Equal(t, []string{"p1"}, got.Teams[0].CaptainIDs)
	require.Empty(t, got.Teams[1].CaptainIDs)

	require.Len(t, got.Matches, 2)
	require.NotNil(t, got.Matches[0].StartTime)
	require.Equal(t, time.Date(2026, 8, 29, 19, 0, 0, 0, time.UTC), *got.Matches[0].StartTime)
	require.Equal(t, model.MatchInProgress, got.Matches[1].Status, "hyphenated status is normalized")
	require.Nil(t, got.Matches[1].StartTime)

	// Partial legacy settings merge over defaults.
	require.Equal(t, 12, got.Settings.MatchDuration)
	require.Equal(t, 4, got.Settings.PlayersPerTeam)
	require.Equal(t, model.DefaultSettings().WinPoints, got.Settings.WinPoints)
	require.Equal(t, 12*60, got.Timer.TimeRemaining)
}

func TestStore_NormalizesNilCollections(t *testing.T) {
	store, path := newStore(t)
	doc := `{"state": {"teams": [{"id": "team-1"}]}, "version": 2}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got.Players)
	require.NotNil(t, got.Matches)
	require.NotNil(t, got.Teams[0].PlayerIDs)
	require.NotNil(t, got.Teams[0].CaptainIDs)
}

func TestStore_SaveCreatesParentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "state.json")
	store := file.New(path, zerolog.New(io.Discard))

	require.NoError(t, store.Save(context.Background(), model.NewGameState()))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestStore_Ping(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, store.Ping(context.Background()))

	// A missing directory is created so first runs pass readiness.
	nested := filepath.Join(filepath.Dir(path), "gone", "state.json")
	require.NoError(t, file.New(nested, zerolog.New(io.Discard)).Ping(context.Background()))
	require.DirExists(t, filepath.Dir(nested))

	// A regular file where the directory should be is unrecoverable.
	blocker := filepath.Join(filepath.Dir(path), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	bad := file.New(filepath.Join(blocker, "state.json"), zerolog.New(io.Discard))
	require.Error(t, bad.Ping(context.Background()))
}

func TestStore_LeavesNoTempFilesBehind(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, store.Save(context.Background(), sampleState()))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the state file remains after save")
}
