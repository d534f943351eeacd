package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelseymakesthings/auto-outfit/internal/history"
)

func runHistoryCmd(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewHistoryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf, err
}

func seedHistory(t *testing.T, dbPath string) {
	t.Helper()
	store, err := history.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	entries := []history.Entry{
		{
			ID: "a-first", CreatedAt: base, Seed: 1,
			Pieces: []history.WornPiece{
				{Category: "top", Name: "white tee", Filename: "white_tee.png"},
				{Category: "bottom", Name: "blue jeans", Filename: "blue_jeans.png"},
			},
		},
		{
			ID: "b-second", CreatedAt: base.Add(time.Hour), Seed: 2,
			Pieces: []history.WornPiece{
				{Category: "top", Name: "black blouse", Filename: "black_blouse.png"},
				{Category: "bottom", Name: "black slacks", Filename: "black_slacks.png"},
			},
		},
	}
	for _, e := range entries {
		require.NoError(t, store.Record(context.Background(), e))
	}
}

func TestHistory_RequiresDB(t *testing.T) {
	clearEnv(t)

	_, err := runHistoryCmd(t, "text")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestHistory_Empty(t *testing.T) {
	clearEnv(t)
	dbPath := filepath.Join(t.TempDir(), "outfits.db")

	buf, err := runHistoryCmd(t, "text", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No outfits recorded yet.")
}

func TestHistory_ListsNewestFirst(t *testing.T) {
	clearEnv(t)
	dbPath := filepath.Join(t.TempDir(), "outfits.db")
	seedHistory(t, dbPath)

	buf, err := runHistoryCmd(t, "text", "--db", dbPath)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "black blouse, black slacks")
	assert.Contains(t, out, "white tee, blue jeans")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("black blouse")), bytes.Index(buf.Bytes(), []byte("white tee")),
		"newest outfit printed first")
}

func TestHistory_Limit(t *testing.T) {
	clearEnv(t)
	dbPath := filepath.Join(t.TempDir(), "outfits.db")
	seedHistory(t, dbPath)

	buf, err := runHistoryCmd(t, "text", "--db", dbPath, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "black blouse")
	assert.NotContains(t, buf.String(), "white tee")
}

func TestHistory_JSON(t *testing.T) {
	clearEnv(t)
	dbPath := filepath.Join(t.TempDir(), "outfits.db")
	seedHistory(t, dbPath)

	buf, err := runHistoryCmd(t, "json", "--db", dbPath)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result HistoryResult
	require.NoError(t, json.Unmarshal(data, &result))

	require.Len(t, result.Outfits, 2)
	assert.Equal(t, "b-second", result.Outfits[0].ID)
	assert.Len(t, result.Outfits[0].Pieces, 2)
}
