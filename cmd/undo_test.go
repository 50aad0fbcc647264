/*
Copyright © 2025 changheonshin
*/
package cmd

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlikebear/parafile/internal/organizer"
)

func seedHistory(t *testing.T, ops ...organizer.Operation) {
	t.Helper()
	store := newHistoryStore()
	require.NoError(t, store.InitDB())
	for _, op := range ops {
		require.NoError(t, store.Record(op))
	}
	require.NoError(t, store.Close())
}

func TestUndoCommand_ReversesLatestRun(t *testing.T) {
	fs := useMemFs(t)
	dbPath := useTempHistory(t)

	require.NoError(t, afero.WriteFile(fs, "/inbox/1_projects/active/plan.txt", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/inbox/2_areas/work/memo.txt", []byte("y"), 0o644))

	seedHistory(t,
		organizer.Operation{
			OriginalPath: "/inbox/plan.txt",
			FinalPath:    "/inbox/1_projects/active/plan.txt",
			CategoryPath: "1_projects/active",
			Timestamp:    time.Now(),
		},
		organizer.Operation{
			OriginalPath: "/inbox/memo.txt",
			FinalPath:    "/inbox/2_areas/work/memo.txt",
			CategoryPath: "2_areas/work",
			Timestamp:    time.Now(),
		},
	)

	err := undoCmd.RunE(undoCmd, nil)
	require.NoError(t, err)

	restored, _ := afero.Exists(fs, "/inbox/plan.txt")
	assert.True(t, restored)
	restored, _ = afero.Exists(fs, "/inbox/memo.txt")
	assert.True(t, restored)

	dbConn, err := sqlx.Connect("sqlite3", dbPath)
	require.NoError(t, err)
	defer dbConn.Close()

	var count int
	require.NoError(t, dbConn.Get(&count, "SELECT COUNT(*) FROM operations"))
	assert.Equal(t, 0, count, "reversed run is removed from the log")
}

func TestUndoCommand_NothingToUndo(t *testing.T) {
	useMemFs(t)
	useTempHistory(t)

	err := undoCmd.RunE(undoCmd, nil)
	assert.NoError(t, err)
}
