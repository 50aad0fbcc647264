/*
Copyright © 2025 changheonshin
*/
package organizer

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlikebear/parafile/internal/analyzer"
	"github.com/devlikebear/parafile/internal/classify"
	"github.com/devlikebear/parafile/internal/common"
	"github.com/devlikebear/parafile/internal/config"
)

func newTestConfig(t *testing.T, fs afero.Fs) *config.Config {
	t.Helper()
	cfg, err := config.New(fs, "/home/user/.parafile/config.json")
	require.NoError(t, err)
	return cfg
}

func record(path string, category classify.Category, sub, suggested string) *analyzer.FileRecord {
	return &analyzer.FileRecord{
		Path:    path,
		ModTime: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		Result: classify.Result{
			Success:       true,
			Category:      category,
			Subcategory:   sub,
			SuggestedName: suggested,
		},
	}
}

func TestOrganizeFiles_MovesIntoCategoryFolders(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs)
	require.NoError(t, afero.WriteFile(fs, "/inbox/plan.txt", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/inbox/gym.txt", []byte("y"), 0o644))

	e := New(fs, cfg, nil)
	records := []*analyzer.FileRecord{
		record("/inbox/plan.txt", classify.CategoryProjects, "active", ""),
		record("/inbox/gym.txt", classify.CategoryAreas, "health", ""),
	}
	stats, err := e.OrganizeFiles(context.Background(), "/inbox", records, false, nil)
	require.NoError(t, err)

	assert.Equal(t, Stats{Processed: 2, Succeeded: 2}, stats)
	assert.Equal(t, StateCompleted, e.State())

	exists, _ := afero.Exists(fs, "/inbox/1_projects/active/plan.txt")
	assert.True(t, exists)
	exists, _ = afero.Exists(fs, "/inbox/2_areas/health/gym.txt")
	assert.True(t, exists)

	// Records track their files to the final location.
	assert.Equal(t, "/inbox/1_projects/active/plan.txt", records[0].Path)
	assert.Equal(t, "/inbox/2_areas/health/gym.txt", records[1].Path)
}

func TestOrganizeFiles_SmartRenameUsesSuggestion(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs)
	require.NoError(t, afero.WriteFile(fs, "/inbox/scan0001.txt", []byte("x"), 0o644))

	e := New(fs, cfg, nil)
	stats, err := e.OrganizeFiles(context.Background(), "/inbox", []*analyzer.FileRecord{
		record("/inbox/scan0001.txt", classify.CategoryResources, "references", "insurance-policy-terms"),
	}, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Succeeded)

	exists, _ := afero.Exists(fs, "/inbox/3_resources/references/insurance-policy-terms.txt")
	assert.True(t, exists)
}

func TestOrganizeFiles_SmartRenameDisabled(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs)
	require.NoError(t, cfg.Set("organization_rules.smart_rename_enabled", false))
	require.NoError(t, afero.WriteFile(fs, "/inbox/scan0001.txt", []byte("x"), 0o644))

	e := New(fs, cfg, nil)
	_, err := e.OrganizeFiles(context.Background(), "/inbox", []*analyzer.FileRecord{
		record("/inbox/scan0001.txt", classify.CategoryResources, "references", "insurance-policy-terms"),
	}, false, nil)
	require.NoError(t, err)

	exists, _ := afero.Exists(fs, "/inbox/3_resources/references/scan0001.txt")
	assert.True(t, exists)
}

func TestOrganizeFiles_DateSubfolder(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs)
	require.NoError(t, cfg.Set("organization_rules.use_date", true))
	require.NoError(t, afero.WriteFile(fs, "/inbox/plan.txt", []byte("x"), 0o644))

	e := New(fs, cfg, nil)
	_, err := e.OrganizeFiles(context.Background(), "/inbox", []*analyzer.FileRecord{
		record("/inbox/plan.txt", classify.CategoryProjects, "active", ""),
	}, false, nil)
	require.NoError(t, err)

	exists, _ := afero.Exists(fs, "/inbox/1_projects/active/2025-03/plan.txt")
	assert.True(t, exists)
}

func TestOrganizeFiles_RuleFolderWins(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs)
	require.NoError(t, afero.WriteFile(fs, "/inbox/report.pdf", []byte("%PDF"), 0o644))

	e := New(fs, cfg, nil)
	rec := &analyzer.FileRecord{Path: "/inbox/report.pdf", RuleFolder: "Documents/PDF"}
	stats, err := e.OrganizeFiles(context.Background(), "/inbox", []*analyzer.FileRecord{rec}, false, nil)
	require.NoError(t, err)

	assert.Equal(t, Stats{Processed: 1, Succeeded: 1}, stats)
	exists, _ := afero.Exists(fs, "/inbox/Documents/PDF/report.pdf")
	assert.True(t, exists)
}

func TestOrganizeFiles_FailedClassificationGoesToFallback(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs)
	require.NoError(t, afero.WriteFile(fs, "/inbox/noise.bin", []byte("x"), 0o644))

	rec := &analyzer.FileRecord{
		Path:   "/inbox/noise.bin",
		Result: classify.Failed("", "connection refused"),
	}

	e := New(fs, cfg, nil)
	stats, err := e.OrganizeFiles(context.Background(), "/inbox", []*analyzer.FileRecord{rec}, false, nil)
	require.NoError(t, err)
	// The move worked, but the gateway failure behind it counts as failed.
	assert.Equal(t, Stats{Processed: 1, Failed: 1}, stats)

	exists, _ := afero.Exists(fs, "/inbox/5_other/noise.bin")
	assert.True(t, exists)
}

func TestOrganizeFiles_NoSignalStillSucceeds(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs)
	require.NoError(t, afero.WriteFile(fs, "/inbox/blank.txt", []byte("x"), 0o644))

	rec := &analyzer.FileRecord{
		Path:   "/inbox/blank.txt",
		Result: classify.Result{Category: classify.CategoryOther, Subcategory: classify.OtherSubcategory},
	}

	e := New(fs, cfg, nil)
	stats, err := e.OrganizeFiles(context.Background(), "/inbox", []*analyzer.FileRecord{rec}, false, nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{Processed: 1, Succeeded: 1}, stats)

	exists, _ := afero.Exists(fs, "/inbox/5_other/blank.txt")
	assert.True(t, exists)
}

func TestOrganizeFiles_MissingSourceDirAborts(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs)

	e := New(fs, cfg, nil)
	_, err := e.OrganizeFiles(context.Background(), "/nope", nil, false, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSourceMissing)
	assert.Equal(t, "check that the source directory exists", common.UserMessage(err))
}

func TestOrganizeFiles_Cancellation(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs)
	records := make([]*analyzer.FileRecord, 0, 4)
	for _, name := range []string{"a", "b", "c", "d"} {
		path := "/inbox/" + name + ".txt"
		require.NoError(t, afero.WriteFile(fs, path, []byte("x"), 0o644))
		records = append(records, record(path, classify.CategoryProjects, "active", ""))
	}

	e := New(fs, cfg, nil)
	stats, err := e.OrganizeFiles(context.Background(), "/inbox", records, false, func(_ float64, _ string) {
		e.Stop()
	})
	require.NoError(t, err)

	assert.Equal(t, StateCancelled, e.State())
	assert.Equal(t, 1, stats.Succeeded)
	assert.Equal(t, 3, stats.Skipped)

	// Remaining files untouched.
	exists, _ := afero.Exists(fs, "/inbox/b.txt")
	assert.True(t, exists)
}

func TestOrganizeFiles_RemoveEmptyDirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs)
	require.NoError(t, afero.WriteFile(fs, "/inbox/sub/plan.txt", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/inbox/keep/stay.txt", []byte("x"), 0o644))

	e := New(fs, cfg, nil)
	_, err := e.OrganizeFiles(context.Background(), "/inbox", []*analyzer.FileRecord{
		record("/inbox/sub/plan.txt", classify.CategoryProjects, "active", ""),
	}, true, nil)
	require.NoError(t, err)

	subExists, _ := afero.DirExists(fs, "/inbox/sub")
	assert.False(t, subExists, "emptied directory should be removed")
	keepExists, _ := afero.DirExists(fs, "/inbox/keep")
	assert.True(t, keepExists, "non-empty directory must survive")
}

func TestOrganizeFiles_BackupCreatedBeforeMutation(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs)
	require.NoError(t, cfg.Set("backup_enabled", true))
	require.NoError(t, afero.WriteFile(fs, "/inbox/plan.txt", []byte("original"), 0o644))

	e := New(fs, cfg, nil)
	_, err := e.OrganizeFiles(context.Background(), "/inbox", []*analyzer.FileRecord{
		record("/inbox/plan.txt", classify.CategoryProjects, "active", ""),
	}, false, nil)
	require.NoError(t, err)

	matches, err := afero.Glob(fs, "/inbox-backup-*/plan.txt")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	content, _ := afero.ReadFile(fs, matches[0])
	assert.Equal(t, "original", string(content))
}

func TestUndoRedo_InverseLaw(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs)
	require.NoError(t, afero.WriteFile(fs, "/inbox/plan.txt", []byte("x"), 0o644))

	e := New(fs, cfg, nil)
	_, err := e.OrganizeFiles(context.Background(), "/inbox", []*analyzer.FileRecord{
		record("/inbox/plan.txt", classify.CategoryProjects, "active", ""),
	}, false, nil)
	require.NoError(t, err)
	require.True(t, e.CanUndo())

	ok, err := e.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	back, _ := afero.Exists(fs, "/inbox/plan.txt")
	assert.True(t, back)

	ok, err = e.Redo()
	require.NoError(t, err)
	assert.True(t, ok)
	moved, _ := afero.Exists(fs, "/inbox/1_projects/active/plan.txt")
	assert.True(t, moved)
}

func TestUndoRedo_EmptyStacks(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs)

	e := New(fs, cfg, nil)
	ok, err := e.Undo()
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = e.Redo()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUndoRedo_NewOperationClearsRedo(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs)
	require.NoError(t, afero.WriteFile(fs, "/inbox/a.txt", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/inbox/b.txt", []byte("y"), 0o644))

	e := New(fs, cfg, nil)
	_, err := e.OrganizeFiles(context.Background(), "/inbox", []*analyzer.FileRecord{
		record("/inbox/a.txt", classify.CategoryProjects, "active", ""),
	}, false, nil)
	require.NoError(t, err)

	ok, err := e.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, e.CanRedo())

	_, err = e.OrganizeFiles(context.Background(), "/inbox", []*analyzer.FileRecord{
		record("/inbox/b.txt", classify.CategoryAreas, "work", ""),
	}, false, nil)
	require.NoError(t, err)

	assert.False(t, e.CanRedo(), "a new operation discards the redo stack")
}

type memRecorder struct {
	ops []Operation
}

func (m *memRecorder) Record(op Operation) error {
	m.ops = append(m.ops, op)
	return nil
}

func TestOrganizeFiles_RecordsOperations(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs)
	require.NoError(t, afero.WriteFile(fs, "/inbox/plan.txt", []byte("x"), 0o644))

	rec := &memRecorder{}
	e := New(fs, cfg, rec)
	_, err := e.OrganizeFiles(context.Background(), "/inbox", []*analyzer.FileRecord{
		record("/inbox/plan.txt", classify.CategoryProjects, "active", ""),
	}, false, nil)
	require.NoError(t, err)

	require.Len(t, rec.ops, 1)
	assert.Equal(t, "/inbox/plan.txt", rec.ops[0].OriginalPath)
	assert.Equal(t, "/inbox/1_projects/active/plan.txt", rec.ops[0].FinalPath)
	assert.Equal(t, "1_projects/active", rec.ops[0].CategoryPath)
	assert.False(t, rec.ops[0].Timestamp.IsZero())
}
