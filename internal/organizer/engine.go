/*
Copyright © 2025 changheonshin
*/

// Package organizer moves classified files into their PARA category
// folders. The engine applies one file at a time, retries transient
// failures, keeps a linear undo/redo history and supports cooperative
// cancellation between files.
package organizer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"

	"github.com/devlikebear/parafile/internal/analyzer"
	"github.com/devlikebear/parafile/internal/common"
	"github.com/devlikebear/parafile/internal/config"
	"github.com/devlikebear/parafile/internal/rename"
)

// BatchState is the lifecycle of one organize pass.
type BatchState string

const (
	StateIdle      BatchState = "idle"
	StateRunning   BatchState = "running"
	StateCompleted BatchState = "completed"
	StateCancelled BatchState = "cancelled"
)

// Stats counts per-file outcomes of one organize pass. Counters reset at
// the start of each pass and only grow during it.
type Stats struct {
	Processed int
	Succeeded int
	Failed    int
	Skipped   int
}

// ProgressFunc receives batch progress. It may be called from the
// goroutine running the pass.
type ProgressFunc func(percent float64, status string)

// Recorder persists executed operations for later inspection. Recording
// failures are logged, never fatal.
type Recorder interface {
	Record(op Operation) error
}

// Engine organizes files. One pass runs at a time; the stop flag is the
// only field written from outside the processing loop.
type Engine struct {
	fs       afero.Fs
	cfg      *config.Config
	renamer  *rename.Renamer
	recorder Recorder
	logger   *slog.Logger

	running atomic.Bool
	stop    atomic.Bool
	state   BatchState
	stats   Stats
	history opHistory
}

// New creates an Engine. recorder may be nil.
func New(fs afero.Fs, cfg *config.Config, recorder Recorder) *Engine {
	return &Engine{
		fs:       fs,
		cfg:      cfg,
		renamer:  rename.New(fs, cfg.GetBool("ascii_filenames", false)),
		recorder: recorder,
		logger:   slog.Default(),
		state:    StateIdle,
	}
}

// Stop requests cooperative cancellation. The in-flight file finishes;
// remaining files are left untouched.
func (e *Engine) Stop() { e.stop.Store(true) }

// State returns the batch state of the most recent pass.
func (e *Engine) State() BatchState { return e.state }

// Stats returns the counters of the most recent pass.
func (e *Engine) Stats() Stats { return e.stats }

// CanUndo reports whether an operation is available to reverse.
func (e *Engine) CanUndo() bool { return len(e.history.undo) > 0 }

// CanRedo reports whether a reversed operation can be replayed.
func (e *Engine) CanRedo() bool { return len(e.history.redo) > 0 }

// OrganizeFiles moves every classified file under sourceDir into its
// category folder. Per-file failures are counted and logged but never
// abort the pass; only a missing source directory aborts before any
// mutation.
func (e *Engine) OrganizeFiles(ctx context.Context, sourceDir string, records []*analyzer.FileRecord, removeEmpty bool, progress ProgressFunc) (Stats, error) {
	if !e.running.CompareAndSwap(false, true) {
		return e.stats, fmt.Errorf("an organize pass is already running")
	}
	defer e.running.Store(false)

	info, err := e.fs.Stat(sourceDir)
	if err != nil || !info.IsDir() {
		return e.stats, fmt.Errorf("%w: %s", common.ErrSourceMissing, sourceDir)
	}

	e.stats = Stats{}
	e.stop.Store(false)
	e.state = StateRunning

	if e.cfg.GetBool("backup_enabled", false) {
		if backupDir, err := e.backup(sourceDir); err != nil {
			common.LogError(err, "backup failed, continuing without one", common.Fields{"dir": sourceDir})
		} else {
			common.LogInfo("created backup", common.Fields{"dir": backupDir})
		}
	}

	rules := e.cfg.OrganizationRules()
	total := len(records)

	for i, rec := range records {
		if e.stop.Load() {
			e.stats.Skipped += total - i
			e.state = StateCancelled
			break
		}
		select {
		case <-ctx.Done():
			e.stats.Skipped += total - i
			e.state = StateCancelled
		default:
		}
		if e.state == StateCancelled {
			break
		}

		e.stats.Processed++
		if err := e.processFile(ctx, sourceDir, rec, rules); err != nil {
			e.stats.Failed++
			common.LogError(err, "failed to organize file", common.Fields{
				"file": rec.Path, "hint": common.UserMessage(err),
			})
		} else if rec.RuleFolder == "" && rec.Result.Error != "" {
			// The file found a home in the fallback bucket, but the gateway
			// failure behind it still counts against the run.
			e.stats.Failed++
		} else {
			e.stats.Succeeded++
		}

		if progress != nil {
			progress(float64(i+1)/float64(total)*100, fmt.Sprintf("organized %s (%d/%d)", filepath.Base(rec.Path), i+1, total))
		}
	}

	if e.state != StateCancelled {
		e.state = StateCompleted
	}

	if removeEmpty || e.cfg.GetBool("remove_empty_folders", false) {
		e.removeEmptyDirs(sourceDir)
	}

	if progress != nil {
		progress(100, string(e.state))
	}
	return e.stats, nil
}

// processFile renames (when a suggestion exists) and moves a single file.
// Transient failures are retried with backoff before counting as failed.
func (e *Engine) processFile(ctx context.Context, sourceDir string, rec *analyzer.FileRecord, rules config.OrgRules) error {
	result := rec.Result

	var folder string
	if rec.RuleFolder != "" {
		// Rule-matched files go where the rule's action put them; the
		// action already encodes any date or type foldering.
		folder = rec.RuleFolder
	} else {
		if !result.Success {
			// No classification signal: the file still gets a home in the
			// fallback bucket.
			e.logger.Warn("no classification signal, filing under default category", "file", rec.Path)
		}
		folder = e.cfg.CategoryFolder(string(result.Category), result.Subcategory)
		if rules.UseDate {
			folder = filepath.Join(folder, rec.ModTime.Format("2006-01"))
		}
	}
	targetDir := filepath.Join(sourceDir, folder)

	current := rec.Path

	if result.Success && result.SuggestedName != "" && rules.SmartRenameEnabled {
		var renamed *rename.Result
		err := common.WithRetry(ctx, func() error {
			var rerr error
			renamed, rerr = e.renamer.Rename(current, result.SuggestedName)
			return rerr
		}, common.DefaultRetryOptions())
		if err != nil {
			// Keep the original name; the move below still proceeds.
			e.logger.Warn("rename failed, keeping original name", "file", current, "error", err)
		} else {
			current = renamed.NewPath
		}
	}

	var finalPath string
	err := common.WithRetry(ctx, func() error {
		var merr error
		finalPath, merr = e.renamer.MoveTo(current, targetDir)
		return merr
	}, common.DefaultRetryOptions())
	if err != nil {
		return err
	}

	op := Operation{
		OriginalPath: rec.Path,
		FinalPath:    finalPath,
		CategoryPath: folder,
		Timestamp:    time.Now(),
	}
	rec.Path = finalPath
	e.history.push(op)
	if e.recorder != nil {
		if rerr := e.recorder.Record(op); rerr != nil {
			e.logger.Warn("failed to record operation", "file", finalPath, "error", rerr)
		}
	}
	return nil
}

// Undo reverses the most recent operation. It returns false when there
// is nothing to undo; a filesystem failure leaves the history unchanged.
func (e *Engine) Undo() (bool, error) {
	op, ok := e.history.popUndo()
	if !ok {
		return false, nil
	}
	if err := e.renamer.Move(op.FinalPath, op.OriginalPath); err != nil {
		e.history.restoreUndo(op)
		return false, err
	}
	e.history.restoreRedo(op)
	return true, nil
}

// Redo replays the most recently undone operation. It returns false when
// there is nothing to redo.
func (e *Engine) Redo() (bool, error) {
	op, ok := e.history.popRedo()
	if !ok {
		return false, nil
	}
	if err := e.renamer.Move(op.OriginalPath, op.FinalPath); err != nil {
		e.history.restoreRedo(op)
		return false, err
	}
	e.history.restoreUndo(op)
	return true, nil
}

// backup copies the source tree to a timestamped sibling directory
// before any mutation.
func (e *Engine) backup(sourceDir string) (string, error) {
	backupDir := fmt.Sprintf("%s-backup-%s", filepath.Clean(sourceDir), time.Now().Format("20060102-150405"))

	err := afero.Walk(e.fs, sourceDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(backupDir, rel)
		if info.IsDir() {
			return e.fs.MkdirAll(target, info.Mode().Perm())
		}
		return e.copyFile(path, target)
	})
	if err != nil {
		return "", err
	}
	return backupDir, nil
}

func (e *Engine) copyFile(src, dst string) error {
	in, err := e.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := e.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := e.fs.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// removeEmptyDirs deletes directories under root that contain no entries,
// deepest first. Non-empty directories are never touched.
func (e *Engine) removeEmptyDirs(root string) {
	var dirs []string
	_ = afero.Walk(e.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})

	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })

	for _, dir := range dirs {
		entries, err := afero.ReadDir(e.fs, dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := e.fs.Remove(dir); err == nil {
			e.logger.Debug("removed empty directory", "dir", dir)
		}
	}
}
