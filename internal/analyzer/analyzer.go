/*
Copyright © 2025 changheonshin
*/

// Package analyzer runs the classification pipeline for files on disk:
// content extraction, language detection, prompt construction, the LLM
// round-trip and resolution into a canonical category decision.
package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/spf13/afero"

	"github.com/devlikebear/parafile/internal/ai"
	"github.com/devlikebear/parafile/internal/classify"
	"github.com/devlikebear/parafile/internal/common"
	"github.com/devlikebear/parafile/internal/config"
	"github.com/devlikebear/parafile/internal/extract"
	"github.com/devlikebear/parafile/internal/utils"
)

// FileRecord is the outcome of analyzing a single file.
type FileRecord struct {
	Path     string
	Size     int64
	ModTime  time.Time
	MIME     string
	Encoding string
	Binary   bool
	Language string
	// RuleFolder is the destination directory, relative to the organize
	// root, chosen by a matching rule. When set, Result is not consulted.
	RuleFolder string
	Result     classify.Result
}

// ListStats counts what the directory walk saw.
type ListStats struct {
	FilesFound         int
	DirectoriesSkipped int
	PermissionErrors   int
	SkippedPaths       []string
}

// PreClassifier short-circuits classification for files that match a
// deterministic routing rule, skipping the LLM round-trip. The returned
// directory is relative to the organize root.
type PreClassifier interface {
	Resolve(path string) (string, bool)
}

// Options tunes how the analyzer classifies.
type Options struct {
	// Rules is consulted before any content analysis when non-nil.
	Rules PreClassifier
	// UseKeywords classifies with the offline keyword matcher instead of
	// an LLM provider.
	UseKeywords bool
	// Recursive walks subdirectories instead of only the top level.
	Recursive bool
	// MaxSampleBytes overrides the content extraction cap when positive.
	MaxSampleBytes int64
}

// Analyzer drives the per-file classification pipeline.
type Analyzer struct {
	fs        afero.Fs
	cfg       *config.Config
	provider  ai.Provider
	extractor *extract.Extractor
	prompts   *ai.PromptBuilder
	resolver  *classify.Resolver
	keywords  *classify.KeywordStrategy
	opts      Options
}

// New creates an Analyzer. The provider may be nil when opts.UseKeywords
// is set.
func New(fs afero.Fs, cfg *config.Config, provider ai.Provider, opts Options) *Analyzer {
	maxBytes := opts.MaxSampleBytes
	if maxBytes <= 0 {
		maxBytes = extract.DefaultMaxBytes
	}
	return &Analyzer{
		fs:        fs,
		cfg:       cfg,
		provider:  provider,
		extractor: extract.New(fs, maxBytes),
		prompts:   ai.NewPromptBuilder(),
		resolver:  classify.NewResolver(),
		keywords:  classify.NewKeywordStrategy(),
		opts:      opts,
	}
}

// ListFiles enumerates the regular files under root that are candidates
// for organization. Category target folders, hidden entries and OS
// special directories are skipped.
func (a *Analyzer) ListFiles(ctx context.Context, root string) ([]string, *ListStats, error) {
	skipPatterns := utils.GetSkipPatterns()
	categoryDirs := a.categoryDirNames()
	stats := &ListStats{}
	var files []string

	err := afero.Walk(a.fs, root, func(path string, info os.FileInfo, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if utils.IsPermissionError(err) {
				stats.PermissionErrors++
				stats.SkippedPaths = append(stats.SkippedPaths, path)
				return nil
			}
			return err
		}

		if info.IsDir() {
			if path == root {
				return nil
			}
			base := filepath.Base(path)
			if categoryDirs[base] || utils.ShouldSkipPath(path, skipPatterns) {
				stats.DirectoriesSkipped++
				stats.SkippedPaths = append(stats.SkippedPaths, path)
				return filepath.SkipDir
			}
			if !a.opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(filepath.Base(path), ".") {
			stats.SkippedPaths = append(stats.SkippedPaths, path)
			return nil
		}

		files = append(files, path)
		stats.FilesFound++
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	return files, stats, nil
}

// ClassifyFile analyzes a single file. The returned record always carries
// a usable Result; when classification fails the result is the other/other
// fallback and the error describes why.
func (a *Analyzer) ClassifyFile(ctx context.Context, path string) (*FileRecord, error) {
	info, err := a.fs.Stat(path)
	if err != nil {
		return nil, common.Retryable(err)
	}

	rec := &FileRecord{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}

	if a.opts.Rules != nil {
		if folder, ok := a.opts.Rules.Resolve(path); ok {
			rec.RuleFolder = folder
			return rec, nil
		}
	}

	sample, err := a.extractor.Extract(path)
	if err != nil {
		// Unreadable content still gets a home based on its name.
		sample = &extract.Sample{}
	}
	rec.MIME = sample.MIME
	rec.Encoding = sample.Encoding
	rec.Binary = sample.Binary
	rec.Language = detectLanguage(sample.Text)

	if rec.Binary || a.opts.UseKeywords || a.provider == nil {
		category, sub := a.keywords.Resolve(sample.Text, path)
		rec.Result = classify.Result{
			Success:     true,
			Category:    category,
			Subcategory: sub,
		}
		return rec, nil
	}

	prompt := a.prompts.Build(sample.MIME, sample.Text, rec.Language)

	var raw string
	queryErr := common.WithRetry(ctx, func() error {
		var qerr error
		raw, qerr = a.provider.Query(ctx, prompt)
		return qerr
	}, common.DefaultRetryOptions())
	if queryErr != nil {
		rec.Result = classify.Failed(raw, queryErr.Error())
		return rec, queryErr
	}

	parsed := classify.Parse(raw)
	category, sub := a.resolver.Resolve(parsed, path)
	rec.Result = classify.FromParsed(parsed, category, sub, raw)
	return rec, nil
}

// AnalyzeDirectory classifies every candidate file under root. The
// progress callback, when non-nil, is invoked after each file.
func (a *Analyzer) AnalyzeDirectory(ctx context.Context, root string, progress func(done, total int, path string)) ([]*FileRecord, error) {
	files, _, err := a.ListFiles(ctx, root)
	if err != nil {
		return nil, err
	}

	records := make([]*FileRecord, 0, len(files))
	for i, path := range files {
		select {
		case <-ctx.Done():
			return records, ctx.Err()
		default:
		}

		rec, err := a.ClassifyFile(ctx, path)
		if err != nil && rec == nil {
			rec = &FileRecord{
				Path:   path,
				Result: classify.Failed("", err.Error()),
			}
		}
		records = append(records, rec)
		if progress != nil {
			progress(i+1, len(files), path)
		}
	}
	return records, nil
}

// categoryDirNames collects the localized folder names organization
// produces, so a re-run does not descend into its own output.
func (a *Analyzer) categoryDirNames() map[string]bool {
	dirs := make(map[string]bool)
	for category, subs := range classify.Subcategories {
		for _, sub := range subs {
			folder := a.cfg.CategoryFolder(string(category), sub)
			if top := topSegment(folder); top != "" {
				dirs[top] = true
			}
		}
	}
	return dirs
}

func topSegment(folder string) string {
	folder = filepath.ToSlash(folder)
	if i := strings.Index(folder, "/"); i >= 0 {
		return folder[:i]
	}
	return folder
}

// detectLanguage returns an ISO 639-1 hint for the prompt builder, or ""
// when the text is too short to call.
func detectLanguage(text string) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 20 {
		return ""
	}
	info := whatlanggo.Detect(trimmed)
	if !info.IsReliable() {
		return ""
	}
	return whatlanggo.LangToStringShort(info.Lang)
}
