/*
Copyright © 2025 changheonshin
*/

// Package rename performs filesystem-safe renames: it sanitizes suggested
// names, resolves conflicts with numeric suffixes and never loses the
// original file, even when the atomic rename has to fall back to
// copy-and-delete.
package rename

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"

	"github.com/devlikebear/parafile/internal/common"
)

const (
	// MaxNameBytes caps the sanitized base name, measured in bytes so
	// multi-byte scripts do not overshoot filesystem limits.
	MaxNameBytes = 100

	// maxConflictAttempts bounds the numeric-suffix search.
	maxConflictAttempts = 1000
)

// Result describes a completed rename.
type Result struct {
	NewPath string
	Note    string
}

// Renamer sanitizes suggested names and applies them safely.
type Renamer struct {
	fs afero.Fs
	// asciiFallback transliterates non-Latin names to ASCII when the
	// target filesystem cannot be trusted with them.
	asciiFallback bool
}

// New creates a Renamer on the given filesystem.
func New(fs afero.Fs, asciiFallback bool) *Renamer {
	return &Renamer{fs: fs, asciiFallback: asciiFallback}
}

var (
	illegalChars  = regexp.MustCompile(`[<>:"/\\|?*]`)
	hyphenRuns    = regexp.MustCompile(`-{2,}`)
	underscoreRun = regexp.MustCompile(`_{2,}`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Sanitize cleans a suggested name for filesystem use. The pipeline order
// is fixed: markdown stripping, illegal character removal, normalization
// (with optional transliteration), separator collapsing, byte-length
// truncation, separator trimming. Sanitize is idempotent.
func (r *Renamer) Sanitize(name string) string {
	s := strings.NewReplacer("**", "", "*", "", "__", "_", "`", "").Replace(name)

	s = illegalChars.ReplaceAllString(s, "")
	s = strings.Map(func(c rune) rune {
		if unicode.IsControl(c) {
			return -1
		}
		return c
	}, s)

	s = norm.NFC.String(s)
	if r.asciiFallback && !isASCII(s) {
		s = unidecode.Unidecode(s)
		s = illegalChars.ReplaceAllString(s, "")
	}

	s = whitespaceRun.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	s = underscoreRun.ReplaceAllString(s, "_")

	s = truncateBytes(s, MaxNameBytes)
	return strings.Trim(s, "-_.")
}

// Rename applies a suggested base name to the file at path, keeping the
// original extension. A target equal to the current name is a successful
// no-op; conflicting targets get an incrementing numeric suffix.
func (r *Renamer) Rename(path, suggestedName string) (*Result, error) {
	if _, err := r.fs.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: original file not found: %v", common.ErrFileOperation, err)
	}

	ext := filepath.Ext(path)
	base := r.Sanitize(stripExtension(suggestedName, ext))
	if base == "" {
		return nil, fmt.Errorf("%w: suggested name empty after sanitization", common.ErrFileOperation)
	}

	dir := filepath.Dir(path)
	newPath, err := r.resolveConflict(dir, base, ext, path)
	if err != nil {
		return nil, err
	}

	if newPath == path {
		return &Result{NewPath: path, Note: "file already has the suggested name"}, nil
	}

	if err := r.move(path, newPath); err != nil {
		return nil, err
	}
	return &Result{NewPath: newPath}, nil
}

// MoveTo moves a file into targetDir, creating it as needed and applying
// the same conflict-suffix discipline as Rename.
func (r *Renamer) MoveTo(path, targetDir string) (string, error) {
	if err := r.fs.MkdirAll(targetDir, 0o755); err != nil {
		return "", common.Retryable(fmt.Errorf("%w: failed to create target directory: %v", common.ErrFileOperation, err))
	}

	name := filepath.Base(path)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	newPath, err := r.resolveConflict(targetDir, base, ext, path)
	if err != nil {
		return "", err
	}
	if newPath == path {
		return path, nil
	}

	if err := r.move(path, newPath); err != nil {
		return "", err
	}
	return newPath, nil
}

// Move relocates a file to an exact destination path. Unlike MoveTo it
// never suffixes: an occupied destination is an error. Used to reverse
// and replay recorded operations.
func (r *Renamer) Move(src, dst string) error {
	if src == dst {
		return nil
	}
	exists, err := afero.Exists(r.fs, dst)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrFileOperation, err)
	}
	if exists {
		return fmt.Errorf("%w: destination already exists: %s", common.ErrFileOperation, dst)
	}
	if err := r.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return common.Retryable(fmt.Errorf("%w: %v", common.ErrFileOperation, err))
	}
	return r.move(src, dst)
}

// resolveConflict finds a free target path, appending -1, -2, ... until
// one is available. The source path itself never counts as a conflict.
func (r *Renamer) resolveConflict(dir, base, ext, sourcePath string) (string, error) {
	candidate := filepath.Join(dir, base+ext)
	for attempt := 1; ; attempt++ {
		exists, err := afero.Exists(r.fs, candidate)
		if err != nil {
			return "", fmt.Errorf("%w: %v", common.ErrFileOperation, err)
		}
		if !exists || candidate == sourcePath {
			return candidate, nil
		}
		if attempt > maxConflictAttempts {
			return "", fmt.Errorf("%w: could not generate unique filename after %d attempts",
				common.ErrFileOperation, maxConflictAttempts)
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%d%s", base, attempt, ext))
	}
}

// move renames atomically when possible and falls back to
// copy-verify-delete. On a failed verification the partial copy is
// removed, so the original file is never lost.
func (r *Renamer) move(src, dst string) error {
	if err := r.fs.Rename(src, dst); err == nil {
		return nil
	}

	if err := r.copyVerified(src, dst); err != nil {
		return err
	}
	if err := r.fs.Remove(src); err != nil {
		return common.Retryable(fmt.Errorf("%w: failed to remove source after copy: %v", common.ErrFileOperation, err))
	}
	return nil
}

func (r *Renamer) copyVerified(src, dst string) error {
	in, err := r.fs.Open(src)
	if err != nil {
		return common.Retryable(fmt.Errorf("%w: %v", common.ErrFileOperation, err))
	}
	defer in.Close()

	out, err := r.fs.Create(dst)
	if err != nil {
		return common.Retryable(fmt.Errorf("%w: %v", common.ErrFileOperation, err))
	}

	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr == nil {
		copyErr = closeErr
	}

	if copyErr == nil {
		srcInfo, err1 := r.fs.Stat(src)
		dstInfo, err2 := r.fs.Stat(dst)
		if err1 != nil || err2 != nil || srcInfo.Size() != dstInfo.Size() {
			copyErr = fmt.Errorf("copy verification failed")
		}
	}

	if copyErr != nil {
		_ = r.fs.Remove(dst)
		return common.Retryable(fmt.Errorf("%w: %v", common.ErrFileOperation, copyErr))
	}
	return nil
}

func stripExtension(name, ext string) string {
	if ext != "" && strings.EqualFold(filepath.Ext(name), ext) {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}

func isASCII(s string) bool {
	for _, c := range s {
		if c > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// truncateBytes cuts s to at most maxBytes bytes without splitting a rune.
func truncateBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
