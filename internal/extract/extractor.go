/*
Copyright © 2025 changheonshin
*/

// Package extract reads file bytes and produces a bounded text sample for
// classification, resolving legacy encodings along the way.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
)

// DefaultMaxBytes caps how much of a file is read for sampling.
const DefaultMaxBytes = 1 << 20 // 1 MB

// nullProbeSize is how far into the sample the null-byte heuristic looks.
const nullProbeSize = 8000

// Sample is the result of extracting text from a file.
type Sample struct {
	Text     string
	Encoding string
	// Binary marks files that cannot be analyzed as text. Such files
	// must never be sent to the LLM gateway.
	Binary bool
	MIME   string
}

type candidate struct {
	name string
	enc  encoding.Encoding
}

// Extractor produces text samples from files.
type Extractor struct {
	fs       afero.Fs
	maxBytes int64

	// Tried in order; the first clean decode wins.
	candidates []candidate
}

// New creates an Extractor reading at most maxBytes per file.
func New(fs afero.Fs, maxBytes int64) *Extractor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Extractor{
		fs:       fs,
		maxBytes: maxBytes,
		candidates: []candidate{
			{name: "utf-8", enc: nil},
			{name: "euc-kr", enc: korean.EUCKR},
			{name: "shift-jis", enc: japanese.ShiftJIS},
		},
	}
}

// Extract reads up to the configured byte cap from path and decodes it
// with the first candidate encoding that succeeds. If every candidate
// fails, the bytes are decoded as UTF-8 with replacement characters so a
// non-empty file always yields some text. Binary files short-circuit to a
// Binary sample.
func (e *Extractor) Extract(path string) (*Sample, error) {
	f, err := e.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, e.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if len(data) == 0 {
		return &Sample{Text: "", Encoding: "utf-8", MIME: "text/plain"}, nil
	}

	mtype := mimetype.Detect(data)
	if isBinary(data, mtype) {
		return &Sample{Binary: true, MIME: mtype.String()}, nil
	}

	for _, c := range e.candidates {
		if c.enc == nil {
			if utf8.Valid(data) {
				return &Sample{Text: string(data), Encoding: c.name, MIME: mtype.String()}, nil
			}
			continue
		}
		decoded, decErr := c.enc.NewDecoder().Bytes(data)
		if decErr != nil || bytes.ContainsRune(decoded, utf8.RuneError) {
			continue
		}
		return &Sample{Text: string(decoded), Encoding: c.name, MIME: mtype.String()}, nil
	}

	// Last resort: lossy UTF-8 so the pipeline still gets text.
	return &Sample{
		Text:     strings.ToValidUTF8(string(data), string(utf8.RuneError)),
		Encoding: "utf-8-replace",
		MIME:     mtype.String(),
	}, nil
}

// isBinary combines MIME sniffing with a null-byte heuristic.
func isBinary(data []byte, mtype *mimetype.MIME) bool {
	probe := data
	if len(probe) > nullProbeSize {
		probe = probe[:nullProbeSize]
	}
	if bytes.IndexByte(probe, 0) >= 0 {
		return true
	}

	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return false
		}
	}
	// Sniffer found no textual ancestor; legacy multi-byte encodings
	// still land here, so defer to the decoders unless the content is
	// clearly non-text.
	return !looksDecodable(data)
}

// looksDecodable is a cheap pre-check for legacy encodings the sniffer
// does not recognize: mostly printable single bytes with a tail of
// high-bit multi-byte sequences.
func looksDecodable(data []byte) bool {
	control := 0
	for _, b := range data {
		if b < 0x09 || (b > 0x0d && b < 0x20) {
			control++
		}
	}
	return control*100 < len(data) // under 1% control bytes
}
