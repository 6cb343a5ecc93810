// Package phrases loads phrase lists by language.
package phrases

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Supported language codes.
const (
	LangEN = "en"
	LangUA = "ua"
)

var (
	// ErrMissing reports that no phrase file exists for a language.
	ErrMissing = errors.New("phrase file missing")
	// ErrMalformed reports that a phrase file could not be parsed or holds no phrases.
	ErrMalformed = errors.New("phrase file malformed")
)

//go:embed data/*.json
var embedded embed.FS

// Source returns the phrases for a language code.
type Source interface {
	Phrases(ctx context.Context, lang string) ([]string, error)
}

// File is the on-disk and on-wire phrase list layout.
type File struct {
	Phrases []string `json:"phrases"`
}

// NormalizeLang maps any unrecognized language code to English.
func NormalizeLang(lang string) string {
	if strings.ToLower(strings.TrimSpace(lang)) == LangUA {
		return LangUA
	}
	return LangEN
}

// Parse decodes a phrase file, dropping blank entries.
func Parse(data []byte) ([]string, error) {
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	phrases := make([]string, 0, len(file.Phrases))
	for _, p := range file.Phrases {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		phrases = append(phrases, p)
	}
	if len(phrases) == 0 {
		return nil, fmt.Errorf("%w: no phrases", ErrMalformed)
	}
	return phrases, nil
}

// FSSource reads {lang}.json files from a filesystem.
type FSSource struct {
	FS fs.FS
}

// Embedded returns a source backed by the phrase lists compiled into the binary.
func Embedded() FSSource {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return FSSource{FS: sub}
}

// Dir returns a source that reads phrase files from dir.
func Dir(dir string) FSSource {
	return FSSource{FS: os.DirFS(dir)}
}

// Phrases implements Source.
func (s FSSource) Phrases(_ context.Context, lang string) ([]string, error) {
	lang = NormalizeLang(lang)
	data, err := fs.ReadFile(s.FS, lang+".json")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissing, lang)
		}
		return nil, fmt.Errorf("failed to read %s phrases: %w", lang, err)
	}
	return Parse(data)
}
