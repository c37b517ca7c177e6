// Package backup encodes and decodes the portable backup document.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rcliao/qbank/internal/model"
)

var (
	// ErrMalformed means the input is not valid JSON.
	ErrMalformed = errors.New("backup is not valid JSON")
	// ErrUnrecognizedShape means the input is JSON but neither a backup
	// object nor a legacy question array, or a question array with no
	// readable entry.
	ErrUnrecognizedShape = errors.New("backup has an unrecognized shape")
	// ErrIncomplete means some question entries were skipped while decoding.
	ErrIncomplete = errors.New("backup has unreadable question entries")
)

// Backup is the decoded content of a backup document.
type Backup struct {
	Questions []model.Question `json:"questions"`
	Chapters  map[int]string   `json:"chapters"`
	// Skipped counts array elements that could not be decoded as questions.
	Skipped int `json:"-"`
	// Legacy is set when the input was a bare question array.
	Legacy bool `json:"-"`
}

// Complete returns a wrapped ErrIncomplete when entries were skipped.
func (b *Backup) Complete() error {
	if b.Skipped == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d skipped", ErrIncomplete, b.Skipped, b.Skipped+len(b.Questions))
}

// Export produces the backup document for questions and the raw chapter
// override map.
func Export(questions []model.Question, overrides map[int]string) ([]byte, error) {
	doc := Backup{Questions: questions, Chapters: overrides}
	if doc.Questions == nil {
		doc.Questions = []model.Question{}
	}
	if doc.Chapters == nil {
		doc.Chapters = map[int]string{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Filename returns the conventional backup file name for t's UTC date.
func Filename(t time.Time) string {
	return "sociology_backup_" + t.UTC().Format("2006-01-02") + ".json"
}

// ImportReader reads r fully and decodes it. The read cannot be interrupted,
// but a context cancelled by the time it finishes discards the result.
func ImportReader(ctx context.Context, r io.Reader) (*Backup, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Import(data)
}

// Import decodes a backup document. It accepts {"questions": [...],
// "chapters": {...}} and the legacy bare question array.
func Import(data []byte) (*Backup, error) {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch probe.(type) {
	case []any:
		qs, skipped, err := decodeQuestions(data)
		if err != nil {
			return nil, err
		}
		return &Backup{Questions: qs, Chapters: map[int]string{}, Skipped: skipped, Legacy: true}, nil

	case map[string]any:
		var doc struct {
			Questions json.RawMessage `json:"questions"`
			Chapters  json.RawMessage `json:"chapters"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		trimmed := bytes.TrimSpace(doc.Questions)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			return nil, fmt.Errorf("%w: questions field missing or not an array", ErrUnrecognizedShape)
		}
		qs, skipped, err := decodeQuestions(trimmed)
		if err != nil {
			return nil, err
		}
		return &Backup{Questions: qs, Chapters: decodeChapters(doc.Chapters), Skipped: skipped}, nil
	}

	return nil, fmt.Errorf("%w: top-level value is neither an object nor an array", ErrUnrecognizedShape)
}

func decodeQuestions(data []byte) ([]model.Question, int, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	qs := make([]model.Question, 0, len(elems))
	skipped := 0
	for _, e := range elems {
		if bytes.Equal(bytes.TrimSpace(e), []byte("null")) {
			skipped++
			continue
		}
		var q model.Question
		if err := json.Unmarshal(e, &q); err != nil {
			skipped++
			continue
		}
		qs = append(qs, q)
	}
	if len(elems) > 0 && len(qs) == 0 {
		return nil, skipped, fmt.Errorf("%w: none of the %d question entries could be read", ErrUnrecognizedShape, len(elems))
	}
	return qs, skipped, nil
}

// decodeChapters keeps integer keys with string values; anything else yields
// an empty map.
func decodeChapters(raw json.RawMessage) map[int]string {
	out := map[int]string{}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return out
	}
	for k, v := range m {
		id, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		var title string
		if err := json.Unmarshal(v, &title); err != nil {
			continue
		}
		out[id] = title
	}
	return out
}
