// Package store provides whole-document persistence for the question bank.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/rcliao/qbank/internal/chapter"
	"github.com/rcliao/qbank/internal/model"
)

// Document keys.
const (
	KeyQuestions        = "questions"
	KeyChapterOverrides = "chapterOverrides"
)

// Backend is a key-value store holding whole JSON documents.
type Backend interface {
	// Get returns the value under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Put overwrites the value under key.
	Put(ctx context.Context, key, value string) error

	// Close releases the backend.
	Close() error
}

// Store reads and writes the questions document and the chapter override
// document. Reads never fail: anything unreadable degrades to empty.
type Store struct {
	backend Backend
	log     *zap.Logger
}

// New wraps a backend. A nil logger is replaced with a no-op logger.
func New(backend Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{backend: backend, log: log}
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// LoadQuestions returns the stored questions, or an empty slice when the
// document is missing or malformed.
func (s *Store) LoadQuestions(ctx context.Context) []model.Question {
	raw, ok := s.read(ctx, KeyQuestions)
	if !ok {
		return []model.Question{}
	}
	var qs []model.Question
	if err := json.Unmarshal([]byte(raw), &qs); err != nil {
		s.log.Warn("questions document unreadable, using empty collection",
			zap.String("key", KeyQuestions), zap.Error(err))
		return []model.Question{}
	}
	if qs == nil {
		qs = []model.Question{}
	}
	return qs
}

// SaveQuestions overwrites the questions document with the full collection.
func (s *Store) SaveQuestions(ctx context.Context, qs []model.Question) error {
	if qs == nil {
		qs = []model.Question{}
	}
	b, err := json.Marshal(qs)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	if err := s.backend.Put(ctx, KeyQuestions, string(b)); err != nil {
		return fmt.Errorf("write questions: %w", err)
	}
	s.log.Debug("questions saved", zap.Int("count", len(qs)))
	return nil
}

// LoadChapterOverrides returns the stored override map, or an empty map when
// the document is missing or malformed. Entries whose key is not an integer or
// whose value is not a string are dropped one by one.
func (s *Store) LoadChapterOverrides(ctx context.Context) map[int]string {
	out := map[int]string{}
	raw, ok := s.read(ctx, KeyChapterOverrides)
	if !ok {
		return out
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		s.log.Warn("chapter override document unreadable, using defaults",
			zap.String("key", KeyChapterOverrides), zap.Error(err))
		return out
	}
	for k, v := range m {
		id, err := strconv.Atoi(k)
		if err != nil {
			s.log.Debug("skipping non-numeric chapter key", zap.String("key", k))
			continue
		}
		var title string
		if err := json.Unmarshal(v, &title); err != nil {
			s.log.Debug("skipping non-string chapter title", zap.String("key", k))
			continue
		}
		out[id] = title
	}
	return out
}

// SaveChapterOverrides overwrites the override document wholesale.
func (s *Store) SaveChapterOverrides(ctx context.Context, overrides map[int]string) error {
	if overrides == nil {
		overrides = map[int]string{}
	}
	b, err := json.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("encode chapter overrides: %w", err)
	}
	if err := s.backend.Put(ctx, KeyChapterOverrides, string(b)); err != nil {
		return fmt.Errorf("write chapter overrides: %w", err)
	}
	return nil
}

// LoadChapters returns the fixed chapters with stored overrides applied.
func (s *Store) LoadChapters(ctx context.Context) []model.Chapter {
	return chapter.Resolve(s.LoadChapterOverrides(ctx))
}

func (s *Store) read(ctx context.Context, key string) (string, bool) {
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.log.Warn("document read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return raw, ok
}
