// Package bank owns the in-memory question bank and routes every mutation
// through the store's whole-document write path.
package bank

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/qbank/internal/backup"
	"github.com/rcliao/qbank/internal/chapter"
	"github.com/rcliao/qbank/internal/model"
	"github.com/rcliao/qbank/internal/query"
	"github.com/rcliao/qbank/internal/store"
)

var (
	ErrNotFound = errors.New("question not found")
	ErrEmpty    = errors.New("question bank is empty")
	ErrInvalid  = errors.New("invalid question")
)

// Draft is the editable part of a question.
type Draft struct {
	ChapterID  int
	Title      string
	Kind       model.Kind
	AnswerBody string
	Tags       []string
}

// Validate applies the editing-form rules: a title and a non-blank answer
// are required.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	body := strings.TrimSpace(d.AnswerBody)
	if body == "" || body == "<br>" {
		return fmt.Errorf("%w: answer is required", ErrInvalid)
	}
	return nil
}

// ParseTags splits comma-separated tag input, trimming and dropping blanks.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Option configures a Bank.
type Option func(*Bank)

// WithClock overrides the time source used for UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(b *Bank) { b.now = now }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(b *Bank) { b.log = log }
}

// Bank is the application state: the loaded collection, the override map
// and the resolved chapter list.
type Bank struct {
	store     *store.Store
	log       *zap.Logger
	now       func() time.Time
	questions []model.Question
	overrides map[int]string
	chapters  []model.Chapter
}

// Open loads both documents once.
func Open(ctx context.Context, s *store.Store, opts ...Option) *Bank {
	b := &Bank{store: s, log: zap.NewNop(), now: time.Now}
	for _, o := range opts {
		o(b)
	}
	b.questions = s.LoadQuestions(ctx)
	b.overrides = s.LoadChapterOverrides(ctx)
	b.chapters = chapter.Resolve(b.overrides)
	b.log.Debug("bank opened", zap.Int("questions", len(b.questions)), zap.Int("overrides", len(b.overrides)))
	return b
}

// Questions returns a copy of the collection in stored order.
func (b *Bank) Questions() []model.Question { return b.clone() }

// Chapters returns the resolved chapter list.
func (b *Bank) Chapters() []model.Chapter { return b.chapters }

// Overrides returns a copy of the chapter override map.
func (b *Bank) Overrides() map[int]string {
	out := make(map[int]string, len(b.overrides))
	for k, v := range b.overrides {
		out[k] = v
	}
	return out
}

// Filter runs the query engine over the collection.
func (b *Bank) Filter(p query.Params) []model.Question {
	return query.Filter(b.questions, p)
}

// AdminListing returns every question, most recently updated first.
func (b *Bank) AdminListing() []model.Question {
	return query.ByRecency(b.questions)
}

// Get returns the question with the given id.
func (b *Bank) Get(id string) (model.Question, error) {
	i := b.index(id)
	if i < 0 {
		return model.Question{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return b.questions[i], nil
}

// Create adds a new question built from d.
func (b *Bank) Create(ctx context.Context, d Draft) (model.Question, error) {
	if err := d.Validate(); err != nil {
		return model.Question{}, err
	}
	q := b.build(model.NewID(), d, false)
	next := append(b.clone(), q)
	if err := b.commit(ctx, next); err != nil {
		return model.Question{}, err
	}
	b.log.Info("question created", zap.String("id", q.ID), zap.Int("chapter", q.ChapterID))
	return q, nil
}

// Update replaces the question's editable fields, keeping its id, position
// and bookmark flag.
func (b *Bank) Update(ctx context.Context, id string, d Draft) (model.Question, error) {
	i := b.index(id)
	if i < 0 {
		return model.Question{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := d.Validate(); err != nil {
		return model.Question{}, err
	}
	q := b.build(id, d, b.questions[i].Bookmarked)
	next := b.clone()
	next[i] = q
	if err := b.commit(ctx, next); err != nil {
		return model.Question{}, err
	}
	b.log.Info("question updated", zap.String("id", id))
	return q, nil
}

// Delete removes the question.
func (b *Bank) Delete(ctx context.Context, id string) error {
	i := b.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := make([]model.Question, 0, len(b.questions)-1)
	next = append(next, b.questions[:i]...)
	next = append(next, b.questions[i+1:]...)
	if err := b.commit(ctx, next); err != nil {
		return err
	}
	b.log.Info("question deleted", zap.String("id", id))
	return nil
}

// ToggleBookmark flips the bookmark flag. No other field changes.
func (b *Bank) ToggleBookmark(ctx context.Context, id string) (model.Question, error) {
	i := b.index(id)
	if i < 0 {
		return model.Question{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := b.clone()
	next[i].Bookmarked = !next[i].Bookmarked
	if err := b.commit(ctx, next); err != nil {
		return model.Question{}, err
	}
	return next[i], nil
}

// RenameChapters saves overrides as the complete override map and reloads
// the chapter list from storage.
func (b *Bank) RenameChapters(ctx context.Context, overrides map[int]string) error {
	if err := b.store.SaveChapterOverrides(ctx, overrides); err != nil {
		return err
	}
	b.overrides = b.store.LoadChapterOverrides(ctx)
	b.chapters = chapter.Resolve(b.overrides)
	b.log.Info("chapters renamed", zap.Int("overrides", len(b.overrides)))
	return nil
}

// Replace swaps the whole collection and override map for a backup's
// content. Later duplicates of an id are dropped. Returns the number of
// questions kept.
func (b *Bank) Replace(ctx context.Context, bk *backup.Backup) (int, error) {
	seen := make(map[string]bool, len(bk.Questions))
	next := make([]model.Question, 0, len(bk.Questions))
	for _, q := range bk.Questions {
		if seen[q.ID] {
			b.log.Warn("dropping duplicate question id from backup", zap.String("id", q.ID))
			continue
		}
		seen[q.ID] = true
		if q.Tags == nil {
			q.Tags = []string{}
		}
		next = append(next, q)
	}
	if err := b.commit(ctx, next); err != nil {
		return 0, err
	}
	if err := b.RenameChapters(ctx, bk.Chapters); err != nil {
		return len(next), err
	}
	return len(next), nil
}

// Export encodes the collection and the raw override map.
func (b *Bank) Export() ([]byte, error) {
	return backup.Export(b.questions, b.overrides)
}

// Random picks a question uniformly.
func (b *Bank) Random(rng *rand.Rand) (model.Question, error) {
	if len(b.questions) == 0 {
		return model.Question{}, ErrEmpty
	}
	return b.questions[rng.Intn(len(b.questions))], nil
}

func (b *Bank) build(id string, d Draft, bookmarked bool) model.Question {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return model.Question{
		ID:         id,
		ChapterID:  d.ChapterID,
		Title:      d.Title,
		Kind:       d.Kind,
		AnswerBody: d.AnswerBody,
		Tags:       tags,
		Bookmarked: bookmarked,
		UpdatedAt:  b.now().UnixMilli(),
	}
}

func (b *Bank) index(id string) int {
	for i, q := range b.questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

func (b *Bank) clone() []model.Question {
	out := make([]model.Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// commit persists next and only then makes it the in-memory state.
func (b *Bank) commit(ctx context.Context, next []model.Question) error {
	if err := b.store.SaveQuestions(ctx, next); err != nil {
		return err
	}
	b.questions = next
	return nil
}
