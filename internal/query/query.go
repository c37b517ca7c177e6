// Package query derives filtered views of an in-memory question collection.
// Every filter is pure and preserves input order.
package query

import (
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/rcliao/qbank/internal/model"
)

// Params combines the structural and text filters.
type Params struct {
	Text           string
	ChapterID      int // 0 means any chapter
	Kind           model.Kind
	BookmarkedOnly bool
	Limit          int // 0 means no limit
}

// Filter applies text, chapter, kind and bookmark filters in that order. The
// result has no spare capacity, so appending to it never writes into qs.
func Filter(qs []model.Question, p Params) []model.Question {
	out := ByText(qs, p.Text)
	if p.ChapterID != 0 {
		out = ByChapter(out, p.ChapterID)
	}
	if p.Kind != "" {
		out = ByKind(out, p.Kind)
	}
	if p.BookmarkedOnly {
		out = Bookmarked(out)
	}
	if p.Limit > 0 && len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return slices.Clip(out)
}

// ByText keeps questions whose title, raw answer markup or any tag contains
// q, ignoring case. An empty q returns qs itself.
func ByText(qs []model.Question, q string) []model.Question {
	if q == "" {
		return qs
	}
	needle := fold(q)
	return where(qs, func(x model.Question) bool {
		if strings.Contains(fold(x.Title), needle) || strings.Contains(fold(x.AnswerBody), needle) {
			return true
		}
		for _, tag := range x.Tags {
			if strings.Contains(fold(tag), needle) {
				return true
			}
		}
		return false
	})
}

// ByChapter keeps questions in the given chapter.
func ByChapter(qs []model.Question, chapterID int) []model.Question {
	return where(qs, func(x model.Question) bool { return x.ChapterID == chapterID })
}

// ByKind keeps questions of the given kind.
func ByKind(qs []model.Question, kind model.Kind) []model.Question {
	return where(qs, func(x model.Question) bool { return x.Kind == kind })
}

// Bookmarked keeps bookmarked questions.
func Bookmarked(qs []model.Question) []model.Question {
	return where(qs, func(x model.Question) bool { return x.Bookmarked })
}

// ByRecency returns a copy sorted by UpdatedAt, newest first. Ties keep
// their input order.
func ByRecency(qs []model.Question) []model.Question {
	out := make([]model.Question, len(qs))
	copy(out, qs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt > out[j].UpdatedAt
	})
	return out
}

func where(qs []model.Question, keep func(model.Question) bool) []model.Question {
	out := make([]model.Question, 0, len(qs))
	for _, x := range qs {
		if keep(x) {
			out = append(out, x)
		}
	}
	return out
}

// fold builds a new Caser per call; cases.Caser is stateful and not safe
// for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}
