// Package model defines the core question bank data types.
package model

import (
	"crypto/rand"
	"encoding/json"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Kind classifies a question as short-answer or essay.
type Kind string

// Stored kind values. Older backups use the same strings, so they import
// without translation.
const (
	KindShort Kind = "সংক্ষিপ্ত"
	KindEssay Kind = "রচনামূলক"
)

// ValidKinds are the allowed question kinds.
var ValidKinds = map[Kind]bool{
	KindShort: true,
	KindEssay: true,
}

// ParseKind accepts a stored kind value or one of the aliases "short" and "essay".
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.TrimSpace(s))
	switch strings.ToLower(string(k)) {
	case "short", "short-answer":
		k = KindShort
	case "essay":
		k = KindEssay
	}
	if !ValidKinds[k] {
		return "", false
	}
	return k, true
}

// Question is a single study item.
type Question struct {
	ID         string   `json:"id"`
	ChapterID  int      `json:"chapterId"`
	Title      string   `json:"title"`
	Kind       Kind     `json:"kind"`
	AnswerBody string   `json:"answerBody"`
	Tags       []string `json:"tags"`
	Bookmarked bool     `json:"bookmarked"`
	UpdatedAt  int64    `json:"updatedAt"` // unix millis
}

// questionAlias drops the methods so json can decode into it without recursion.
type questionAlias Question

// UnmarshalJSON decodes a question, also accepting the legacy field names
// "type" and "answerHTML" when the current names are absent.
func (q *Question) UnmarshalJSON(b []byte) error {
	var aux struct {
		questionAlias
		Type       *Kind   `json:"type"`
		AnswerHTML *string `json:"answerHTML"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*q = Question(aux.questionAlias)
	if q.Kind == "" && aux.Type != nil {
		q.Kind = *aux.Type
	}
	if q.AnswerBody == "" && aux.AnswerHTML != nil {
		q.AnswerBody = *aux.AnswerHTML
	}
	return nil
}

// Updated returns UpdatedAt as a time.
func (q Question) Updated() time.Time {
	return time.UnixMilli(q.UpdatedAt)
}

// Chapter is a named bucket for questions.
type Chapter struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// NewID returns a fresh question id.
func NewID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
