package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath         string         `json:"db_path,omitempty"`
	DBSizeBytes    int64          `json:"db_size_bytes,omitempty"`
	TotalQuestions int            `json:"total_questions"`
	Bookmarked     int            `json:"bookmarked"`
	Overrides      int            `json:"chapter_overrides"`
	Chapters       []ChapterStats `json:"chapters"`
	Kinds          map[string]int `json:"kinds"`
	Documents      []DocumentInfo `json:"documents,omitempty"`
}

// ChapterStats holds per-chapter counts.
type ChapterStats struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

type documentLister interface {
	Documents(ctx context.Context) ([]DocumentInfo, error)
}

// Stats returns question counts and, for file-backed stores, storage details.
// Questions pointing at unknown chapters are counted in the total only.
func (s *Store) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath, Kinds: map[string]int{}}

	if dbPath != "" {
		if info, err := os.Stat(dbPath); err == nil {
			st.DBSizeBytes = info.Size()
		}
	}

	qs := s.LoadQuestions(ctx)
	st.TotalQuestions = len(qs)
	st.Overrides = len(s.LoadChapterOverrides(ctx))

	perChapter := map[int]int{}
	for _, q := range qs {
		perChapter[q.ChapterID]++
		st.Kinds[string(q.Kind)]++
		if q.Bookmarked {
			st.Bookmarked++
		}
	}
	for _, ch := range s.LoadChapters(ctx) {
		st.Chapters = append(st.Chapters, ChapterStats{ID: ch.ID, Title: ch.Title, Count: perChapter[ch.ID]})
	}

	if dl, ok := s.backend.(documentLister); ok {
		docs, err := dl.Documents(ctx)
		if err != nil {
			return st, err
		}
		st.Documents = docs
	}
	return st, nil
}
