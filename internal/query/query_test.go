package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/rcliao/qbank/internal/model"
)

func fixtures() []model.Question {
	return []model.Question{
		{ID: "a", ChapterID: 4, Title: "দ্বন্দ্ব তত্ত্ব", Kind: model.KindShort, AnswerBody: "<p>Karl Marx</p>", Tags: []string{"class"}, UpdatedAt: 30},
		{ID: "b", ChapterID: 1, Title: "Nature of Theory", Kind: model.KindEssay, AnswerBody: "<strong>Positivism</strong>", Tags: []string{"Comte", "method"}, Bookmarked: true, UpdatedAt: 10},
		{ID: "c", ChapterID: 4, Title: "Coser on conflict", Kind: model.KindEssay, AnswerBody: "functions of conflict", Tags: nil, Bookmarked: true, UpdatedAt: 20},
		{ID: "d", ChapterID: 3, Title: "Parsons", Kind: model.KindShort, AnswerBody: "AGIL", Tags: []string{"দ্বন্দ্ব"}, UpdatedAt: 20},
	}
}

func ids(qs []model.Question) []string {
	out := []string{}
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}

func TestByTextEmptyIsIdentity(t *testing.T) {
	qs := fixtures()
	got := ByText(qs, "")
	if diff := cmp.Diff(qs, got); diff != "" {
		t.Fatalf("empty query changed result (-want +got):\n%s", diff)
	}
	if &got[0] != &qs[0] {
		t.Error("expected the input slice itself for an empty query")
	}
}

func TestByText(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"bengali title", "দ্বন্দ্ব", []string{"a", "d"}},
		{"title substring", "তত্ত্ব", []string{"a"}},
		{"case insensitive title", "nature OF", []string{"b"}},
		{"answer visible text", "marx", []string{"a"}},
		{"answer markup matched literally", "<strong>", []string{"b"}},
		{"tag", "COMTE", []string{"b"}},
		{"tag substring", "meth", []string{"b"}},
		{"shared word keeps order", "conflict", []string{"c"}},
		{"no match", "durkheim", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(ByText(fixtures(), tt.query)))
		})
	}
}

func TestStructuralFilters(t *testing.T) {
	qs := fixtures()
	assert.Equal(t, []string{"a", "c"}, ids(ByChapter(qs, 4)))
	assert.Equal(t, []string{}, ids(ByChapter(qs, 7)))
	assert.Equal(t, []string{"b", "c"}, ids(ByKind(qs, model.KindEssay)))
	assert.Equal(t, []string{"b", "c"}, ids(Bookmarked(qs)))
}

func TestFiltersDoNotMutateInput(t *testing.T) {
	qs := fixtures()
	_ = Filter(qs, Params{Text: "c", ChapterID: 4, Kind: model.KindEssay, BookmarkedOnly: true})
	_ = ByRecency(qs)
	if diff := cmp.Diff(fixtures(), qs); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestFilterResultAppendLeavesInputAlone(t *testing.T) {
	qs := fixtures()
	for _, p := range []Params{{Limit: 2}, {}, {Text: "a", Limit: 1}} {
		got := Filter(qs, p)
		_ = append(got, model.Question{ID: "intruder"})
		if diff := cmp.Diff(fixtures(), qs); diff != "" {
			t.Errorf("append through %+v wrote into input (-want +got):\n%s", p, diff)
		}
	}
}

func TestFilterComposition(t *testing.T) {
	qs := fixtures()
	assert.Equal(t, []string{"c"}, ids(Filter(qs, Params{Text: "conflict", ChapterID: 4})))
	assert.Equal(t, []string{"c"}, ids(Filter(qs, Params{ChapterID: 4, BookmarkedOnly: true})))
	assert.Equal(t, []string{"a", "d"}, ids(Filter(qs, Params{Kind: model.KindShort})))
	assert.Equal(t, []string{"a", "b"}, ids(Filter(qs, Params{Limit: 2})))
	assert.Equal(t, ids(qs), ids(Filter(qs, Params{})))
}

func TestByRecency(t *testing.T) {
	got := ByRecency(fixtures())
	assert.Equal(t, []string{"a", "c", "d", "b"}, ids(got))
}
