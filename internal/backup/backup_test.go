package backup

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/qbank/internal/model"
)

func sample() []model.Question {
	return []model.Question{
		{ID: "1", ChapterID: 4, Title: "দ্বন্দ্ব তত্ত্ব", Kind: model.KindShort, AnswerBody: "<p>x</p>", Tags: []string{"marx"}, UpdatedAt: 1700000000000},
		{ID: "2", ChapterID: 2, Title: "Weber", Kind: model.KindEssay, AnswerBody: "<ul><li>a</li></ul>", Tags: []string{}, Bookmarked: true, UpdatedAt: 1700000000500},
	}
}

func TestExportShape(t *testing.T) {
	b, err := Export(sample(), map[int]string{1: "Custom Title"})
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Len(t, doc, 2)
	assert.JSONEq(t, `{"1":"Custom Title"}`, string(doc["chapters"]))
	assert.True(t, strings.HasPrefix(string(doc["questions"]), "["))
}

func TestExportEmpty(t *testing.T) {
	b, err := Export(nil, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"questions":[],"chapters":{}}`, string(b))
}

func TestExportImportRoundTrip(t *testing.T) {
	overrides := map[int]string{1: "One", 7: "Seven"}
	b, err := Export(sample(), overrides)
	require.NoError(t, err)

	got, err := Import(b)
	require.NoError(t, err)
	if diff := cmp.Diff(sample(), got.Questions); diff != "" {
		t.Errorf("questions mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, overrides, got.Chapters)
	assert.False(t, got.Legacy)
	assert.Zero(t, got.Skipped)
}

func TestFilename(t *testing.T) {
	ts := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("X", -2*3600))
	assert.Equal(t, "sociology_backup_2024-03-10.json", Filename(ts))
}

func TestImportLegacyArray(t *testing.T) {
	legacy := `[{"id":"a","chapterId":1,"title":"t1","type":"সংক্ষিপ্ত","answerHTML":"<p>1</p>","tags":[],"bookmarked":false,"updatedAt":1},
	            {"id":"b","chapterId":2,"title":"t2","type":"রচনামূলক","answerHTML":"<p>2</p>","tags":["x"],"bookmarked":true,"updatedAt":2}]`

	got, err := Import([]byte(legacy))
	require.NoError(t, err)
	assert.True(t, got.Legacy)
	assert.NotNil(t, got.Chapters)
	assert.Empty(t, got.Chapters)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, model.KindEssay, got.Questions[1].Kind)
	assert.Equal(t, "<p>2</p>", got.Questions[1].AnswerBody)
}

func TestImportEmptyIsNotAnError(t *testing.T) {
	for _, in := range []string{`[]`, `{"questions":[]}`, `{"questions":[],"chapters":{}}`} {
		got, err := Import([]byte(in))
		require.NoError(t, err, in)
		assert.Empty(t, got.Questions, in)
		assert.NotNil(t, got.Questions, in)
	}
}

func TestImportChaptersDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[int]string
	}{
		{"absent", `{"questions":[]}`, map[int]string{}},
		{"null", `{"questions":[],"chapters":null}`, map[int]string{}},
		{"array", `{"questions":[],"chapters":[1,2]}`, map[int]string{}},
		{"string", `{"questions":[],"chapters":"x"}`, map[int]string{}},
		{"mixed keys", `{"questions":[],"chapters":{"2":"Two","two":"x","3":5}}`, map[int]string{2: "Two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Import([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Chapters)
		})
	}
}

func TestImportMalformed(t *testing.T) {
	for _, in := range []string{"", "not json", `{"questions":[`, "\x00\x01"} {
		_, err := Import([]byte(in))
		assert.ErrorIs(t, err, ErrMalformed, "input %q", in)
	}
}

func TestImportUnrecognizedShape(t *testing.T) {
	for _, in := range []string{`{}`, `{"questions":{}}`, `{"questions":"x"}`, `{"questions":null}`, `42`, `"str"`, `null`, `true`} {
		_, err := Import([]byte(in))
		assert.ErrorIs(t, err, ErrUnrecognizedShape, "input %q", in)
		assert.False(t, errors.Is(err, ErrMalformed), "input %q", in)
	}
}

func TestImportSkipsNonQuestionElements(t *testing.T) {
	got, err := Import([]byte(`{"questions":[{"id":"a","title":"ok"},"item1",null,7]}`))
	require.NoError(t, err)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "a", got.Questions[0].ID)
	assert.Equal(t, 3, got.Skipped)

	err = got.Complete()
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Contains(t, err.Error(), "3 of 4 skipped")
}

func TestImportNoReadableEntries(t *testing.T) {
	for _, in := range []string{
		`["item1","item2"]`,
		`[null]`,
		`{"questions":[{"id":"x","chapterId":"1","title":"T"}]}`,
		`{"questions":[7,false]}`,
	} {
		_, err := Import([]byte(in))
		assert.ErrorIs(t, err, ErrUnrecognizedShape, "input %q", in)
	}
}

func TestCompleteWhenNothingSkipped(t *testing.T) {
	got, err := Import([]byte(`[{"id":"a"}]`))
	require.NoError(t, err)
	assert.NoError(t, got.Complete())
}

func TestImportReader(t *testing.T) {
	got, err := ImportReader(context.Background(), strings.NewReader(`[{"id":"a"}]`))
	require.NoError(t, err)
	assert.Len(t, got.Questions, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ImportReader(ctx, strings.NewReader(`[]`))
	assert.ErrorIs(t, err, context.Canceled)
}
