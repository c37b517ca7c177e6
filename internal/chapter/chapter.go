// Package chapter holds the fixed chapter registry and the override merge.
package chapter

import "github.com/rcliao/qbank/internal/model"

var defaults = []model.Chapter{
	{ID: 1, Title: "অধ্যায় ১: সমাজতাত্ত্বিক তত্ত্বের প্রকৃতি"},
	{ID: 2, Title: "অধ্যায় ২: ধ্রুপদী সমাজতাত্ত্বিক ঐতিহ্য"},
	{ID: 3, Title: "অধ্যায় ৩: গঠনমূলক ক্রিয়াবাদ"},
	{ID: 4, Title: "অধ্যায় ৪: দ্বন্দ্ব তত্ত্ব"},
	{ID: 5, Title: "অধ্যায় ৫: প্রতীকী মিথস্ক্রিয়াবাদ"},
	{ID: 6, Title: "অধ্যায় ৬: উত্তর-আধুনিক সমাজতত্ত্ব"},
	{ID: 7, Title: "অধ্যায় ৭: সমসাময়িক তত্ত্বের প্রবণতা"},
}

// Defaults returns a copy of the fixed chapter list in registry order.
func Defaults() []model.Chapter {
	out := make([]model.Chapter, len(defaults))
	copy(out, defaults)
	return out
}

// Resolve merges overrides onto the defaults. Order is always the registry
// order; an empty override falls back to the default title.
func Resolve(overrides map[int]string) []model.Chapter {
	out := Defaults()
	for i, ch := range out {
		if title := overrides[ch.ID]; title != "" {
			out[i].Title = title
		}
	}
	return out
}

// Valid reports whether id is a registered chapter.
func Valid(id int) bool {
	for _, ch := range defaults {
		if ch.ID == id {
			return true
		}
	}
	return false
}

// Lookup finds a chapter by id in a resolved list.
func Lookup(chapters []model.Chapter, id int) (model.Chapter, bool) {
	for _, ch := range chapters {
		if ch.ID == id {
			return ch, true
		}
	}
	return model.Chapter{}, false
}

// FullOverrides returns an override entry for every chapter in the list,
// the starting point for a rename that must save the complete map.
func FullOverrides(chapters []model.Chapter) map[int]string {
	out := make(map[int]string, len(chapters))
	for _, ch := range chapters {
		out[ch.ID] = ch.Title
	}
	return out
}
