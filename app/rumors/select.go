package rumors

import (
	"cmp"
	"fmt"
	"slices"
)

const (
	WindowTop        = "top"
	WindowSkipNewest = "skip-newest"
)

// Window is the output slice policy: the first Size items, or the Size items after
// the newest one when SkipNewest is set.
type Window struct {
	Size       int
	SkipNewest bool
}

func ParseWindow(policy string, size int) (Window, error) {
	switch policy {
	case WindowTop, "":
		return Window{Size: size}, nil
	case WindowSkipNewest:
		return Window{Size: size, SkipNewest: true}, nil
	default:
		return Window{}, fmt.Errorf("unknown window policy: %s", policy)
	}
}

// Apply returns the windowed items; the result is never nil.
func (w Window) Apply(items []Item) []Item {
	start := 0
	if w.SkipNewest {
		start = 1
	}
	if start >= len(items) || w.Size <= 0 {
		return []Item{}
	}
	end := min(start+w.Size, len(items))
	return slices.Clone(items[start:end])
}

// Dedup keeps the first item for every (date, title prefix, url) key.
func Dedup(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	out := make([]Item, 0, len(items))
	for _, item := range items {
		key := dedupKey(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

func dedupKey(item Item) string {
	title := []rune(item.Title)
	if len(title) > TitleKeyLength {
		title = title[:TitleKeyLength]
	}
	return item.Date + "\x00" + string(title) + "\x00" + item.URL
}

// Rank sorts newest first. Dates are ISO strings, so an empty date sorts last.
// Items with equal dates keep their order.
func Rank(items []Item) []Item {
	ranked := slices.Clone(items)
	slices.SortStableFunc(ranked, func(a, b Item) int {
		return cmp.Compare(b.Date, a.Date)
	})
	return ranked
}

func Select(items []Item, w Window) []Item {
	return w.Apply(Rank(Dedup(items)))
}
