package library

import "strings"

// Pattern is a named design pattern with guidance and a code snippet.
type Pattern struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Variants    []string `json:"variants"`
	Code        string   `json:"code"`
}

// PatternLibrary is a keyed, insertion-ordered catalog of design patterns.
type PatternLibrary struct {
	entries map[string]Pattern
	order   []string
}

// NewPatternLibrary builds the catalog with its fixed set of entries.
func NewPatternLibrary() *PatternLibrary {
	l := &PatternLibrary{entries: make(map[string]Pattern)}

	l.add(Pattern{
		Name:        "responsive",
		Description: "Mobile-first layout that adapts across breakpoints",
		Variants:    []string{"fluid-grid", "breakpoint", "container-query"},
		Code: `.container {
  display: grid;
  grid-template-columns: repeat(auto-fit, minmax(240px, 1fr));
}`,
	})

	l.add(Pattern{
		Name:        "accessibility",
		Description: "Keyboard navigation, ARIA labeling and contrast compliance",
		Variants:    []string{"aria-live", "focus-trap", "skip-link"},
		Code: `<button aria-label="Close dialog" aria-expanded="false">
  <span aria-hidden="true">&times;</span>
</button>`,
	})

	l.add(Pattern{
		Name:        "performance",
		Description: "Lazy loading and code splitting for fast first paint",
		Variants:    []string{"lazy-image", "route-split", "prefetch"},
		Code: `<img loading="lazy" src="hero.webp" alt="Hero" />`,
	})

	return l
}

func (l *PatternLibrary) add(p Pattern) {
	l.entries[p.Name] = p
	l.order = append(l.order, p.Name)
}

// Get returns the pattern for an exact key; missing keys are not an error.
func (l *PatternLibrary) Get(name string) (Pattern, bool) {
	p, ok := l.entries[name]
	return p, ok
}

// All returns every pattern in insertion order.
func (l *PatternLibrary) All() []Pattern {
	out := make([]Pattern, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.entries[name])
	}
	return out
}

// Recommendations returns the patterns matching a free-text context. Each
// check targets a distinct pattern and runs in a fixed order, so the result
// carries no duplicates.
func (l *PatternLibrary) Recommendations(context string) []Pattern {
	lowered := strings.ToLower(context)
	var out []Pattern

	if strings.Contains(lowered, "mobile") {
		if p, ok := l.Get("responsive"); ok {
			out = append(out, p)
		}
	}
	if strings.Contains(lowered, "accessible") || strings.Contains(lowered, "accessibility") {
		if p, ok := l.Get("accessibility"); ok {
			out = append(out, p)
		}
	}
	if strings.Contains(lowered, "fast") || strings.Contains(lowered, "performance") {
		if p, ok := l.Get("performance"); ok {
			out = append(out, p)
		}
	}

	return out
}
