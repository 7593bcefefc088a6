// Package library holds the static component and design-pattern catalogs.
// Both catalogs are populated once at construction and read-only afterward.
package library

import "strings"

// Component is a reusable UI building block with a literal code snippet.
type Component struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Variants    []string `json:"variants"`
	Tags        []string `json:"tags"`
	Code        string   `json:"code"`
}

// ComponentLibrary is a keyed, insertion-ordered catalog of components.
type ComponentLibrary struct {
	entries map[string]Component
	order   []string
}

// NewComponentLibrary builds the catalog with its fixed set of entries.
func NewComponentLibrary() *ComponentLibrary {
	l := &ComponentLibrary{entries: make(map[string]Component)}

	l.add(Component{
		Name:        "button",
		Description: "Clickable action trigger with hover and focus states",
		Variants:    []string{"primary", "secondary", "ghost", "danger"},
		Tags:        []string{"input", "action"},
		Code: `<button class="btn btn-primary" type="button">
  Click me
</button>`,
	})

	l.add(Component{
		Name:        "form",
		Description: "Input form with labeled fields and inline validation",
		Variants:    []string{"stacked", "inline", "multi-step"},
		Tags:        []string{"input", "validation"},
		Code: `<form class="form">
  <label for="email">Email</label>
  <input id="email" type="email" required />
  <button type="submit">Submit</button>
</form>`,
	})

	l.add(Component{
		Name:        "card",
		Description: "Content container with optional header, body and footer",
		Variants:    []string{"elevated", "outlined", "interactive"},
		Tags:        []string{"layout", "content"},
		Code: `<div class="card">
  <div class="card-header">Title</div>
  <div class="card-body">Body copy</div>
</div>`,
	})

	l.add(Component{
		Name:        "navigation",
		Description: "Top-level site navigation with responsive collapse",
		Variants:    []string{"horizontal", "sidebar", "hamburger"},
		Tags:        []string{"layout", "navigation"},
		Code: `<nav class="nav">
  <a class="nav-link active" href="/">Home</a>
  <a class="nav-link" href="/about">About</a>
</nav>`,
	})

	return l
}

func (l *ComponentLibrary) add(c Component) {
	l.entries[c.Name] = c
	l.order = append(l.order, c.Name)
}

// Get returns the component for an exact key. A missing key is not an
// error; the second return reports presence.
func (l *ComponentLibrary) Get(name string) (Component, bool) {
	c, ok := l.entries[name]
	return c, ok
}

// All returns every component in insertion order.
func (l *ComponentLibrary) All() []Component {
	out := make([]Component, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.entries[name])
	}
	return out
}

// FindByCategory returns the components carrying the given tag,
// case-insensitively, in insertion order. Matching is on the structured
// Tags field rather than description wording.
func (l *ComponentLibrary) FindByCategory(category string) []Component {
	lowered := strings.ToLower(category)
	var out []Component
	for _, name := range l.order {
		c := l.entries[name]
		for _, tag := range c.Tags {
			if strings.ToLower(tag) == lowered {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
