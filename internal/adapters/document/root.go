// Package document models the root element whose class list stylesheets key
// off. The store mirrors dark mode onto it.
package document

import (
	"sort"
	"sync"

	"github.com/taskmaster/dashboard/internal/ports"
)

// DarkClass is the marker added while dark mode is on.
const DarkClass = "dark"

// Root is the document's root element class list.
type Root struct {
	mu      sync.RWMutex
	classes map[string]struct{}
}

var _ ports.ThemeApplier = (*Root)(nil)

func NewRoot() *Root {
	return &Root{classes: make(map[string]struct{})}
}

// ApplyTheme adds or removes DarkClass.
func (r *Root) ApplyTheme(dark bool) {
	if dark {
		r.Add(DarkClass)
	} else {
		r.Remove(DarkClass)
	}
}

func (r *Root) Add(class string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[class] = struct{}{}
}

func (r *Root) Remove(class string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.classes, class)
}

func (r *Root) Has(class string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.classes[class]
	return ok
}

// ClassList returns the classes in sorted order.
func (r *Root) ClassList() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.classes))
	for c := range r.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
