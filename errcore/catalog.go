package errcore

import (
	"fmt"
	"regexp"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// CategorySize and MaxBuiltinCategories fix the code layout: a category's
// base code is cat_index * CategorySize, and UserCode is the first code
// past all builtin category slots.
const (
	CategorySize         = 100
	MaxBuiltinCategories = 10
	UserCode             = MaxBuiltinCategories * CategorySize
)

// getWordPattern matches a get-word template placeholder, e.g. ":arg1".
var getWordPattern = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)

// TemplatePart is one literal-or-placeholder segment of a Template.
type TemplatePart struct {
	Lit   string // literal text, set when Param == ""
	Param string // get-word name, set when this part is a placeholder
}

// Template is a message template: either a single string with no
// parameters, or an ordered sequence of literal/get-word parts. Arity is
// the number of get-word parts, and is also the number of variadic
// arguments MakeError must consume for this template.
type Template struct {
	Parts []TemplatePart
}

func ParseTemplate(s string) Template {
	idx := getWordPattern.FindAllStringSubmatchIndex(s, -1)
	if len(idx) == 0 {
		return Template{Parts: []TemplatePart{{Lit: s}}}
	}
	var parts []TemplatePart
	last := 0
	for _, m := range idx {
		start, end := m[0], m[1]
		if start > last {
			parts = append(parts, TemplatePart{Lit: s[last:start]})
		}
		parts = append(parts, TemplatePart{Param: s[m[2]:m[3]]})
		last = end
	}
	if last < len(s) {
		parts = append(parts, TemplatePart{Lit: s[last:]})
	}
	return Template{Parts: parts}
}

// Arity returns the number of named arguments this template requires.
func (t Template) Arity() int {
	n := 0
	for _, p := range t.Parts {
		if p.Param != "" {
			n++
		}
	}
	return n
}

// ArgNames returns the get-word names in template order.
func (t Template) ArgNames() []string {
	var names []string
	for _, p := range t.Parts {
		if p.Param != "" {
			names = append(names, p.Param)
		}
	}
	return names
}

// Render substitutes named arguments into the template for display.
func (t Template) Render(args map[string]string) string {
	var out []byte
	for _, p := range t.Parts {
		if p.Param == "" {
			out = append(out, p.Lit...)
		} else if v, ok := args[p.Param]; ok {
			out = append(out, v...)
		} else {
			out = append(out, ("(" + p.Param + ")")...)
		}
	}
	return string(out)
}

// Category is one namespace of related error ids: a base code (a multiple
// of CategorySize), a human-readable type string, and an ordered id list
// whose position determines each id's numeric code.
type Category struct {
	Name      string
	Code      int
	Type      string
	ids       []string
	templates map[string]Template
}

func (c *Category) IDs() []string { return c.ids }

func (c *Category) Template(id string) (Template, bool) {
	t, ok := c.templates[id]
	return t, ok
}

// IndexOf returns the 1-based position of id within the category, or 0 if
// absent.
func (c *Category) IndexOf(id string) int {
	for i, name := range c.ids {
		if name == id {
			return i + 1
		}
	}
	return 0
}

// Catalog is the process-wide, two-level error catalog: outer categories
// keyed by category word, built once at startup and thereafter effectively
// immutable except for Register.
type Catalog struct {
	mu         sync.RWMutex
	categories []*Category // index = cat_index; nil slots are unregistered
	byName     map[string]int
}

func NewCatalog() *Catalog {
	return &Catalog{
		categories: make([]*Category, MaxBuiltinCategories),
		byName:     make(map[string]int),
	}
}

// IDTemplate is one id→template pair, shared by the catalog data file
// schema and Register's CategoryTemplate input.
type IDTemplate struct {
	ID       string `toml:"id"`
	Template string `toml:"template"`
}

type fileCategory struct {
	Name string       `toml:"name"`
	Code int          `toml:"code"`
	Type string       `toml:"type"`
	IDs  []IDTemplate `toml:"ids"`
}

type fileCatalog struct {
	Categories []fileCategory `toml:"categories"`
}

// LoadCatalog decodes a catalog data file — a TOML document of categories,
// each an ordered list of id→template pairs — and builds
// the in-memory Catalog. Categories must occupy the position implied by
// their own Code (category at position N has Code == N*CategorySize);
// violations are rejected rather than silently accepted, since the rest of
// the core assumes that invariant holds without re-checking it.
func LoadCatalog(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("errcore: decode catalog: %w", err)
	}
	cat := NewCatalog()
	for pos, entry := range fc.Categories {
		if entry.Code != pos*CategorySize {
			return nil, fmt.Errorf("errcore: category %q at position %d must have code %d, got %d",
				entry.Name, pos, pos*CategorySize, entry.Code)
		}
		if pos >= MaxBuiltinCategories {
			return nil, fmt.Errorf("errcore: category %q exceeds MaxBuiltinCategories", entry.Name)
		}
		c := &Category{
			Name:      entry.Name,
			Code:      entry.Code,
			Type:      entry.Type,
			templates: make(map[string]Template, len(entry.IDs)),
		}
		for _, id := range entry.IDs {
			c.ids = append(c.ids, id.ID)
			c.templates[id.ID] = ParseTemplate(id.Template)
		}
		cat.categories[pos] = c
		cat.byName[entry.Name] = pos
	}
	return cat, nil
}

// Lookup decomposes code into a category index and slot index, then
// resolves the id at that slot.
func (cat *Catalog) Lookup(code int) (category, id string, tmpl Template, ok bool) {
	cat.mu.RLock()
	defer cat.mu.RUnlock()

	if code < 0 {
		return "", "", Template{}, false
	}
	catIndex := code / CategorySize
	slotIndex := code % CategorySize
	if catIndex >= len(cat.categories) {
		return "", "", Template{}, false
	}
	c := cat.categories[catIndex]
	if c == nil {
		return "", "", Template{}, false
	}
	if c.Code != catIndex*CategorySize {
		panic(fmt.Sprintf("errcore: catalog corrupt: category %q base %d does not match index %d", c.Name, c.Code, catIndex))
	}
	// The i-th id (1-based) has code == category.Code + i - 1, so
	// slotIndex (0-based) indexes directly into the ordered id list.
	if slotIndex < 0 || slotIndex >= len(c.ids) {
		return "", "", Template{}, false
	}
	id = c.ids[slotIndex]
	tmpl, ok = c.templates[id]
	if !ok {
		panic(fmt.Sprintf("errcore: catalog corrupt: category %q missing template for id %q", c.Name, id))
	}
	return c.Name, id, tmpl, true
}

// CodeFor is the converse of Lookup: given a category name and id word,
// returns the numeric code, or ok=false if either is unregistered.
func (cat *Catalog) CodeFor(category, id string) (code int, ok bool) {
	cat.mu.RLock()
	defer cat.mu.RUnlock()

	idx, ok := cat.byName[category]
	if !ok {
		return 0, false
	}
	c := cat.categories[idx]
	pos := c.IndexOf(id)
	if pos == 0 {
		return 0, false
	}
	return c.Code + pos - 1, true
}

func (cat *Catalog) Category(name string) (*Category, bool) {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	idx, ok := cat.byName[name]
	if !ok {
		return nil, false
	}
	return cat.categories[idx], true
}

// CategoryTemplate describes a new extension category for Register.
type CategoryTemplate struct {
	Name string
	Type string
	IDs  []IDTemplate
}

// Register appends a new category at the next free builtin slot, returning
// its base code. Running out of category slots is itself an error
// (out-of-error-numbers), surfaced here as a Go error rather than a fail
// since registration happens at startup, outside any installed handler.
func (cat *Catalog) Register(tmpl CategoryTemplate) (base int, err error) {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if _, exists := cat.byName[tmpl.Name]; exists {
		return 0, fmt.Errorf("errcore: category %q already registered", tmpl.Name)
	}
	pos := -1
	for i, c := range cat.categories {
		if c == nil {
			pos = i
			break
		}
	}
	if pos < 0 {
		return 0, fmt.Errorf("errcore: %w: no free category slots", ErrOutOfErrorNumbers)
	}
	c := &Category{
		Name:      tmpl.Name,
		Code:      pos * CategorySize,
		Type:      tmpl.Type,
		templates: make(map[string]Template, len(tmpl.IDs)),
	}
	for _, id := range tmpl.IDs {
		c.ids = append(c.ids, id.ID)
		c.templates[id.ID] = ParseTemplate(id.Template)
	}
	cat.categories[pos] = c
	cat.byName[tmpl.Name] = pos
	return c.Code, nil
}

// ErrOutOfErrorNumbers is wrapped into Register's error when every builtin
// category slot is occupied.
var ErrOutOfErrorNumbers = fmt.Errorf("out-of-error-numbers")
