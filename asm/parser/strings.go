package parser

import "fmt"

// StringLabelPrefix prefixes the labels generated for interned strings.
const StringLabelPrefix = "__s"

type internEntry struct {
	Label string
	Text  string
}

// Interner deduplicates string literals. Labels are handed out in
// insertion order.
type Interner struct {
	byText  map[string]string
	entries []internEntry
}

func NewInterner() *Interner {
	return &Interner{byText: map[string]string{}}
}

// Intern returns the label for text, allocating a new one on first sight.
func (in *Interner) Intern(text string) string {
	if label, ok := in.byText[text]; ok {
		return label
	}
	label := fmt.Sprintf("%s%d", StringLabelPrefix, len(in.entries))
	in.byText[text] = label
	in.entries = append(in.entries, internEntry{Label: label, Text: text})
	return label
}

// Lookup returns the label of an already interned text.
func (in *Interner) Lookup(text string) (string, bool) {
	label, ok := in.byText[text]
	return label, ok
}

func (in *Interner) Len() int { return len(in.entries) }

// Each calls fn for every string in insertion order.
func (in *Interner) Each(fn func(label, text string)) {
	for _, elem := range in.entries {
		fn(elem.Label, elem.Text)
	}
}
