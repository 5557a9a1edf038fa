// Package entity defines the translated and typed value records shared by all
// reference data and the validation helpers their builders compose.
package entity

import (
	"errors"
	"fmt"
)

// Language identifies a display language for translated names.
type Language string

const (
	// English is the default display language.
	English Language = "en"
	// German is the second bundled display language.
	German Language = "de"
)

// DefaultLanguage is the fallback used when a name has no entry for the
// requested language.
const DefaultLanguage = English

// Languages lists every language the bundled data is translated into,
// default first.
func Languages() []Language {
	return []Language{English, German}
}

// ErrNameNotFound is returned when neither the requested language nor the
// default language has a display name.
var ErrNameNotFound = errors.New("display name not found")

// Names maps a language to a display string.
type Names map[Language]string

// Resolve returns the name for lang, falling back to DefaultLanguage when the
// entry is missing or empty.
//
// Postcondition: Returns a non-empty string, or ErrNameNotFound.
func (n Names) Resolve(lang Language) (string, error) {
	if s := n[lang]; s != "" {
		return s, nil
	}
	if s := n[DefaultLanguage]; s != "" {
		return s, nil
	}
	return "", fmt.Errorf("%w: language %q", ErrNameNotFound, lang)
}

// Clone returns an independent copy of n.
func (n Names) Clone() Names {
	if n == nil {
		return nil
	}
	out := make(Names, len(n))
	for k, v := range n {
		out[k] = v
	}
	return out
}

// Translated is an entity with a stable key and per-language display names.
//
// Invariant: Key is non-empty and Names holds at least one non-empty entry.
type Translated struct {
	Key   string
	Names Names
}

// Name returns the display name for lang with default-language fallback.
func (t Translated) Name(lang Language) (string, error) {
	name, err := t.Names.Resolve(lang)
	if err != nil {
		return "", fmt.Errorf("%s: %w", t.Key, err)
	}
	return name, nil
}

// Clone returns a copy of t that shares no map with it.
func (t Translated) Clone() Translated {
	t.Names = t.Names.Clone()
	return t
}

// DisplayName returns the display name for lang, or the key when no name
// resolves.
func (t Translated) DisplayName(lang Language) string {
	if name, err := t.Name(lang); err == nil {
		return name
	}
	return t.Key
}

// Category is a categorical tag carried by a typed entity.
type Category interface {
	~string
	Valid() bool
}

// Typed is a translated entity tagged with a category.
//
// Invariant: Type is non-empty and Valid.
type Typed[C Category] struct {
	Translated
	Type C
}

// Clone returns a copy of t that shares no map with it.
func (t Typed[C]) Clone() Typed[C] {
	t.Translated = t.Translated.Clone()
	return t
}
