// Package i18n is the translation service: it resolves message keys to
// display strings for the active language.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/vampire/internal/game/entity"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds the messages of every loaded locale.
type Bundle struct {
	tags     []language.Tag
	matcher  language.Matcher
	catalog  *catalog.Builder
	messages map[entity.Language]map[string]string
}

// LoadEmbedded loads the locale files compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedLocales)
}

// LoadFromFS loads every locales/*.yaml file in fsys.
//
// Precondition: fsys must contain a file for entity.DefaultLanguage.
// Postcondition: Returns a Bundle whose default locale is entity.DefaultLanguage, or a non-nil error.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale files: %w", err)
	}
	sort.Strings(paths)

	defaultTag := language.Make(string(entity.DefaultLanguage))
	b := &Bundle{
		catalog:  catalog.NewBuilder(catalog.Fallback(defaultTag)),
		messages: make(map[entity.Language]map[string]string),
	}
	var others []language.Tag
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		var f localeFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", p, err)
		}
		if want := strings.TrimSuffix(path.Base(p), ".yaml"); f.Locale != want {
			return nil, fmt.Errorf("locale file %s: locale %q must match file name %q", p, f.Locale, want)
		}
		tag, err := language.Parse(f.Locale)
		if err != nil {
			return nil, fmt.Errorf("locale file %s: %w", p, err)
		}
		if len(f.Messages) == 0 {
			return nil, fmt.Errorf("locale file %s: no messages", p)
		}
		for key, msg := range f.Messages {
			if err := b.catalog.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("locale file %s: key %q: %w", p, key, err)
			}
		}
		b.messages[entity.Language(f.Locale)] = f.Messages
		if tag.String() == defaultTag.String() {
			b.tags = append([]language.Tag{tag}, b.tags...)
			continue
		}
		others = append(others, tag)
	}
	if _, ok := b.messages[entity.DefaultLanguage]; !ok {
		return nil, fmt.Errorf("default locale %q is not defined", entity.DefaultLanguage)
	}
	b.tags = append(b.tags, others...)
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Languages returns the loaded languages, default first.
func (b *Bundle) Languages() []entity.Language {
	out := make([]entity.Language, 0, len(b.tags))
	for _, t := range b.tags {
		out = append(out, entity.Language(t.String()))
	}
	return out
}

// Translator returns a translator for the loaded language closest to lang.
// Unknown or malformed values select the default language.
func (b *Bundle) Translator(lang string) *Translator {
	_, idx := language.MatchStrings(b.matcher, lang)
	tag := b.tags[idx]
	return &Translator{
		bundle:  b,
		lang:    entity.Language(tag.String()),
		printer: message.NewPrinter(tag, message.Catalog(b.catalog)),
	}
}

// Translator resolves message keys for one language.
type Translator struct {
	bundle  *Bundle
	lang    entity.Language
	printer *message.Printer
}

// Language returns the language this translator resolves to.
func (t *Translator) Language() entity.Language {
	return t.lang
}

// Lookup returns the raw message for key, falling back to the default
// language.
//
// Postcondition: ok is false iff neither language defines key.
func (t *Translator) Lookup(key string) (string, bool) {
	if msg, ok := t.bundle.messages[t.lang][key]; ok {
		return msg, true
	}
	msg, ok := t.bundle.messages[entity.DefaultLanguage][key]
	return msg, ok
}

// Text formats the message for key with args. An unknown key is returned
// unchanged.
func (t *Translator) Text(key string, args ...any) string {
	if _, ok := t.Lookup(key); !ok {
		return key
	}
	return t.printer.Sprintf(key, args...)
}

// Keyed is a plain data tag with a translated label.
type Keyed interface {
	TranslationKey() string
}

// Label returns the translated label of a tag.
func (t *Translator) Label(k Keyed) string {
	return t.Text(k.TranslationKey())
}
