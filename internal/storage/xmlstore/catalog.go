// Package xmlstore loads the bundled reference data and reads and writes
// character files as schema-validated XML.
package xmlstore

import (
	"embed"
	"encoding/xml"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/vampire/internal/game/entity"
	"github.com/cory-johannsen/vampire/internal/game/ruleset"
)

//go:embed data/*.xml
var embeddedData embed.FS

type nameElement struct {
	Lang  string `xml:"lang,attr"`
	Value string `xml:",chardata"`
}

type typedElement struct {
	XMLName xml.Name
	Key     string        `xml:"key,attr"`
	Type    string        `xml:"type,attr"`
	Names   []nameElement `xml:"name"`
}

type translatedElement struct {
	XMLName xml.Name
	Key     string        `xml:"key,attr"`
	Names   []nameElement `xml:"name"`
}

type clanElement struct {
	XMLName    xml.Name
	Key        string        `xml:"key,attr"`
	Names      []nameElement `xml:"name"`
	Advantages []string      `xml:"advantage"`
	Weaknesses []string      `xml:"weakness"`
}

type generationElement struct {
	XMLName      xml.Name
	Value        int `xml:"value,attr"`
	MaxTrait     int `xml:"maxTrait,attr"`
	MaxBloodPool int `xml:"maxBloodPool,attr"`
	BloodPerTurn int `xml:"bloodPerTurn,attr"`
}

// listDocument is a reference data file: one root element holding a list of
// entries of a single element name.
type listDocument[T any] struct {
	XMLName xml.Name
	Items   []T `xml:",any"`
}

func names(elems []nameElement) entity.Names {
	out := make(entity.Names, len(elems))
	for _, n := range elems {
		out[entity.Language(n.Lang)] = n.Value
	}
	return out
}

// LoadEmbeddedCatalog loads the reference data compiled into the binary.
//
// Postcondition: Returns a catalog for which Check returns nil, or a non-nil error.
func LoadEmbeddedCatalog(logger *zap.Logger) (*ruleset.Catalog, error) {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		return nil, fmt.Errorf("opening embedded reference data: %w", err)
	}
	return LoadCatalog(sub, logger)
}

// LoadCatalogDir loads reference data from the XML files in dir.
//
// Precondition: dir must be a readable directory containing every reference data file.
// Postcondition: Returns a catalog for which Check returns nil, or a non-nil error.
func LoadCatalogDir(dir string, logger *zap.Logger) (*ruleset.Catalog, error) {
	return LoadCatalog(os.DirFS(dir), logger)
}

// LoadCatalog builds every reference entity in fsys through its builder and
// registers it in a new catalog. Any malformed file, invalid entry, duplicate
// key or dangling clan reference aborts the load.
//
// Precondition: fsys must contain generations.xml, attributes.xml,
// abilities.xml, advantages.xml, merits.xml, flaws.xml, roads.xml,
// weaknesses.xml and clans.xml at its root; logger must be non-nil.
// Postcondition: Returns a catalog for which Check returns nil, or a non-nil error.
func LoadCatalog(fsys fs.FS, logger *zap.Logger) (*ruleset.Catalog, error) {
	cat := ruleset.NewCatalog()
	steps := []func() error{
		func() error { return loadGenerations(fsys, cat) },
		func() error {
			return loadTyped(fsys, "attributes.xml", "attributes", "attribute", ruleset.NewAttributeBuilder, cat.RegisterAttribute)
		},
		func() error {
			return loadTyped(fsys, "abilities.xml", "abilities", "ability", ruleset.NewAbilityBuilder, cat.RegisterAbility)
		},
		func() error {
			return loadTyped(fsys, "advantages.xml", "advantages", "advantage", ruleset.NewAdvantageBuilder, cat.RegisterAdvantage)
		},
		func() error { return loadTyped(fsys, "merits.xml", "merits", "merit", ruleset.NewMeritBuilder, cat.RegisterMerit) },
		func() error { return loadTyped(fsys, "flaws.xml", "flaws", "flaw", ruleset.NewFlawBuilder, cat.RegisterFlaw) },
		func() error {
			return loadTranslated(fsys, "roads.xml", "roads", "road", func(e translatedElement) error {
				b := ruleset.NewRoadBuilder().WithKey(e.Key)
				for _, n := range e.Names {
					b.WithName(entity.Language(n.Lang), n.Value)
				}
				r, err := b.Build()
				if err != nil {
					return err
				}
				return cat.RegisterRoad(r)
			})
		},
		func() error {
			return loadTranslated(fsys, "weaknesses.xml", "weaknesses", "weakness", func(e translatedElement) error {
				b := ruleset.NewWeaknessBuilder().WithKey(e.Key)
				for _, n := range e.Names {
					b.WithName(entity.Language(n.Lang), n.Value)
				}
				w, err := b.Build()
				if err != nil {
					return err
				}
				return cat.RegisterWeakness(w)
			})
		},
		func() error { return loadClans(fsys, cat) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			logger.Error("loading reference data", zap.Error(err))
			return nil, err
		}
	}
	if err := cat.Check(); err != nil {
		logger.Error("checking reference data", zap.Error(err))
		return nil, fmt.Errorf("checking reference data: %w", err)
	}

	logger.Info("reference data loaded",
		zap.Int("generations", len(cat.Generations())),
		zap.Int("attributes", len(cat.Attributes())),
		zap.Int("abilities", len(cat.Abilities())),
		zap.Int("advantages", len(cat.Advantages())),
		zap.Int("merits", len(cat.Merits())),
		zap.Int("flaws", len(cat.Flaws())),
		zap.Int("roads", len(cat.Roads())),
		zap.Int("weaknesses", len(cat.Weaknesses())),
		zap.Int("clans", len(cat.Clans())),
	)
	return cat, nil
}

func decodeList[T any](fsys fs.FS, file, root string) ([]T, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	var doc listDocument[T]
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}
	if doc.XMLName.Local != root {
		return nil, fmt.Errorf("parsing %s: root element <%s>, want <%s>", file, doc.XMLName.Local, root)
	}
	return doc.Items, nil
}

// entryError wraps err with the file name and 1-based position of the entry.
func entryError(file string, i int, err error) error {
	return fmt.Errorf("%s: entry %d: %w", file, i+1, err)
}

func unexpectedEntry(file string, i int, got, want string) error {
	return fmt.Errorf("%s: entry %d: unexpected element <%s>, want <%s>", file, i+1, got, want)
}

func loadTyped[C entity.Category](
	fsys fs.FS,
	file, root, elem string,
	newBuilder func() *entity.TypedBuilder[C],
	register func(entity.Typed[C]) error,
) error {
	items, err := decodeList[typedElement](fsys, file, root)
	if err != nil {
		return err
	}
	for i, e := range items {
		if e.XMLName.Local != elem {
			return unexpectedEntry(file, i, e.XMLName.Local, elem)
		}
		v, err := newBuilder().WithKey(e.Key).WithType(C(e.Type)).WithNames(names(e.Names)).Build()
		if err != nil {
			return entryError(file, i, err)
		}
		if err := register(v); err != nil {
			return entryError(file, i, err)
		}
	}
	return nil
}

func loadTranslated(fsys fs.FS, file, root, elem string, add func(translatedElement) error) error {
	items, err := decodeList[translatedElement](fsys, file, root)
	if err != nil {
		return err
	}
	for i, e := range items {
		if e.XMLName.Local != elem {
			return unexpectedEntry(file, i, e.XMLName.Local, elem)
		}
		if err := add(e); err != nil {
			return entryError(file, i, err)
		}
	}
	return nil
}

func loadClans(fsys fs.FS, cat *ruleset.Catalog) error {
	const file = "clans.xml"
	items, err := decodeList[clanElement](fsys, file, "clans")
	if err != nil {
		return err
	}
	for i, e := range items {
		if e.XMLName.Local != "clan" {
			return unexpectedEntry(file, i, e.XMLName.Local, "clan")
		}
		b := ruleset.NewClanBuilder().
			WithKey(e.Key).
			WithAdvantages(e.Advantages...).
			WithWeaknesses(e.Weaknesses...)
		for _, n := range e.Names {
			b.WithName(entity.Language(n.Lang), n.Value)
		}
		cl, err := b.Build()
		if err != nil {
			return entryError(file, i, err)
		}
		if err := cat.RegisterClan(cl); err != nil {
			return entryError(file, i, err)
		}
	}
	return nil
}

func loadGenerations(fsys fs.FS, cat *ruleset.Catalog) error {
	const file = "generations.xml"
	items, err := decodeList[generationElement](fsys, file, "generations")
	if err != nil {
		return err
	}
	for i, e := range items {
		if e.XMLName.Local != "generation" {
			return unexpectedEntry(file, i, e.XMLName.Local, "generation")
		}
		g, err := ruleset.NewGenerationBuilder().
			WithValue(e.Value).
			WithMaxTrait(e.MaxTrait).
			WithMaxBloodPool(e.MaxBloodPool).
			WithBloodPerTurn(e.BloodPerTurn).
			Build()
		if err != nil {
			return entryError(file, i, err)
		}
		if err := cat.RegisterGeneration(g); err != nil {
			return entryError(file, i, err)
		}
	}
	return nil
}
