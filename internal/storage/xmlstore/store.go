package xmlstore

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/vampire/internal/config"
	"github.com/cory-johannsen/vampire/internal/game/character"
	"github.com/cory-johannsen/vampire/internal/game/ruleset"
)

// Extension is appended to every character file name that lacks it.
const Extension = ".xml"

// LoadError reports a character file that could not be read, parsed,
// validated or built.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("Could not load character %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store reads and writes character files.
type Store struct {
	cfg     config.Config
	catalog *ruleset.Catalog
	schema  *Schema
	logger  *zap.Logger
}

// NewStore creates a Store resolving file names against cfg and references
// against cat.
//
// Precondition: cat must be non-nil and fully loaded; logger must be non-nil.
// Postcondition: Returns a Store or a non-nil error if the bundled schema is invalid.
func NewStore(cfg config.Config, cat *ruleset.Catalog, logger *zap.Logger) (*Store, error) {
	schema, err := CharacterSchema()
	if err != nil {
		return nil, err
	}
	return &Store{cfg: cfg, catalog: cat, schema: schema, logger: logger}, nil
}

// WithExtension returns name with the character file extension enforced.
func WithExtension(name string) string {
	if strings.EqualFold(filepath.Ext(name), Extension) {
		return name
	}
	return name + Extension
}

// Save writes c to name, resolved against the save directory. Missing parent
// directories are created.
//
// Precondition: c must be non-nil.
// Postcondition: Returns the path written, or a non-nil error.
func (s *Store) Save(c *character.Character, name string) (string, error) {
	path := WithExtension(s.cfg.SavePath(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("saving character %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("saving character %s: %w", path, err)
	}
	if err := s.Encode(f, c); err != nil {
		f.Close()
		return "", fmt.Errorf("saving character %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("saving character %s: %w", path, err)
	}
	s.logger.Info("character saved", zap.String("path", path), zap.String("id", c.ID().String()))
	return path, nil
}

// Load reads the character file name, resolved against the open directory.
//
// Postcondition: Returns a valid Character, or a *LoadError naming the path.
func (s *Store) Load(name string) (*character.Character, error) {
	path := WithExtension(s.cfg.OpenPath(name))
	c, err := s.load(path)
	if err != nil {
		s.logger.Warn("loading character", zap.String("path", path), zap.Error(err))
		return nil, &LoadError{Path: path, Err: err}
	}
	s.logger.Info("character loaded", zap.String("path", path), zap.String("id", c.ID().String()))
	return c, nil
}

func (s *Store) load(path string) (*character.Character, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.Decode(f)
}

// Encode writes c as an indented XML document with a declaration.
//
// Precondition: c must be non-nil.
func (s *Store) Encode(w io.Writer, c *character.Character) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(toDocument(c)); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Decode validates the document in r against the character schema, resolves
// its references and builds the character.
//
// Postcondition: Returns a valid Character or a non-nil error.
func (s *Store) Decode(r io.Reader) (*character.Character, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err := s.schema.Validate(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	var doc characterDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return fromDocument(&doc, s.catalog)
}
