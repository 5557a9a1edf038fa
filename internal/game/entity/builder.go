package entity

// TranslatedBuilder accumulates the fields of a Translated entity.
type TranslatedBuilder struct {
	entity string
	v      Translated
}

// NewTranslatedBuilder returns an empty builder. entity names the record kind
// in validation errors.
func NewTranslatedBuilder(entity string) *TranslatedBuilder {
	return &TranslatedBuilder{entity: entity, v: Translated{Names: Names{}}}
}

// TranslatedBuilderFrom returns a builder pre-populated from t.
func TranslatedBuilderFrom(entity string, t Translated) *TranslatedBuilder {
	b := NewTranslatedBuilder(entity)
	b.v.Key = t.Key
	b.v.Names = t.Names.Clone()
	if b.v.Names == nil {
		b.v.Names = Names{}
	}
	return b
}

// WithKey sets the key.
func (b *TranslatedBuilder) WithKey(key string) *TranslatedBuilder {
	b.v.Key = key
	return b
}

// WithName sets the display name for one language.
func (b *TranslatedBuilder) WithName(lang Language, name string) *TranslatedBuilder {
	b.v.Names[lang] = name
	return b
}

// WithNames replaces all display names.
func (b *TranslatedBuilder) WithNames(names Names) *TranslatedBuilder {
	b.v.Names = names.Clone()
	if b.v.Names == nil {
		b.v.Names = Names{}
	}
	return b
}

// Build validates and returns the entity.
//
// Postcondition: Returns a valid Translated or a *ValidationError.
func (b *TranslatedBuilder) Build() (Translated, error) {
	if err := CheckTranslated(b.entity, b.v); err != nil {
		return Translated{}, err
	}
	return Translated{Key: b.v.Key, Names: b.v.Names.Clone()}, nil
}

// TypedBuilder accumulates the fields of a Typed entity.
type TypedBuilder[C Category] struct {
	entity string
	v      Typed[C]
}

// NewTypedBuilder returns an empty builder.
func NewTypedBuilder[C Category](entity string) *TypedBuilder[C] {
	return &TypedBuilder[C]{entity: entity, v: Typed[C]{Translated: Translated{Names: Names{}}}}
}

// TypedBuilderFrom returns a builder pre-populated from t.
func TypedBuilderFrom[C Category](entity string, t Typed[C]) *TypedBuilder[C] {
	b := NewTypedBuilder[C](entity)
	b.v.Key = t.Key
	b.v.Type = t.Type
	b.WithNames(t.Names)
	return b
}

// WithKey sets the key.
func (b *TypedBuilder[C]) WithKey(key string) *TypedBuilder[C] {
	b.v.Key = key
	return b
}

// WithName sets the display name for one language.
func (b *TypedBuilder[C]) WithName(lang Language, name string) *TypedBuilder[C] {
	b.v.Names[lang] = name
	return b
}

// WithNames replaces all display names.
func (b *TypedBuilder[C]) WithNames(names Names) *TypedBuilder[C] {
	b.v.Names = names.Clone()
	if b.v.Names == nil {
		b.v.Names = Names{}
	}
	return b
}

// WithType sets the category.
func (b *TypedBuilder[C]) WithType(c C) *TypedBuilder[C] {
	b.v.Type = c
	return b
}

// Build validates and returns the entity.
//
// Postcondition: Returns a valid Typed or a *ValidationError.
func (b *TypedBuilder[C]) Build() (Typed[C], error) {
	if err := CheckTyped(b.entity, b.v); err != nil {
		return Typed[C]{}, err
	}
	out := b.v
	out.Names = b.v.Names.Clone()
	return out, nil
}
