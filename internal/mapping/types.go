// Package mapping turns database rows into OAI-PMH record XML. Each
// metadata format is a declarative table of entries, and one small
// interpreter walks the table against a row tree. Changing what a
// format emits means editing a table, not the walker.
package mapping

import (
	oai "github.com/slsfi/arkiva-oai"
)

// Source yields the text for an element or attribute from a record.
// Exactly one of Const, Field, FirstOf or Join should be set. A value
// that resolves empty suppresses whatever it feeds.
type Source struct {
	// Const is a fixed string, independent of the record.
	Const string
	// Field reads one column.
	Field string
	// FirstOf reads the first column that holds a value.
	FirstOf []string
	// Join concatenates the listed columns that hold values.
	Join []string
	// Sep joins the Join parts. Defaults to ", ".
	Sep string

	// Prefix and Suffix wrap a non-empty value.
	Prefix string
	Suffix string

	// Lookup maps the resolved value through a fixed table. A miss
	// resolves empty. Fold lowercases the value before the lookup.
	Lookup map[string]string
	Fold   bool
}

// Attr is one attribute on an emitted element. Attributes resolve
// against the same record as their element and are dropped when empty
// unless KeepEmpty is set.
type Attr struct {
	Name      string
	Value     Source
	KeepEmpty bool
}

// Condition gates an entry on the record. The zero Condition pointer
// passes. With only Field set it checks that the column holds a value,
// AnyOf checks several columns, Equals and NotEquals compare the
// column text, case-insensitively when Fold is set.
type Condition struct {
	Field     string
	AnyOf     []string
	Equals    string
	NotEquals string
	Fold      bool
}

// ParenPattern extracts a trailing parenthesis from each emitted
// segment, "Bengtsson, Niklas (author)" style. The parenthesized part
// becomes the Attr attribute and Extra attributes follow; segments
// without a parenthesis get the Fallback attributes instead.
type ParenPattern struct {
	Attr     string
	Extra    []Attr
	Fallback []Attr
}

// Entry emits zero or more elements for a record. An entry without a
// Text source is structural: it is emitted whenever its condition
// holds and only its children consult the record. An entry with a Text
// source is emitted once per segment and skipped when the source
// resolves empty.
type Entry struct {
	Tag string

	// When gates the entry. ForEach repeats it over the named child
	// rows instead of the current record.
	When    *Condition
	ForEach string

	Text *Source
	// SplitOn fans the text out into one element per segment.
	SplitOn string
	Paren   *ParenPattern

	Attrs    []Attr
	Children []Entry
}

// Table is the full recipe for one metadata format.
type Table struct {
	Format   oai.Format
	Header   []Entry
	Metadata []Entry
}

// Catalog bundles everything an endpoint serves: its identity, sets,
// format tables and envelope namespaces.
type Catalog struct {
	Identity oai.Identity
	Sets     []oai.Set
	Tables   []*Table
	Envelope oai.Profile
}

// Table returns the recipe for a metadata prefix, or nil.
func (c *Catalog) Table(prefix string) *Table {
	for _, t := range c.Tables {
		if t.Format.Prefix == prefix {
			return t
		}
	}
	return nil
}

// Prefixes lists the accepted metadataPrefix values in table order.
func (c *Catalog) Prefixes() []string {
	out := make([]string, 0, len(c.Tables))
	for _, t := range c.Tables {
		out = append(out, t.Format.Prefix)
	}
	return out
}

// Formats lists the advertised metadata formats in table order.
func (c *Catalog) Formats() []oai.Format {
	out := make([]oai.Format, 0, len(c.Tables))
	for _, t := range c.Tables {
		out = append(out, t.Format)
	}
	return out
}

func field(name string) *Source {
	return &Source{Field: name}
}

func constant(v string) *Source {
	return &Source{Const: v}
}

func attr(name, value string) Attr {
	return Attr{Name: name, Value: Source{Const: value}}
}

func fieldAttr(name, column string) Attr {
	return Attr{Name: name, Value: Source{Field: column}}
}
