package mapping

import (
	"strings"

	oai "github.com/slsfi/arkiva-oai"
)

// Pair associates one database column with one prefixed element name.
type Pair struct {
	Column string
	Tag    string
}

// LibraryDescriptor configures the library endpoint. Unlike the
// archive, everything here comes from configuration: the backing
// table, the repository identity and the column-to-element map.
type LibraryDescriptor struct {
	Identity   oai.Identity
	Sets       []oai.Set
	IDColumn   string
	DateColumn string
	// Namespaces adds record-verb declarations beyond the standard
	// Dublin Core set, for record maps that reach into them.
	Namespaces []oai.NS
	// RecordMap emits one element per pair, in order. A subject
	// element is split on ", " into one element per term.
	RecordMap []Pair
}

// Library builds a catalog from the descriptor. The sets are nominal:
// they never narrow a harvest, and every header carries all of them.
func Library(desc LibraryDescriptor) *Catalog {
	header := []Entry{
		{Tag: "identifier", Text: field(desc.IDColumn)},
		{Tag: "datestamp", Text: field(desc.DateColumn)},
	}
	for _, s := range desc.Sets {
		header = append(header, Entry{Tag: "setSpec", Text: constant(s.Spec)})
	}

	elements := make([]Entry, 0, len(desc.RecordMap))
	for _, p := range desc.RecordMap {
		e := Entry{Tag: p.Tag, Text: field(p.Column)}
		if localName(p.Tag) == "subject" {
			e.SplitOn = ", "
		}
		elements = append(elements, e)
	}

	record := []oai.NS{
		{Prefix: "", URI: oai.NamespaceOAI},
		{Prefix: "oai_dc", URI: nsOAIDC},
		{Prefix: "dc", URI: nsDC},
		{Prefix: "xsi", URI: oai.NamespaceXSI},
		{Prefix: "dcterms", URI: nsDCTerms},
	}
	record = append(record, desc.Namespaces...)

	return &Catalog{
		Identity: desc.Identity,
		Sets:     desc.Sets,
		Tables: []*Table{{
			Format: oai.Format{
				Prefix:    "oai_dc",
				Schema:    "http://dublincore.org/schemas/xmls/qdc/dcterms.xsd",
				Namespace: nsDCTerms,
			},
			Header:   header,
			Metadata: []Entry{{Tag: "oai_dc:dc", Children: elements}},
		}},
		Envelope: oai.Profile{
			SchemaLocation: "http://dublincore.org/schemas/xmls/qdc/dcterms.xsd",
			Base: []oai.NS{
				{Prefix: "", URI: oai.NamespaceOAI},
				{Prefix: "xsi", URI: oai.NamespaceXSI},
			},
			Record: record,
		},
	}
}

func localName(tag string) string {
	if _, local, ok := strings.Cut(tag, ":"); ok {
		return local
	}
	return tag
}
