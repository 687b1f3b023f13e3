package mapping

import (
	oai "github.com/slsfi/arkiva-oai"
)

// Metadata namespaces used by the archive and library vocabularies.
const (
	nsOAIDC     = "http://www.openarchives.org/OAI/2.0/oai_dc/"
	nsEAD       = "http://www.loc.gov/ead"
	nsDC        = "http://purl.org/dc/elements/1.1/"
	nsDCTerms   = "http://purl.org/dc/terms/"
	nsEuropeana = "http://www.europeana.eu/schemas/ese/"
	nsXLink     = "http://www.w3.org/1999/xlink"
)

// Arkiva builds the catalog for the archive endpoint. Its three
// formats read the digitalObjects, intellectualEntities and samlingar
// join; accessBase is the URL prefix for derivate file links.
func Arkiva(accessBase string) *Catalog {
	return &Catalog{
		Identity: oai.Identity{
			Name:            "SLS/Arkiva",
			AdminEmail:      "is@sls.fi",
			ProtocolVersion: "2.0",
			DeletedRecord:   "persistent",
			Granularity:     "YYYY-MM-DD",
		},
		Sets: []oai.Set{
			{Spec: "SLSeuropeana", Name: "SLS material till Europeana"},
			{Spec: "SLSfinna", Name: "SLS material till Finna/NDB"},
		},
		Tables: []*Table{
			dcTable("oai_dc", accessBase),
			dcTable("europeana", accessBase),
			eadTable(),
		},
		Envelope: oai.Profile{
			SchemaLocation: oai.SchemaLocationOAI,
			Base: []oai.NS{
				{Prefix: "", URI: oai.NamespaceOAI},
				{Prefix: "xsi", URI: oai.NamespaceXSI},
			},
			Record: []oai.NS{
				{Prefix: "", URI: oai.NamespaceOAI},
				{Prefix: "oai_dc", URI: nsOAIDC},
				{Prefix: "ead", URI: nsEAD},
				{Prefix: "dc", URI: nsDC},
				{Prefix: "xsi", URI: oai.NamespaceXSI},
				{Prefix: "dcterms", URI: nsDCTerms},
				{Prefix: "europeana", URI: nsEuropeana},
				{Prefix: "xlink", URI: nsXLink},
			},
		},
	}
}

// archiveHeader is the shared record header: the harvesting sets are
// stamped from the export flags, and rows with status deleted get the
// status attribute in RenderRecord.
func archiveHeader(idField, dateField string) []Entry {
	return []Entry{
		{Tag: "identifier", Text: field(idField)},
		{Tag: "datestamp", Text: field(dateField)},
		{Tag: "setSpec", Text: constant("SLSeuropeana"), When: &Condition{Field: "to_europeana"}},
		{Tag: "setSpec", Text: constant("SLSfinna"), When: &Condition{Field: "to_ndb"}},
	}
}
