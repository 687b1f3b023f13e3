package mapping

import (
	oai "github.com/slsfi/arkiva-oai"
)

var (
	soundType = &Condition{Field: "DC2_type", Equals: "sound", Fold: true}
	textType  = &Condition{Field: "DC2_type", Equals: "text", Fold: true}
)

// dcTable builds the flat object mapping for the oai_dc and europeana
// prefixes. The two formats emit the same fields in the same order and
// differ only in element names: europeana uses the dcterms refinements
// and the europeana tail, oai_dc folds both back onto plain Dublin
// Core. Elements whose column is empty are left out.
func dcTable(prefix, accessBase string) *Table {
	eur := prefix == "europeana"

	langSv := []Attr{attr("xml:lang", "sv")}
	langEn := []Attr{attr("xml:lang", "en")}
	w3cdtf := []Attr{attr("xsi:type", "dcterms:W3CDTF")}
	uri := []Attr{attr("xsi:type", "dcterms:URI")}

	entries := []Entry{
		{Tag: "dc:title", Text: field("dc_title")},
		{Tag: "dc:type", Text: field("dc_type2"), Attrs: langSv},
		{Tag: "dc:type", Text: field("entity_label"), Attrs: langSv, When: soundType},
		{Tag: "dc:type", Text: field("dc_type2_eng"), Attrs: langEn},
		{Tag: "dc:subject", Text: field("dc_subject"), SplitOn: ", ", Attrs: langSv},
		{Tag: "dc:description", Text: field("dc_description"), Attrs: langSv},
		{Tag: "dc:description", Text: field("entity_label"), Attrs: langSv, When: textType},
		{Tag: "dc:source", Text: field("dc_source")},
	}

	relation := "dc:relation"
	if eur {
		entries = append(entries,
			Entry{Tag: "dcterms:isPartOf", Text: field("arkivetsNamn")},
			Entry{Tag: "dcterms:isPartOf", Text: field("c_signum")},
		)
	} else {
		entries = append(entries,
			Entry{Tag: relation, Text: field("arkivetsNamn")},
			Entry{Tag: relation, Text: field("c_signum")},
		)
	}

	spatial := "dc:coverage"
	if eur {
		spatial = "dcterms:spatial"
	}
	for _, column := range []string{"dcterms_spatial", "dcterms_spatial2", "dcterms_spatial3", "dcterms_spatial4"} {
		entries = append(entries, Entry{Tag: spatial, Text: field(column), SplitOn: ", ", Attrs: langSv})
	}

	created := "dc:date"
	referenced := relation
	formatOf := relation
	extent := "dc:format"
	medium := "dc:format"
	if eur {
		created = "dcterms:created"
		referenced = "dcterms:isReferencedBy"
		formatOf = "dcterms:isFormatOf"
		extent = "dcterms:extent"
		medium = "dcterms:medium"
	}
	entries = append(entries,
		Entry{Tag: created, Text: field("dcterms_created_maskinlasbart"), Attrs: w3cdtf},
		Entry{Tag: referenced, Text: field("dcterms_isReferencedBy")},
		Entry{Tag: formatOf, Text: field("dc_identifier")},
		Entry{Tag: extent, Text: &Source{FirstOf: []string{"dc_source_dimensions", "duration"}}},
		Entry{Tag: medium, Text: field("dc_source2")},
	)

	issued := "dc:date"
	if eur {
		issued = "dcterms:issued"
	}
	entries = append(entries,
		Entry{Tag: "dc:format", Text: field("filetype_MIME"), Attrs: []Attr{attr("xsi:type", "dcterms:IMT")}},
		Entry{Tag: "dc:creator", Text: field("dc_creator")},
		Entry{Tag: "dc:publisher", Text: &Source{Join: []string{"dc_publisher", "dc_publisher2"}}},
		Entry{Tag: "dc:rights", Text: field("dc_rights"), Attrs: langSv},
		Entry{Tag: issued, Text: field("DCterms_issued"), Attrs: w3cdtf},
		Entry{Tag: "dc:identifier", Text: field("identifier")},
		Entry{Tag: "dc:language", Text: field("dc_language"), Attrs: []Attr{attr("xsi:type", "dcterms:ISO639-2")}},
	)

	derivate := &Source{Field: "derivate_filepath", Prefix: accessBase}
	if eur {
		entries = append(entries,
			Entry{Tag: "europeana:object", Text: derivate},
			Entry{Tag: "europeana:provider", Text: constant("National Formula agreement")},
			Entry{Tag: "europeana:type", Text: field("ESE_type")},
			Entry{Tag: "europeana:rights", Text: field("europeanaRights")},
			Entry{Tag: "europeana:dataProvider", Text: constant("Svenska litteratursällskapet i Finland")},
			Entry{Tag: "europeana:isShownBy", Text: derivate},
			Entry{Tag: "europeana:isShownAt", Text: field("c_isReferencedBy_URL"), When: soundType},
		)
	} else {
		entries = append(entries,
			Entry{Tag: "dc:identifier", Text: derivate, Attrs: uri},
			Entry{Tag: "dc:publisher", Text: constant("National Formula agreement")},
			Entry{Tag: "dc:type", Text: field("ESE_type"), Attrs: []Attr{attr("xsi:type", "dcterms:DCMItype")}},
			Entry{Tag: "dc:rights", Text: field("europeanaRights")},
			Entry{Tag: "dc:publisher", Text: constant("Svenska litteratursällskapet i Finland")},
			Entry{Tag: "dc:identifier", Text: derivate, Attrs: uri},
			Entry{Tag: "dc:identifier", Text: field("c_isReferencedBy_URL"), Attrs: uri, When: soundType},
		)
	}

	container := "oai_dc:dc"
	format := oai.Format{
		Prefix:    "oai_dc",
		Schema:    "http://www.openarchives.org/OAI/2.0/oai_dc.xsd",
		Namespace: nsOAIDC,
	}
	if eur {
		container = "europeana:record"
		format = oai.Format{
			Prefix:    "europeana",
			Schema:    "http://www.europeana.eu/schemas/ese/ESE-V3.4.xsd",
			Namespace: nsEuropeana,
		}
	}

	return &Table{
		Format:   format,
		Header:   archiveHeader("identifier", "date_modified"),
		Metadata: []Entry{{Tag: container, Children: entries}},
	}
}
