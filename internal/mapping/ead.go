package mapping

import (
	oai "github.com/slsfi/arkiva-oai"
)

// Child relation names under a collection node. The repository hangs
// dependent rows on these keys and the EAD table walks them.
const (
	RelItems       = "items"
	RelPIDs        = "pids"
	RelObjects     = "objects"
	RelDerivatives = "derivatives"
)

// daolocRoles maps a derivate roleTitle onto the EAD role attribute.
// Unlisted titles get no role attribute.
var daolocRoles = map[string]string{
	"Kundkopia":       "image_full",
	"Thumbnail":       "image_thumbnail",
	"Databasbild":     "image_reference",
	"sound_reference": "sound_reference",
}

// eadTable builds the collection-level EAD mapping. A record is one
// samlingar row with its intellectualEntities as items, each carrying
// URN pids and digitalObjects with their derivate files.
func eadTable() *Table {
	return &Table{
		Format: oai.Format{
			Prefix:    "ead",
			Schema:    "http://www.loc.gov/ead/ead.xsd",
			Namespace: nsEAD,
		},
		Header: archiveHeader("c_signum", "date_modified"),
		Metadata: []Entry{{
			Tag:      "ead:ead",
			Children: []Entry{eadHeader(), archDesc()},
		}},
	}
}

func eadHeader() Entry {
	return Entry{
		Tag: "ead:eadheader",
		Attrs: []Attr{
			attr("langencoding", "iso639-2b"),
			attr("countryencoding", "iso3166-1"),
			attr("dateencoding", "iso8601"),
		},
		Children: []Entry{
			{Tag: "ead:eadid", Text: field("c_signum")},
			{Tag: "ead:filedesc", Children: []Entry{
				{Tag: "ead:titlestmt", Children: []Entry{
					{Tag: "ead:titleproper", Text: &Source{Field: "c_signum", Prefix: "Databaspost på huvudkatalognivå över "}},
				}},
				{Tag: "ead:publicationstmt", Children: []Entry{
					{Tag: "ead:publisher", Text: constant("Svenska litteratursällskapet i Finland")},
				}},
			}},
			{Tag: "ead:profiledesc", Children: []Entry{
				{Tag: "ead:creation", Text: constant("Beskrivningen tagen ur SLS arkivs databaser, huvudkatalognivån och objektnivån i Arkiva, och exporterat till ead xml.")},
				{Tag: "ead:langusage", Children: []Entry{
					{Tag: "ead:language", Text: constant("Svenska"), Attrs: []Attr{attr("langcode", "swe")}},
				}},
			}},
		},
	}
}

func archDesc() Entry {
	return Entry{
		Tag: "ead:archdesc",
		Attrs: []Attr{{
			Name: "level",
			Value: Source{
				Field:  "arkivetsTyp",
				Fold:   true,
				Lookup: map[string]string{"arkiv": "fonds", "samling": "collection"},
			},
			KeepEmpty: true,
		}},
		Children: []Entry{
			collectionDid(),
			{Tag: "ead:controlaccess", When: &Condition{Field: "c_listaPersonerRoll_webb"}, Children: []Entry{
				{Tag: "ead:head", Text: constant("author")},
				{Tag: "ead:persname", Text: field("c_listaPersonerRoll_webb"), SplitOn: "; ", Paren: &ParenPattern{Attr: "role"}},
			}},
			{Tag: "ead:controlaccess", When: &Condition{Field: "amnesord"}, Children: []Entry{
				{Tag: "ead:head", Text: constant("topic_facet")},
				{Tag: "ead:subject", Text: field("amnesord"), SplitOn: "; ", Paren: subjectParen()},
			}},
			{Tag: "ead:controlaccess", When: &Condition{Field: "c_listaPlatser"}, Children: []Entry{
				{Tag: "ead:head", Text: constant("geographic_facet")},
				{Tag: "ead:geogname", Text: field("c_listaPlatser"), SplitOn: ", "},
			}},
			{Tag: "ead:controlaccess", When: &Condition{Field: "c_listaPlatser_fin"}, Children: []Entry{
				{Tag: "ead:head", Text: constant("geographic_facet")},
				{Tag: "ead:geogname", Text: field("c_listaPlatser_fin"), SplitOn: ", "},
			}},
			{Tag: "ead:bioghist", When: &Condition{Field: "c_omArkivbildaren_webb"}, Children: []Entry{
				{Tag: "ead:p", Text: field("c_omArkivbildaren_webb"), SplitOn: ";"},
			}},
			{Tag: "ead:scopecontent", Children: []Entry{
				{Tag: "ead:head", Text: constant("description")},
				{Tag: "ead:p", Text: field("arkivetsInnehall")},
				{Tag: "ead:p", Text: field("anmarkningarExterna")},
				{Tag: "ead:p", Text: field("anmarkningarReferens")},
			}},
			{Tag: "ead:accessrestrict", When: &Condition{Field: "nyttjanderatt"}, Children: []Entry{
				{Tag: "ead:p", Text: field("nyttjanderatt"), SplitOn: ", "},
			}},
			{Tag: "ead:dsc", Attrs: []Attr{attr("type", "combined")}, Children: []Entry{itemEntry()}},
		},
	}
}

func collectionDid() Entry {
	return Entry{
		Tag: "ead:did",
		Children: []Entry{
			{Tag: "ead:head", Text: constant("Huvudkatalog")},
			{Tag: "ead:unittitle", Text: field("arkivetsNamn")},
			unitdate("c_tid_arkivetsInnehall", "c_tid_arkivetsInnehall_maskin", "gransar", "inclusive", "creation"),
			unitdate("c_tid_arkivetInsamlat", "c_tid_arkivetInsamlat_maskin", "insamlingsar", "bulk", "accumulation"),
			unitdate("c_tid_arkivetInlamnat", "c_tid_arkivetInlamnat_maskin", "inlämningsar", "bulk", "accumulation"),
			{Tag: "ead:unitid", Text: field("c_signum")},
			{Tag: "ead:origination", Text: field("projekt"), Attrs: []Attr{attr("ead:label", "collector")}},
			{Tag: "ead:physdesc", Attrs: []Attr{attr("label", "Extent")}, Children: []Entry{
				extent("omfattning_hyllmeter", " hyllmeter", "running_meters"),
				extent("omfattning_arkivenheter", " arkivenheter", "archival_units"),
				extent("omfattning_sidor", " sidor", "pages"),
				extent("omfattning_filmer", " filmer", "films"),
				extent("omfattning_fotografier", " fotografier", "photographs"),
				extent("omfattning_ljudband", " ljudband", "audio_tapes"),
				extent("omfattning_skisser", " skisser", "drawings"),
				extent("omfattning_kartor", " kartor", "maps"),
			}},
			{Tag: "ead:langmaterial", When: &Condition{Field: "sprak"}, Children: []Entry{
				{Tag: "ead:language", Text: field("sprak"), Attrs: []Attr{attr("langcode", "swe")}},
			}},
			{
				Tag: "ead:repository",
				Attrs: []Attr{{
					Name:      "label",
					Value:     Source{Field: "slsArkiv", Prefix: "Svenska litteratursällskapet i Finland, "},
					KeepEmpty: true,
				}},
				Children: []Entry{{Tag: "ead:corpname", Text: constant("SLS")}},
			},
			{Tag: "ead:physloc", Text: field("slsArkiv")},
			{Tag: "ead:physloc", Text: field("arkivetsPlacering")},
		},
	}
}

func itemEntry() Entry {
	return Entry{
		Tag:     "ead:c",
		ForEach: RelItems,
		Attrs:   []Attr{attr("level", "item")},
		Children: []Entry{
			itemDid(),
			{Tag: "ead:scopecontent", When: &Condition{Field: "dc_description"}, Children: []Entry{
				{Tag: "ead:head", Text: constant("description")},
				{Tag: "ead:p", Text: field("dc_description")},
				{Tag: "ead:p", Text: field("dcterms_isReferencedBy")},
			}},
			{Tag: "ead:userestrict", When: &Condition{Field: "dc_rights"}, Children: rightsParagraphs()},
			{Tag: "ead:accessrestrict", When: &Condition{Field: "dc_rights"}, Children: rightsParagraphs()},
			{Tag: "ead:controlaccess", When: &Condition{AnyOf: []string{"dc_type", "dc_type2"}}, Children: []Entry{
				{Tag: "ead:head", Text: constant("format")},
				{Tag: "ead:genreform", Text: field("dc_type"), SplitOn: ", "},
			}},
			{Tag: "ead:controlaccess", When: &Condition{Field: "dc_creator"}, Children: []Entry{
				{Tag: "ead:head", Text: constant("author")},
				{Tag: "ead:persname", Text: field("dc_creator"), SplitOn: "; ", Attrs: []Attr{attr("role", "creator")}},
			}},
			{Tag: "ead:controlaccess", When: &Condition{Field: "dc_subject"}, Children: []Entry{
				{Tag: "ead:head", Text: constant("topic_facet")},
				{Tag: "ead:subject", Text: field("dc_subject"), SplitOn: "; ", Paren: subjectParen()},
			}},
			{Tag: "ead:controlaccess", When: &Condition{Field: "dcterms_spatial_full"}, Children: []Entry{
				{Tag: "ead:head", Text: constant("geographic_facet")},
				{Tag: "ead:geogname", Text: field("dcterms_spatial_full"), SplitOn: ", ", Attrs: []Attr{attr("lang", "swe")}},
			}},
			{Tag: "ead:controlaccess", When: &Condition{Field: "dcterms_spatial_fin"}, Children: []Entry{
				{Tag: "ead:head", Text: constant("geographic_facet")},
				{Tag: "ead:geogname", Text: field("dcterms_spatial_fin"), SplitOn: ", ", Attrs: []Attr{attr("lang", "fin")}},
			}},
		},
	}
}

func itemDid() Entry {
	return Entry{
		Tag: "ead:did",
		Children: []Entry{
			{Tag: "ead:unittitle", Text: field("c_title")},
			{Tag: "ead:unitdate", Text: field("dcterms_created_maskinlasbart"), Attrs: []Attr{
				fieldAttr("normal", "dcterms_created_maskinlasbart"),
				attr("type", "bulk"),
				attr("datechar", "creation"),
			}},
			{Tag: "ead:unitid", Text: field("finna_unitid"), Attrs: []Attr{attr("label", "accession_number")}},
			{Tag: "ead:unitid", ForEach: RelPIDs, Text: field("URN"), Attrs: []Attr{attr("label", "PID")}},
			{Tag: "ead:dimensions", Text: field("dc_source_dimensions")},
			{Tag: "ead:physdesc", Text: field("dc_source2")},
			{Tag: "ead:langmaterial", When: &Condition{Field: "dc_language"}, Children: []Entry{
				{Tag: "ead:language", Text: field("dc_language")},
			}},
			{Tag: "ead:daogrp", ForEach: RelObjects, Children: []Entry{
				{Tag: "ead:daodesc", When: &Condition{Field: "entity_label"}, Children: []Entry{
					{Tag: "ead:p", Text: field("entity_label")},
				}},
				{Tag: "ead:daoloc", ForEach: RelDerivatives, Attrs: []Attr{
					{Name: "xlink:label", Value: Source{Field: "roleTitle"}, KeepEmpty: true},
					{Name: "role", Value: Source{Field: "roleTitle", Lookup: daolocRoles}},
					{Name: "xlink:href", Value: Source{Field: "filePath"}, KeepEmpty: true},
				}},
			}},
			{Tag: "ead:daogrp", When: &Condition{Field: "c_isReferencedBy_URL"}, Children: []Entry{
				{Tag: "ead:daodesc", Children: []Entry{
					{Tag: "ead:p", Text: field("c_isReferencedBy_URL")},
				}},
				{Tag: "ead:daoloc", Attrs: []Attr{
					attr("xlink:label", "context_www"),
					attr("role", "url"),
					fieldAttr("xlink:href", "c_isReferencedBy_URL"),
				}},
			}},
		},
	}
}

func rightsParagraphs() []Entry {
	ccBy := &Condition{Field: "dc_rights", Equals: "CC BY 4.0"}
	other := &Condition{Field: "dc_rights", NotEquals: "CC BY 4.0"}
	return []Entry{
		{Tag: "ead:p", Text: field("dc_rights"), When: ccBy, Children: []Entry{
			{Tag: "ead:extptr", Attrs: []Attr{attr("href", "https://creativecommons.org/licenses/by/4.0/")}},
		}},
		{Tag: "ead:p", Text: field("dc_rights"), When: other, Attrs: []Attr{attr("lang", "swe")}},
		{Tag: "ead:p", Text: field("rights_fin"), When: other, Attrs: []Attr{attr("lang", "fin")}},
		{Tag: "ead:p", Text: field("rights_eng"), When: other, Attrs: []Attr{attr("lang", "eng")}},
	}
}

func subjectParen() *ParenPattern {
	return &ParenPattern{
		Attr:     "href",
		Extra:    []Attr{attr("source", "YSO"), attr("lang", "swe")},
		Fallback: []Attr{attr("rules", "internal")},
	}
}

func unitdate(column, normalColumn, label, dateType, datechar string) Entry {
	return Entry{
		Tag:  "ead:unitdate",
		Text: field(column),
		Attrs: []Attr{
			{Name: "normal", Value: Source{Field: normalColumn}, KeepEmpty: true},
			attr("label", label),
			attr("type", dateType),
			attr("datechar", datechar),
		},
	}
}

func extent(column, suffix, unit string) Entry {
	return Entry{
		Tag:   "ead:extent",
		Text:  &Source{Field: column, Suffix: suffix},
		Attrs: []Attr{attr("unit", unit)},
	}
}
