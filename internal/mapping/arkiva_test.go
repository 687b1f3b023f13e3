package mapping

import (
	"bytes"
	"testing"

	"github.com/beevik/etree"

	oai "github.com/slsfi/arkiva-oai"
)

func objectFields() map[string]any {
	return map[string]any{
		"identifier":                    "sls-obj-1",
		"date_modified":                 "2020-03-04",
		"to_europeana":                  "europeana",
		"to_ndb":                        nil,
		"dc_title":                      "Uppteckning om fiske",
		"dc_type2":                      "fotografi",
		"dc_type2_eng":                  "photograph",
		"DC2_type":                      "Sound",
		"entity_label":                  "Intervju med fiskare",
		"dc_subject":                    "fiske, jakt",
		"dc_description":                "Beskrivning av objektet",
		"dc_source":                     "SLS 38",
		"arkivetsNamn":                  "Korsnäs arkiv",
		"c_signum":                      "SLS 38",
		"dcterms_spatial":               "Korsnäs, Österbotten",
		"dcterms_created_maskinlasbart": "1932",
		"dcterms_isReferencedBy":        "Katalog X",
		"dc_identifier":                 "orig-1",
		"dc_source_dimensions":          "10 x 15 cm",
		"dc_source2":                    "papper",
		"filetype_MIME":                 "image/jpeg",
		"dc_creator":                    "Bengtsson, Niklas",
		"dc_publisher":                  "SLS",
		"dc_publisher2":                 "Arkivet",
		"dc_rights":                     "CC BY 4.0",
		"DCterms_issued":                "2012",
		"dc_language":                   "swe",
		"derivate_filepath":             "sls38/bild1.jpg",
		"ESE_type":                      "SOUND",
		"europeanaRights":               "http://creativecommons.org/licenses/by/4.0/",
		"c_isReferencedBy_URL":          "http://www.sls.fi/band1",
	}
}

func renderObject(t *testing.T, catalog *Catalog, prefix string, fields map[string]any) *etree.Document {
	t.Helper()
	table := catalog.Table(prefix)
	if table == nil {
		t.Fatalf("no table for prefix %s", prefix)
	}
	doc := etree.NewDocument()
	container := doc.CreateElement("GetRecord")
	RenderRecord(container, table, testNode(fields), oai.VerbGetRecord)
	return doc
}

func TestArkivaCatalog(t *testing.T) {
	catalog := Arkiva("http://access/")

	prefixes := catalog.Prefixes()
	want := []string{"oai_dc", "europeana", "ead"}
	if len(prefixes) != len(want) {
		t.Fatalf("expected %d prefixes got %d", len(want), len(prefixes))
	}
	for i := range want {
		if prefixes[i] != want[i] {
			t.Fatalf("expected prefix %s at %d got %s", want[i], i, prefixes[i])
		}
	}

	formats := catalog.Formats()
	if formats[2].Schema != "http://www.loc.gov/ead/ead.xsd" {
		t.Fatalf("unexpected ead schema %s", formats[2].Schema)
	}
	if catalog.Table("marc21") != nil {
		t.Fatalf("expected nil table for unknown prefix")
	}
}

func TestArchiveHeaderSets(t *testing.T) {
	catalog := Arkiva("http://access/")
	doc := renderObject(t, catalog, "oai_dc", objectFields())

	if got := doc.FindElement("//record/header/identifier").Text(); got != "sls-obj-1" {
		t.Fatalf("unexpected identifier %q", got)
	}
	if got := doc.FindElement("//record/header/datestamp").Text(); got != "2020-03-04" {
		t.Fatalf("unexpected datestamp %q", got)
	}

	specs := doc.FindElements("//record/header/setSpec")
	if len(specs) != 1 || specs[0].Text() != "SLSeuropeana" {
		t.Fatalf("expected only the europeana set to be stamped")
	}
}

func TestDublinCoreAndEuropeanaDiverge(t *testing.T) {
	catalog := Arkiva("http://access/")
	fields := objectFields()

	eur := renderObject(t, catalog, "europeana", fields)
	dc := renderObject(t, catalog, "oai_dc", fields)

	if eur.FindElement("//metadata/europeana:record") == nil {
		t.Fatalf("expected europeana:record container")
	}
	if dc.FindElement("//metadata/oai_dc:dc") == nil {
		t.Fatalf("expected oai_dc:dc container")
	}

	// The refinements flatten onto plain Dublin Core in oai_dc.
	if got := len(eur.FindElements("//europeana:record/dcterms:isPartOf")); got != 2 {
		t.Fatalf("expected 2 dcterms:isPartOf got %d", got)
	}
	if eur.FindElement("//europeana:record/dc:relation") != nil {
		t.Fatalf("expected no dc:relation in europeana")
	}
	relations := dc.FindElements("//oai_dc:dc/dc:relation")
	if len(relations) != 4 {
		t.Fatalf("expected 4 dc:relation got %d", len(relations))
	}
	if relations[0].Text() != "Korsnäs arkiv" || relations[1].Text() != "SLS 38" {
		t.Fatalf("unexpected relation texts %q %q", relations[0].Text(), relations[1].Text())
	}
	for _, el := range dc.FindElement("//oai_dc:dc").ChildElements() {
		if el.Space == "dcterms" || el.Space == "europeana" {
			t.Fatalf("unexpected %s:%s in oai_dc record", el.Space, el.Tag)
		}
	}

	// Derivate links carry the access base.
	object := eur.FindElement("//europeana:record/europeana:object")
	if object == nil || object.Text() != "http://access/sls38/bild1.jpg" {
		t.Fatalf("expected prefixed europeana:object")
	}
	ids := dc.FindElements("//oai_dc:dc/dc:identifier")
	if len(ids) != 4 {
		t.Fatalf("expected 4 dc:identifier got %d", len(ids))
	}
	if ids[1].Text() != "http://access/sls38/bild1.jpg" || ids[1].SelectAttrValue("xsi:type", "") != "dcterms:URI" {
		t.Fatalf("expected typed derivate identifier")
	}

	// Machine dates keep the W3CDTF type in both formats.
	created := eur.FindElement("//europeana:record/dcterms:created")
	if created == nil || created.SelectAttrValue("xsi:type", "") != "dcterms:W3CDTF" {
		t.Fatalf("expected typed dcterms:created")
	}
	if dc.FindElement("//oai_dc:dc/dcterms:created") != nil {
		t.Fatalf("expected created flattened to dc:date")
	}
}

func TestSoundObjectExtras(t *testing.T) {
	catalog := Arkiva("http://access/")

	fields := objectFields()
	eur := renderObject(t, catalog, "europeana", fields)
	shown := eur.FindElement("//europeana:record/europeana:isShownAt")
	if shown == nil || shown.Text() != "http://www.sls.fi/band1" {
		t.Fatalf("expected isShownAt for sound object")
	}
	types := eur.FindElements("//europeana:record/dc:type")
	if len(types) != 3 {
		t.Fatalf("expected entity label type for sound got %d types", len(types))
	}

	fields["DC2_type"] = "Text"
	eur = renderObject(t, catalog, "europeana", fields)
	if eur.FindElement("//europeana:record/europeana:isShownAt") != nil {
		t.Fatalf("expected no isShownAt for text object")
	}
	descriptions := eur.FindElements("//europeana:record/dc:description")
	if len(descriptions) != 2 {
		t.Fatalf("expected entity label description for text got %d", len(descriptions))
	}
}

func TestSubjectSplitting(t *testing.T) {
	catalog := Arkiva("http://access/")
	doc := renderObject(t, catalog, "oai_dc", objectFields())

	subjects := doc.FindElements("//oai_dc:dc/dc:subject")
	if len(subjects) != 2 {
		t.Fatalf("expected split subjects got %d", len(subjects))
	}
	if subjects[0].Text() != "fiske" || subjects[1].Text() != "jakt" {
		t.Fatalf("unexpected subject texts")
	}
	if subjects[0].SelectAttrValue("xml:lang", "") != "sv" {
		t.Fatalf("expected language attribute on each segment")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	catalog := Arkiva("http://access/")

	first, err := renderObject(t, catalog, "europeana", objectFields()).WriteToBytes()
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	second, err := renderObject(t, catalog, "europeana", objectFields()).WriteToBytes()
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical output for identical input")
	}
}
