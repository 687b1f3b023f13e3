package mapping

import (
	"testing"

	"github.com/beevik/etree"

	oai "github.com/slsfi/arkiva-oai"
)

func libraryDescriptor() LibraryDescriptor {
	return LibraryDescriptor{
		Identity: oai.Identity{
			Name:            "SLS bibliotek",
			AdminEmail:      "biblioteket@sls.fi",
			ProtocolVersion: "2.0",
			DeletedRecord:   "no",
			Granularity:     "YYYY-MM-DD",
		},
		Sets: []oai.Set{
			{Spec: "SLSfinna", Name: "SLS material till Finna"},
			{Spec: "SLSbib", Name: "SLS bibliotekskatalog"},
		},
		IDColumn:   "identifier",
		DateColumn: "date_modified",
		Namespaces: []oai.NS{{Prefix: "europeana", URI: nsEuropeana}},
		RecordMap: []Pair{
			{Column: "title", Tag: "dc:title"},
			{Column: "creator", Tag: "dc:creator"},
			{Column: "subject", Tag: "dc:subject"},
			{Column: "issued", Tag: "dcterms:issued"},
			{Column: "description", Tag: "dc:description"},
		},
	}
}

func TestLibraryCatalog(t *testing.T) {
	catalog := Library(libraryDescriptor())

	prefixes := catalog.Prefixes()
	if len(prefixes) != 1 || prefixes[0] != "oai_dc" {
		t.Fatalf("expected single oai_dc format got %v", prefixes)
	}
	if catalog.Table("qdc") != nil {
		t.Fatalf("expected nil table for unknown prefix")
	}

	table := catalog.Table("oai_dc")
	if table.Format.Schema != "http://dublincore.org/schemas/xmls/qdc/dcterms.xsd" {
		t.Fatalf("unexpected schema %q", table.Format.Schema)
	}
	if catalog.Envelope.SchemaLocation != table.Format.Schema {
		t.Fatalf("expected root schema location to match the format schema")
	}

	record := catalog.Envelope.Namespaces(oai.VerbListRecords)
	if record[len(record)-1].Prefix != "europeana" {
		t.Fatalf("expected descriptor namespaces appended")
	}
	base := catalog.Envelope.Namespaces(oai.VerbIdentify)
	if len(base) != 2 {
		t.Fatalf("expected slim namespaces outside record verbs got %d", len(base))
	}
}

func TestLibraryHeaderStampsAllSets(t *testing.T) {
	catalog := Library(libraryDescriptor())
	node := testNode(map[string]any{
		"identifier":    "lib-001",
		"date_modified": "2021-06-01",
		"title":         "Skärgårdsliv",
	})

	doc := etree.NewDocument()
	container := doc.CreateElement("ListRecords")
	RenderRecord(container, catalog.Table("oai_dc"), node, oai.VerbListRecords)

	if got := doc.FindElement("//record/header/identifier").Text(); got != "lib-001" {
		t.Fatalf("unexpected identifier %q", got)
	}
	if got := doc.FindElement("//record/header/datestamp").Text(); got != "2021-06-01" {
		t.Fatalf("unexpected datestamp %q", got)
	}
	specs := doc.FindElements("//record/header/setSpec")
	if len(specs) != 2 || specs[0].Text() != "SLSfinna" || specs[1].Text() != "SLSbib" {
		t.Fatalf("expected every configured set on the header")
	}
}

func TestLibraryRecordFollowsMap(t *testing.T) {
	catalog := Library(libraryDescriptor())
	node := testNode(map[string]any{
		"identifier":    "lib-001",
		"date_modified": "2021-06-01",
		"title":         "Skärgårdsliv",
		"creator":       "Andersson, Amos",
		"subject":       "skärgård, fiske, segling",
		"issued":        "1921",
	})

	doc := etree.NewDocument()
	container := doc.CreateElement("GetRecord")
	RenderRecord(container, catalog.Table("oai_dc"), node, oai.VerbGetRecord)

	dc := doc.FindElement("//record/metadata/oai_dc:dc")
	if dc == nil {
		t.Fatalf("expected oai_dc container")
	}
	kids := dc.ChildElements()
	want := []string{"title", "creator", "subject", "subject", "subject", "issued"}
	if len(kids) != len(want) {
		t.Fatalf("expected %d elements got %d", len(want), len(kids))
	}
	for i, k := range kids {
		if k.Tag != want[i] {
			t.Fatalf("element %d: expected %s got %s", i, want[i], k.Tag)
		}
	}
	if kids[2].Text() != "skärgård" || kids[4].Text() != "segling" {
		t.Fatalf("expected subject terms split on comma")
	}
	if kids[5].Space != "dcterms" {
		t.Fatalf("expected dcterms prefix on issued")
	}
}
