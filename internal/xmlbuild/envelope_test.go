package xmlbuild

import (
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"

	oai "github.com/slsfi/arkiva-oai"
)

var testTime = time.Date(2024, 5, 9, 10, 11, 12, 0, time.UTC)

var testProfile = oai.Profile{
	SchemaLocation: oai.SchemaLocationOAI,
	Base: []oai.NS{
		{Prefix: "", URI: oai.NamespaceOAI},
		{Prefix: "xsi", URI: oai.NamespaceXSI},
	},
	Record: []oai.NS{
		{Prefix: "", URI: oai.NamespaceOAI},
		{Prefix: "dc", URI: "http://purl.org/dc/elements/1.1/"},
		{Prefix: "xsi", URI: oai.NamespaceXSI},
	},
}

func parse(t *testing.T, body []byte) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		t.Fatalf("response is not well-formed xml: %v", err)
	}
	return doc
}

func TestNewResponseRecordVerb(t *testing.T) {
	params := oai.RequestParams{
		Verb:           oai.VerbListRecords,
		MetadataPrefix: "oai_dc",
		From:           "2020-01-01",
		Set:            "SLSfinna",
	}
	resp := NewResponse(testProfile, "http://oai.sls.fi/oai", params, testTime)
	body, err := resp.Render()
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.HasPrefix(string(body), `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("expected xml declaration")
	}

	root := parse(t, body).Root()
	if root.Tag != "OAI-PMH" {
		t.Fatalf("unexpected root %q", root.Tag)
	}
	if root.SelectAttrValue("xmlns", "") != oai.NamespaceOAI {
		t.Fatalf("expected default protocol namespace")
	}
	if root.SelectAttrValue("xmlns:dc", "") != "http://purl.org/dc/elements/1.1/" {
		t.Fatalf("expected record namespaces declared on record verb")
	}
	if root.SelectAttrValue("xsi:schemaLocation", "") != oai.SchemaLocationOAI {
		t.Fatalf("expected schema location")
	}

	if got := root.FindElement("responseDate").Text(); got != "2024-05-09T10:11:12" {
		t.Fatalf("unexpected responseDate %q", got)
	}

	req := root.FindElement("request")
	if req.SelectAttrValue("verb", "") != "ListRecords" {
		t.Fatalf("expected verb attribute")
	}
	if req.SelectAttrValue("metadataPrefix", "") != "oai_dc" {
		t.Fatalf("expected metadataPrefix attribute")
	}
	if req.SelectAttrValue("from", "") != "2020-01-01" || req.SelectAttrValue("set", "") != "SLSfinna" {
		t.Fatalf("expected from and set attributes")
	}
	if req.SelectAttr("until") != nil || req.SelectAttr("identifier") != nil {
		t.Fatalf("expected absent parameters to stay off the request element")
	}
	if req.Text() != "http://oai.sls.fi/oai" {
		t.Fatalf("unexpected request text %q", req.Text())
	}

	container := root.FindElement("ListRecords")
	if container == nil || len(container.ChildElements()) != 0 {
		t.Fatalf("expected empty verb container")
	}
}

func TestNewResponseSlimVerb(t *testing.T) {
	resp := NewResponse(testProfile, "http://oai.sls.fi/oai", oai.RequestParams{Verb: oai.VerbIdentify}, testTime)
	body, err := resp.Render()
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	root := parse(t, body).Root()
	if root.SelectAttr("xmlns:dc") != nil {
		t.Fatalf("expected slim namespaces outside record verbs")
	}
	req := root.FindElement("request")
	if len(req.Attr) != 1 || req.Attr[0].Key != "verb" {
		t.Fatalf("expected only the verb attribute got %v", req.Attr)
	}
}

func TestNewResponseGetRecord(t *testing.T) {
	params := oai.RequestParams{
		Verb:           oai.VerbGetRecord,
		MetadataPrefix: "ead",
		Identifier:     "SLS 38",
	}
	resp := NewResponse(testProfile, "http://oai.sls.fi/oai", params, testTime)
	body, err := resp.Render()
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	req := parse(t, body).Root().FindElement("request")
	if req.SelectAttrValue("metadataPrefix", "") != "ead" {
		t.Fatalf("expected metadataPrefix attribute")
	}
	if req.SelectAttrValue("identifier", "") != "SLS 38" {
		t.Fatalf("expected identifier attribute")
	}
	if req.SelectAttr("from") != nil || req.SelectAttr("set") != nil {
		t.Fatalf("expected no range attributes on GetRecord")
	}
}

func TestAddIdentify(t *testing.T) {
	identity := oai.Identity{
		Name:            "SLS/Arkiva",
		AdminEmail:      "is@sls.fi",
		ProtocolVersion: "2.0",
		DeletedRecord:   "persistent",
		Granularity:     "YYYY-MM-DD",
	}
	resp := NewResponse(testProfile, "http://oai.sls.fi/oai", oai.RequestParams{Verb: oai.VerbIdentify}, testTime)
	resp.AddIdentify(identity, "http://oai.sls.fi/oai", time.Date(2005, 3, 1, 12, 0, 0, 0, time.UTC))
	body, err := resp.Render()
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	identify := parse(t, body).Root().FindElement("Identify")
	want := []string{
		"repositoryName", "baseURL", "protocolVersion", "adminEmail",
		"earliestDatestamp", "deletedRecord", "granularity",
	}
	kids := identify.ChildElements()
	if len(kids) != len(want) {
		t.Fatalf("expected %d elements got %d", len(want), len(kids))
	}
	for i, k := range kids {
		if k.Tag != want[i] {
			t.Fatalf("element %d: expected %s got %s", i, want[i], k.Tag)
		}
	}
	if got := identify.FindElement("earliestDatestamp").Text(); got != "2005-03-01" {
		t.Fatalf("unexpected earliest datestamp %q", got)
	}
}

func TestAddIdentifySkipsEmpty(t *testing.T) {
	identity := oai.Identity{Name: "SLS/Arkiva", ProtocolVersion: "2.0"}
	resp := NewResponse(testProfile, "http://oai.sls.fi/oai", oai.RequestParams{Verb: oai.VerbIdentify}, testTime)
	resp.AddIdentify(identity, "http://oai.sls.fi/oai", time.Time{})
	body, err := resp.Render()
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	identify := parse(t, body).Root().FindElement("Identify")
	if identify.FindElement("earliestDatestamp") != nil {
		t.Fatalf("expected no earliest datestamp for an empty store")
	}
	if identify.FindElement("adminEmail") != nil || identify.FindElement("granularity") != nil {
		t.Fatalf("expected empty identity fields left out")
	}
}

func TestAddSetsAndFormats(t *testing.T) {
	resp := NewResponse(testProfile, "http://oai.sls.fi/oai", oai.RequestParams{Verb: oai.VerbListSets}, testTime)
	resp.AddSets([]oai.Set{
		{Spec: "SLSeuropeana", Name: "SLS material till Europeana"},
		{Spec: "SLSfinna", Name: "SLS material till Finna"},
	})
	body, err := resp.Render()
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	sets := parse(t, body).Root().FindElements("ListSets/set")
	if len(sets) != 2 {
		t.Fatalf("expected two sets got %d", len(sets))
	}
	if sets[0].FindElement("setSpec").Text() != "SLSeuropeana" ||
		sets[0].FindElement("setName").Text() != "SLS material till Europeana" {
		t.Fatalf("unexpected first set")
	}

	resp = NewResponse(testProfile, "http://oai.sls.fi/oai", oai.RequestParams{Verb: oai.VerbListMetadataFormats}, testTime)
	resp.AddFormats([]oai.Format{{Prefix: "oai_dc", Schema: "http://www.openarchives.org/OAI/2.0/oai_dc.xsd", Namespace: "http://www.openarchives.org/OAI/2.0/oai_dc/"}})
	body, err = resp.Render()
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	format := parse(t, body).Root().FindElement("ListMetadataFormats/metadataFormat")
	if format.FindElement("metadataPrefix").Text() != "oai_dc" {
		t.Fatalf("unexpected format prefix")
	}
	if format.FindElement("schema").Text() != "http://www.openarchives.org/OAI/2.0/oai_dc.xsd" {
		t.Fatalf("unexpected format schema")
	}
	if format.FindElement("metadataNamespace").Text() != "http://www.openarchives.org/OAI/2.0/oai_dc/" {
		t.Fatalf("unexpected format namespace")
	}
}

func TestErrorResponse(t *testing.T) {
	body, err := ErrorResponse("http://oai.sls.fi/oai", "", oai.NewError(oai.CodeBadVerb, "Bad OAI verb"), testTime)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	root := parse(t, body).Root()
	if root.SelectAttrValue("xmlns", "") != oai.NamespaceOAI {
		t.Fatalf("expected protocol namespace on error root")
	}
	if root.SelectAttr("xmlns:dc") != nil {
		t.Fatalf("expected slim namespaces on error root")
	}
	req := root.FindElement("request")
	if req.SelectAttr("verb") != nil {
		t.Fatalf("expected no verb attribute for an unrecognized verb")
	}
	if req.Text() != "http://oai.sls.fi/oai" {
		t.Fatalf("unexpected request text %q", req.Text())
	}
	errEl := root.FindElement("error")
	if errEl.SelectAttrValue("code", "") != "badVerb" {
		t.Fatalf("unexpected error code %q", errEl.SelectAttrValue("code", ""))
	}
	if errEl.Text() != "Bad OAI verb" {
		t.Fatalf("unexpected error message %q", errEl.Text())
	}
}

func TestErrorResponseKeepsKnownVerb(t *testing.T) {
	body, err := ErrorResponse("http://oai.sls.fi/oai", oai.VerbListRecords, oai.NewError(oai.CodeNoRecordsMatch, "No records match the criteria given"), testTime)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	root := parse(t, body).Root()
	if root.FindElement("request").SelectAttrValue("verb", "") != "ListRecords" {
		t.Fatalf("expected verb attribute kept on protocol errors")
	}
	if root.FindElement("error").SelectAttrValue("code", "") != "noRecordsMatch" {
		t.Fatalf("unexpected error code")
	}
}
