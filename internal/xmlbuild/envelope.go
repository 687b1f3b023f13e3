// Package xmlbuild assembles OAI-PMH response documents. Every reply,
// success or error, is a well-formed OAI-PMH tree rendered with an XML
// declaration and two-space indentation.
package xmlbuild

import (
	"time"

	"github.com/beevik/etree"

	oai "github.com/slsfi/arkiva-oai"
)

// Response is a success document under construction. Container is the
// verb element the caller fills with results before rendering.
type Response struct {
	doc       *etree.Document
	Container *etree.Element
}

// NewResponse builds the envelope: root with the profile's namespace
// declarations for the verb, responseDate at second precision, and the
// request element echoing the validated parameters.
func NewResponse(profile oai.Profile, baseURL string, params oai.RequestParams, now time.Time) *Response {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("OAI-PMH")
	for _, ns := range profile.Namespaces(params.Verb) {
		root.CreateAttr(xmlnsName(ns.Prefix), ns.URI)
	}
	root.CreateAttr("xsi:schemaLocation", profile.SchemaLocation)

	root.CreateElement("responseDate").SetText(now.Format("2006-01-02T15:04:05"))

	req := root.CreateElement("request")
	req.CreateAttr("verb", string(params.Verb))
	if params.Verb.RecordVerb() {
		req.CreateAttr("metadataPrefix", params.MetadataPrefix)
		if params.From != "" {
			req.CreateAttr("from", params.From)
		}
		if params.Until != "" {
			req.CreateAttr("until", params.Until)
		}
		if params.Set != "" {
			req.CreateAttr("set", params.Set)
		}
	}
	if params.Identifier != "" {
		req.CreateAttr("identifier", params.Identifier)
	}
	req.SetText(baseURL)

	return &Response{
		doc:       doc,
		Container: root.CreateElement(string(params.Verb)),
	}
}

// AddIdentify fills an Identify container. Elements without a value
// are left out, including the earliest datestamp of an empty store.
func (r *Response) AddIdentify(identity oai.Identity, baseURL string, earliest time.Time) {
	add := func(tag, value string) {
		if value == "" {
			return
		}
		r.Container.CreateElement(tag).SetText(value)
	}
	add("repositoryName", identity.Name)
	add("baseURL", baseURL)
	add("protocolVersion", identity.ProtocolVersion)
	add("adminEmail", identity.AdminEmail)
	if !earliest.IsZero() {
		add("earliestDatestamp", earliest.Format("2006-01-02"))
	}
	add("deletedRecord", identity.DeletedRecord)
	add("granularity", identity.Granularity)
}

// AddSets fills a ListSets container.
func (r *Response) AddSets(sets []oai.Set) {
	for _, s := range sets {
		el := r.Container.CreateElement("set")
		el.CreateElement("setSpec").SetText(s.Spec)
		el.CreateElement("setName").SetText(s.Name)
	}
}

// AddFormats fills a ListMetadataFormats container.
func (r *Response) AddFormats(formats []oai.Format) {
	for _, f := range formats {
		el := r.Container.CreateElement("metadataFormat")
		el.CreateElement("metadataPrefix").SetText(f.Prefix)
		el.CreateElement("schema").SetText(f.Schema)
		el.CreateElement("metadataNamespace").SetText(f.Namespace)
	}
}

// Render serializes the document.
func (r *Response) Render() ([]byte, error) {
	r.doc.Indent(2)
	return r.doc.WriteToBytes()
}

// ErrorResponse renders a complete error document. Error roots always
// carry the slim namespace set and the protocol schema location, and
// the request element names the verb only when one was recognized.
func ErrorResponse(baseURL string, verb oai.Verb, protoErr *oai.Error, now time.Time) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("OAI-PMH")
	root.CreateAttr("xmlns", oai.NamespaceOAI)
	root.CreateAttr("xmlns:xsi", oai.NamespaceXSI)
	root.CreateAttr("xsi:schemaLocation", oai.SchemaLocationOAI)

	root.CreateElement("responseDate").SetText(now.Format("2006-01-02T15:04:05"))

	req := root.CreateElement("request")
	if verb != "" {
		req.CreateAttr("verb", string(verb))
	}
	req.SetText(baseURL)

	el := root.CreateElement("error")
	el.CreateAttr("code", string(protoErr.Code))
	el.SetText(protoErr.Message)

	doc.Indent(2)
	return doc.WriteToBytes()
}

func xmlnsName(prefix string) string {
	if prefix == "" {
		return "xmlns"
	}
	return "xmlns:" + prefix
}
