package oai

// Verb is one of the six OAI-PMH protocol requests.
type Verb string

const (
	VerbIdentify            Verb = "Identify"
	VerbListSets            Verb = "ListSets"
	VerbListMetadataFormats Verb = "ListMetadataFormats"
	VerbListIdentifiers     Verb = "ListIdentifiers"
	VerbListRecords         Verb = "ListRecords"
	VerbGetRecord           Verb = "GetRecord"
)

// ParseVerb resolves the verb query parameter. The zero Verb and false
// mean the value is not a protocol verb.
func ParseVerb(s string) (Verb, bool) {
	switch Verb(s) {
	case VerbIdentify, VerbListSets, VerbListMetadataFormats,
		VerbListIdentifiers, VerbListRecords, VerbGetRecord:
		return Verb(s), true
	}
	return "", false
}

// RecordVerb reports whether v returns record or header payloads, which
// widens the namespace declarations on the response root.
func (v Verb) RecordVerb() bool {
	return v == VerbListIdentifiers || v == VerbListRecords || v == VerbGetRecord
}

// RequestParams is a validated OAI-PMH request. String fields are empty
// when the parameter was absent. From and Until are normalized to
// YYYY-MM-DD.
type RequestParams struct {
	Verb           Verb
	MetadataPrefix string
	From           string
	Until          string
	Set            string
	SetName        string
	Identifier     string
}

// Set is a harvesting set offered by a repository.
type Set struct {
	Spec string
	Name string
}

// Format is a metadata format offered by a repository.
type Format struct {
	Prefix    string
	Schema    string
	Namespace string
}

// Identity holds the repository description served by Identify.
type Identity struct {
	Name            string
	AdminEmail      string
	ProtocolVersion string
	DeletedRecord   string
	Granularity     string
}

// NS is a namespace declaration on the response root. An empty Prefix
// declares the default namespace.
type NS struct {
	Prefix string
	URI    string
}

// Protocol namespace constants shared by every response document.
const (
	NamespaceOAI = "http://www.openarchives.org/OAI/2.0/"
	NamespaceXSI = "http://www.w3.org/2001/XMLSchema-instance"

	SchemaLocationOAI = "http://www.openarchives.org/OAI/2.0/ http://www.openarchives.org/OAI/2.0/OAI-PMH.xsd"
)

// Profile describes how an endpoint dresses its response roots. Record
// verbs declare the metadata namespaces up front so record payloads can
// use prefixed names, the other verbs keep the slim set.
type Profile struct {
	SchemaLocation string
	Base           []NS
	Record         []NS
}

// Namespaces picks the declaration list for the verb.
func (p Profile) Namespaces(v Verb) []NS {
	if v.RecordVerb() {
		return p.Record
	}
	return p.Base
}
