package oai

import (
	"fmt"
	"net/url"
	"sort"
	"time"
)

var paramNames = map[string]bool{
	"verb":           true,
	"metadataPrefix": true,
	"from":           true,
	"until":          true,
	"set":            true,
	"identifier":     true,
}

// dateLayouts covers the request date forms harvesters send in
// practice. Whatever matches is normalized to YYYY-MM-DD.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"20060102",
	"02.01.2006",
	"2 January 2006",
	"January 2, 2006",
}

func parseDate(s string) (string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// Validate checks the query against the protocol grammar and the
// repository's sets and metadata prefixes. The checks run in a fixed
// order and the first failure wins: argument names, verb, dates, set,
// metadataPrefix, then the verb-specific parameter arity. The returned
// params carry whatever was accepted before the failure, so an error
// response can still echo the verb.
func Validate(query url.Values, sets []Set, prefixes []string) (RequestParams, *Error) {
	var params RequestParams

	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !paramNames[key] {
			return params, NewError(CodeBadArgument, "Unknown argument")
		}
	}

	verb, ok := ParseVerb(query.Get("verb"))
	if !ok {
		return params, NewError(CodeBadVerb, "Bad OAI verb")
	}
	params.Verb = verb

	if query.Has("from") {
		from, ok := parseDate(query.Get("from"))
		if !ok {
			return params, NewError(CodeBadArgument, "From-date malformed")
		}
		params.From = from
	}
	if query.Has("until") {
		until, ok := parseDate(query.Get("until"))
		if !ok {
			return params, NewError(CodeBadArgument, "Until-date malformed")
		}
		params.Until = until
	}

	params.Identifier = query.Get("identifier")

	if query.Has("set") {
		spec := query.Get("set")
		found := false
		for _, s := range sets {
			if s.Spec == spec {
				params.Set = s.Spec
				params.SetName = s.Name
				found = true
				break
			}
		}
		if !found {
			return params, NewError(CodeBadArgument, "Unknown set")
		}
	}

	if query.Has("metadataPrefix") {
		prefix := query.Get("metadataPrefix")
		found := false
		for _, p := range prefixes {
			if p == prefix {
				found = true
				break
			}
		}
		if !found {
			return params, NewError(CodeCannotDisseminateFormat, "Unknown metadata prefix")
		}
		params.MetadataPrefix = prefix
	}

	given := 1
	for name := range paramNames {
		if name != "verb" && query.Has(name) {
			given++
		}
	}

	switch verb {
	case VerbIdentify, VerbListSets:
		if given > 1 {
			return params, NewError(CodeBadArgument, fmt.Sprintf("No other parameters with %s", verb))
		}
	case VerbListMetadataFormats:
		allowed := 1
		if query.Has("identifier") {
			allowed = 2
		}
		if given > allowed {
			return params, NewError(CodeBadArgument, fmt.Sprintf("Only identifier is a valid parameter for %s", verb))
		}
	case VerbListIdentifiers, VerbListRecords:
		if params.MetadataPrefix == "" {
			return params, NewError(CodeBadArgument, "metadataPrefix is missing")
		}
		if query.Has("identifier") {
			return params, NewError(CodeBadArgument, fmt.Sprintf("The identifier parameter is not allowed for %s", verb))
		}
	case VerbGetRecord:
		if params.MetadataPrefix == "" || !query.Has("identifier") || given != 3 {
			return params, NewError(CodeBadArgument, "metadataPrefix and identifier parameters are required, no other parameters are valid")
		}
	}

	return params, nil
}
