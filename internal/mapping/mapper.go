package mapping

import (
	"strings"

	"github.com/beevik/etree"

	oai "github.com/slsfi/arkiva-oai"
)

func (s Source) separator() string {
	if s.Sep != "" {
		return s.Sep
	}
	return ", "
}

// resolve reads the source against a record. Columns without a usable
// value resolve empty, so zero and NULL never surface as text.
func (s Source) resolve(r oai.Record) string {
	var v string
	switch {
	case s.Const != "":
		v = s.Const
	case s.Field != "":
		if r.Truthy(s.Field) {
			v = r.Get(s.Field)
		}
	case len(s.FirstOf) > 0:
		for _, f := range s.FirstOf {
			if r.Truthy(f) {
				v = r.Get(f)
				break
			}
		}
	case len(s.Join) > 0:
		parts := make([]string, 0, len(s.Join))
		for _, f := range s.Join {
			if r.Truthy(f) {
				parts = append(parts, r.Get(f))
			}
		}
		v = strings.Join(parts, s.separator())
	}
	if v == "" {
		return ""
	}
	if s.Lookup != nil {
		key := v
		if s.Fold {
			key = strings.ToLower(key)
		}
		v = s.Lookup[key]
		if v == "" {
			return ""
		}
	}
	return s.Prefix + v + s.Suffix
}

func (c *Condition) holds(r oai.Record) bool {
	if c == nil {
		return true
	}
	if len(c.AnyOf) > 0 {
		for _, f := range c.AnyOf {
			if r.Truthy(f) {
				return true
			}
		}
		return false
	}
	if c.Equals != "" {
		return r.Equal(c.Field, c.Equals, c.Fold)
	}
	if c.NotEquals != "" {
		return !r.Equal(c.Field, c.NotEquals, c.Fold)
	}
	return r.Truthy(c.Field)
}

// Apply walks the entries against a node and appends the produced
// elements to parent. Entry order is output order.
func Apply(parent *etree.Element, entries []Entry, node oai.Node) {
	for _, e := range entries {
		if e.ForEach != "" {
			for _, kid := range node.Kids(e.ForEach) {
				applyOne(parent, e, kid)
			}
			continue
		}
		applyOne(parent, e, node)
	}
}

func applyOne(parent *etree.Element, e Entry, node oai.Node) {
	if !e.When.holds(node.Record) {
		return
	}

	if e.Text == nil {
		el := parent.CreateElement(e.Tag)
		setAttrs(el, e.Attrs, node.Record)
		Apply(el, e.Children, node)
		return
	}

	value := e.Text.resolve(node.Record)
	if value == "" {
		return
	}

	segments := []string{value}
	if e.SplitOn != "" && strings.Contains(value, e.SplitOn) {
		segments = segments[:0]
		for _, part := range strings.Split(value, e.SplitOn) {
			if part != "" {
				segments = append(segments, part)
			}
		}
	}

	for _, seg := range segments {
		text := seg
		parenValue := ""
		hasParen := false
		if e.Paren != nil {
			parts := strings.Split(seg, " (")
			if len(parts) > 1 {
				text = parts[0]
				parenValue = strings.ReplaceAll(parts[1], ")", "")
				hasParen = true
			}
		}
		if text == "" {
			continue
		}

		el := parent.CreateElement(e.Tag)
		el.SetText(text)
		setAttrs(el, e.Attrs, node.Record)
		if e.Paren != nil {
			if hasParen {
				el.CreateAttr(e.Paren.Attr, parenValue)
				setAttrs(el, e.Paren.Extra, node.Record)
			} else {
				setAttrs(el, e.Paren.Fallback, node.Record)
			}
		}
		Apply(el, e.Children, node)
	}
}

func setAttrs(el *etree.Element, attrs []Attr, r oai.Record) {
	for _, a := range attrs {
		v := a.Value.resolve(r)
		if v == "" && !a.KeepEmpty {
			continue
		}
		el.CreateAttr(a.Name, v)
	}
}

// RenderRecord appends one record to the verb container. The header is
// always emitted; ListIdentifiers stops there, and deleted rows carry a
// status attribute instead of metadata.
func RenderRecord(parent *etree.Element, t *Table, node oai.Node, verb oai.Verb) {
	owner := parent
	if verb != oai.VerbListIdentifiers {
		owner = parent.CreateElement("record")
	}
	header := owner.CreateElement("header")
	Apply(header, t.Header, node)

	if node.Deleted() {
		header.CreateAttr("status", "deleted")
		return
	}
	if verb == oai.VerbListRecords || verb == oai.VerbGetRecord {
		metadata := owner.CreateElement("metadata")
		Apply(metadata, t.Metadata, node)
	}
}
