package sitemark

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Path parameter types understood by MatchPathParams. Any other declared
// type matches like ParamString.
const (
	ParamString  = "string"
	ParamInteger = "integer"
	ParamDecimal = "decimal"
	ParamBoolean = "boolean"
)

// PathParam is one positional segment of a URL pattern. A named parameter
// (`<type:name>`) has a non-empty Name and Type; a literal segment carries
// its text in Value.
type PathParam struct {
	Index int    `json:"index"`
	Name  string `json:"name,omitempty"`
	Type  string `json:"type,omitempty"`
	Value string `json:"value,omitempty"`
}

// IsNamed reports whether p is a `<type:name>` slot.
func (p PathParam) IsNamed() bool {
	return p.Name != ""
}

// Binding is a typed value extracted from a concrete path for a named
// parameter. Value holds a string, int64, float64 or bool depending on Type.
type Binding struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// ParsePathParams compiles a URL pattern such as
// "/person/<string:name>/<integer:age>/" into its ordered segments.
// Returns EINVALID for a malformed `<...>` segment.
func ParsePathParams(pattern string) ([]PathParam, error) {
	segments := splitPath(pattern)
	params := make([]PathParam, 0, len(segments))
	for i, seg := range segments {
		if !strings.ContainsAny(seg, "<>") {
			params = append(params, PathParam{Index: i, Value: seg})
			continue
		}
		if !strings.HasPrefix(seg, "<") || !strings.HasSuffix(seg, ">") {
			return nil, Errorf(EINVALID, "invalid pattern %q: malformed segment %q", pattern, seg)
		}
		typ, name, ok := strings.Cut(seg[1:len(seg)-1], ":")
		typ, name = strings.TrimSpace(typ), strings.TrimSpace(name)
		if !ok || typ == "" || name == "" || strings.ContainsAny(name, "<>:") {
			return nil, Errorf(EINVALID, "invalid pattern %q: expected <type:name>, got %q", pattern, seg)
		}
		params = append(params, PathParam{Index: i, Name: name, Type: typ})
	}
	return params, nil
}

// HasNamedParams reports whether any of params is a named slot.
func HasNamedParams(params []PathParam) bool {
	for _, p := range params {
		if p.IsNamed() {
			return true
		}
	}
	return false
}

// MatchPathParams matches a concrete path against compiled params.
// The segment counts must be equal, literals must be equal and every named
// segment must parse as its declared type. The bool result is false on any
// mismatch.
func MatchPathParams(params []PathParam, path string) ([]Binding, bool) {
	segments := splitPath(stripQuery(path))
	if len(segments) != len(params) {
		return nil, false
	}

	var bindings []Binding
	for i, p := range params {
		seg := segments[i]
		if !p.IsNamed() {
			if seg != p.Value {
				return nil, false
			}
			continue
		}
		v, ok := parseTyped(p.Type, seg)
		if !ok {
			return nil, false
		}
		bindings = append(bindings, Binding{Name: p.Name, Type: p.Type, Value: v})
	}
	if bindings == nil {
		bindings = []Binding{}
	}
	return bindings, true
}

// PatternKey identifies the shape of a pattern: two patterns with the same
// key match exactly the same paths. Parameter names are not part of it.
func PatternKey(params []PathParam) string {
	var b strings.Builder
	for _, p := range params {
		b.WriteByte('/')
		if p.IsNamed() {
			b.WriteString("<" + normalizeType(p.Type) + ">")
		} else {
			b.WriteString(p.Value)
		}
	}
	return b.String()
}

func parseTyped(typ, s string) (any, bool) {
	switch normalizeType(typ) {
	case ParamInteger:
		// strconv rather than cast: cast reads a leading zero as octal.
		n, err := strconv.ParseInt(s, 10, 64)
		return n, err == nil
	case ParamDecimal:
		f, err := cast.ToFloat64E(s)
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	case ParamBoolean:
		b, err := cast.ToBoolE(s)
		return b, err == nil
	default:
		return s, s != ""
	}
}

func normalizeType(typ string) string {
	switch typ {
	case ParamInteger, ParamDecimal, ParamBoolean:
		return typ
	}
	return ParamString
}

// splitPath splits on "/" dropping empty segments.
func splitPath(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}
