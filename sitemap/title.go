package sitemap

import (
	"strings"

	"github.com/fwojciec/sitemark"
)

// titleRule infers title and url from the text following a marker.
// Rules are tried in order; the first whose applies returns true decides.
type titleRule struct {
	name    string
	applies func(text string, colons int) bool
	infer   func(p *parser, text, row string) (title, url string, err error)
}

var titleRules = []titleRule{
	{
		name:    "absolute url",
		applies: func(text string, _ int) bool { return strings.Contains(text, "://") },
		infer:   (*parser).inferFromPattern,
	},
	{
		name:    "no colon",
		applies: func(_ string, colons int) bool { return colons == 0 },
		infer:   (*parser).inferFromAnchor,
	},
	{
		name:    "single colon",
		applies: func(_ string, colons int) bool { return colons == 1 },
		infer:   (*parser).inferFromLastColon,
	},
	{
		name:    "several colons",
		applies: func(_ string, colons int) bool { return colons > 1 },
		infer:   (*parser).inferAfterFirstColon,
	},
}

func (p *parser) inferTitle(text, row string) (string, string, error) {
	colons := strings.Count(text, ":")
	for _, rule := range titleRules {
		if rule.applies(text, colons) {
			return rule.infer(p, text, row)
		}
	}
	return text, "", nil
}

// inferFromAnchor treats the whole text as the title. When the text is also
// a known anchor it provides the url.
func (p *parser) inferFromAnchor(text, _ string) (string, string, error) {
	if url, ok := p.ids.LookupID(text); ok {
		return text, url, nil
	}
	return text, "", nil
}

// inferFromLastColon splits "title: target". The target is a url when it is
// empty, ends in .html or contains a slash; otherwise it must be an anchor.
func (p *parser) inferFromLastColon(text, row string) (string, string, error) {
	i := strings.LastIndex(text, ":")
	title := strings.TrimSpace(text[:i])
	target := strings.TrimSpace(text[i+1:])
	if target == "" || strings.HasSuffix(target, ".html") || strings.Contains(target, "/") {
		return title, target, nil
	}
	url, ok := p.ids.LookupID(target)
	if !ok {
		err := sitemark.IDError(p.docID, target)
		err.Row = row
		return "", "", err
	}
	return title, url, nil
}

// inferFromPattern takes the first URL-shaped substring as the url and the
// text before it as the title.
func (p *parser) inferFromPattern(text, row string) (string, string, error) {
	return p.matchURL(text, 0, row)
}

// inferAfterFirstColon looks for the url only after the first colon, so a
// slash inside the title is never taken for it.
func (p *parser) inferAfterFirstColon(text, row string) (string, string, error) {
	return p.matchURL(text, strings.Index(text, ":")+1, row)
}

func (p *parser) matchURL(text string, from int, row string) (string, string, error) {
	loc := p.urlRe.FindStringIndex(text[from:])
	if loc == nil {
		return "", "", sitemark.TOCItemError(p.docID, "ambiguous title: URL, write the url on a separate `url:` line", row)
	}
	start, end := from+loc[0], from+loc[1]
	url := text[start:end]
	title := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text[:start]), ":"))
	if title == "" {
		title = url
	}
	return title, url, nil
}
