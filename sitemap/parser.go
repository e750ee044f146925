// Package sitemap parses sitemap and dynamic-url bodies into sitemark trees
// and binds their entries to files.
package sitemap

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fwojciec/sitemark"
	"github.com/spf13/cast"
)

// Options configures Parse.
type Options struct {
	// DocID names the document being parsed in error messages.
	DocID string

	// IDs resolves `id:` attributes and anchor shorthands.
	IDs sitemark.IDMap

	// URLPattern locates the URL in "title: url" texts with several colons.
	// Defaults to sitemark.URLPattern.
	URLPattern *regexp.Regexp

	// Package and Files enable location resolution after parsing.
	// Resolution is skipped when Files is nil.
	Package *sitemark.Package
	Files   sitemark.FileResolver
}

type state int

const (
	waitingForSection state = iota
	parsingSection
	parsingSubsection
	parsingTOC
)

type kind int

const (
	kindSection kind = iota
	kindSubsection
	kindTOC
)

// item is one entry of the flat list produced by the parser.
type item struct {
	kind  kind
	depth int
	row   string

	section    *sitemark.Section
	subsection *sitemark.Subsection
	toc        *sitemark.TocItem
}

func (it *item) attrs() *sitemark.Element {
	switch it.kind {
	case kindSection:
		return &it.section.Element
	case kindSubsection:
		return &it.subsection.Element
	default:
		return &it.toc.Element
	}
}

// parser turns a body into a flat list of items, one line at a time.
// The most recently opened item stays pending until the next marker so that
// attribute lines can still modify it.
type parser struct {
	docID string
	ids   sitemark.IDMap
	urlRe *regexp.Regexp

	// dynamic allows TOC items outside of any section.
	dynamic bool

	state   state
	pending *item
	items   []*item

	readers []string
	writers []string
}

func newParser(opts Options, dynamic bool) *parser {
	ids := opts.IDs
	if ids == nil {
		ids = sitemark.GlobalIDs{}
	}
	urlRe := opts.URLPattern
	if urlRe == nil {
		urlRe = sitemark.URLPattern
	}
	return &parser{
		docID:   opts.DocID,
		ids:     ids,
		urlRe:   urlRe,
		dynamic: dynamic,
		state:   waitingForSection,
	}
}

func (p *parser) parse(body string) error {
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			if err := p.push(); err != nil {
				return err
			}
			continue
		}

		indent, rest, err := p.splitIndent(line)
		if err != nil {
			return err
		}
		if strings.HasPrefix(rest, ";;") {
			continue
		}
		depth := indent / 2

		switch rest[0] {
		case '#':
			if err := p.heading(line, rest, depth); err != nil {
				return err
			}
		case '-':
			if p.state == waitingForSection && !p.dynamic {
				return sitemark.TOCItemError(p.docID, "TOC item outside of a section", line)
			}
			if err := p.open(&item{kind: kindTOC, toc: &sitemark.TocItem{}}, strings.TrimSpace(rest[1:]), depth, line); err != nil {
				return err
			}
			p.state = parsingTOC
		default:
			if err := p.attribute(line, rest); err != nil {
				return err
			}
		}
	}
	return p.push()
}

// splitIndent measures leading whitespace. Tabs are rejected.
func (p *parser) splitIndent(line string) (int, string, error) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		if line[i] == '\t' {
			return 0, "", sitemark.TOCItemError(p.docID, "tabs are not allowed in indentation", line)
		}
		i++
	}
	return i, line[i:], nil
}

func (p *parser) heading(line, rest string, depth int) error {
	switch {
	case strings.HasPrefix(rest, "###"):
		return sitemark.TOCItemError(p.docID, "unknown heading level, use # or ##", line)
	case strings.HasPrefix(rest, "##"):
		if p.state == waitingForSection {
			return sitemark.TOCItemError(p.docID, "subsection outside of a section", line)
		}
		if err := p.open(&item{kind: kindSubsection, subsection: &sitemark.Subsection{Visible: true}}, strings.TrimSpace(rest[2:]), depth, line); err != nil {
			return err
		}
		p.state = parsingSubsection
	default:
		if err := p.open(&item{kind: kindSection, section: &sitemark.Section{}}, strings.TrimSpace(rest[1:]), depth, line); err != nil {
			return err
		}
		p.state = parsingSection
	}
	return nil
}

// open pushes the pending item and makes it the new pending one. The text
// after the marker is held in ID until finalization infers title and url.
func (p *parser) open(it *item, text string, depth int, row string) error {
	if err := p.push(); err != nil {
		return err
	}
	it.depth = depth
	it.row = row
	e := it.attrs()
	e.ID = text
	e.Confidential = true
	p.pending = it
	return nil
}

// push finalizes the pending item and appends it to the flat list.
func (p *parser) push() error {
	if p.pending == nil {
		return nil
	}
	if err := p.finalize(p.pending); err != nil {
		return err
	}
	p.items = append(p.items, p.pending)
	p.pending = nil
	return nil
}

// attribute applies a `key: value` line to the pending item, or to the
// sitemap itself before the first section. A blank line closes the pending
// item, so attributes after it have no owner.
func (p *parser) attribute(line, rest string) error {
	key, value, ok := strings.Cut(rest, ":")
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if !ok || key == "" {
		return sitemark.TOCItemError(p.docID, "expected `key: value`", line)
	}

	if p.pending == nil {
		if len(p.items) > 0 {
			return sitemark.TOCItemError(p.docID, fmt.Sprintf("attribute %q has no open element", key), line)
		}
		switch key {
		case "readers":
			p.readers = append(p.readers, value)
		case "writers":
			p.writers = append(p.writers, value)
		default:
			return sitemark.TOCItemError(p.docID, fmt.Sprintf("attribute %q outside of a section", key), line)
		}
		return nil
	}

	e := p.pending.attrs()
	switch key {
	case "url":
		promoteTitle(e)
		e.ID = value
		if err := p.setPathParams(e, line); err != nil {
			return err
		}
	case "id":
		url, ok := p.ids.LookupID(value)
		if !ok {
			err := sitemark.IDError(p.docID, value)
			err.Row = line
			return err
		}
		promoteTitle(e)
		e.ID = url
	case "nav-title":
		e.NavTitle = value
	case "skip", "bury", "confidential":
		b, err := cast.ToBoolE(value)
		if err != nil {
			return sitemark.TOCItemError(p.docID, fmt.Sprintf("%s must be true or false, got %q", key, value), line)
		}
		switch key {
		case "skip":
			e.Skip = b
		case "bury":
			e.Bury = b
		default:
			e.Confidential = b
		}
	case "icon":
		e.Icon = value
	case "readers":
		e.Readers = append(e.Readers, value)
	case "writers":
		e.Writers = append(e.Writers, value)
	case "document":
		e.Document = value
	}

	if e.ExtraData == nil {
		e.ExtraData = make(map[string]string)
	}
	e.ExtraData[key] = value
	return nil
}

// promoteTitle turns the marker text into the title when none was set.
func promoteTitle(e *sitemark.Element) {
	if e.Title == "" {
		e.Title = e.ID
	}
}

// setPathParams compiles the element's url. An url with named parameters
// marks the element skip.
func (p *parser) setPathParams(e *sitemark.Element, row string) error {
	if e.ID == "" || sitemark.IsExternalURL(e.ID) {
		e.PathParams = nil
		return nil
	}
	params, err := sitemark.ParsePathParams(e.ID)
	if err != nil {
		return sitemark.TOCItemError(p.docID, sitemark.ErrorMessage(err), row)
	}
	e.PathParams = params
	if sitemark.HasNamedParams(params) {
		e.Skip = true
	}
	return nil
}

// finalize settles the title and url of an item and validates them.
func (p *parser) finalize(it *item) error {
	e := it.attrs()
	if e.Title == "" && e.ID != "" {
		title, url, err := p.inferTitle(e.ID, it.row)
		if err != nil {
			return err
		}
		e.Title, e.ID = title, url
		if err := p.setPathParams(e, it.row); err != nil {
			return err
		}
	} else if e.PathParams == nil {
		if err := p.setPathParams(e, it.row); err != nil {
			return err
		}
	}
	if e.ID == "" && it.kind != kindSubsection {
		return sitemark.TOCItemError(p.docID, fmt.Sprintf("%q has no url, use `title: url` or a `url:` line", e.Title), it.row)
	}
	return nil
}
