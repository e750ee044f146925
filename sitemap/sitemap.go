package sitemap

import (
	"context"

	"github.com/fwojciec/sitemark"
)

// Parse builds a sitemap from body. When opts.Files is set, every entry is
// also bound to the file serving it.
//
// Parse errors are returned as *sitemark.Error with the codes of the sitemap
// taxonomy; no partial sitemap is returned.
func Parse(ctx context.Context, body string, opts Options) (*sitemark.Sitemap, error) {
	p := newParser(opts, false)
	if err := p.parse(body); err != nil {
		return nil, err
	}

	sections, _, err := build(opts.DocID, p.items)
	if err != nil {
		return nil, err
	}

	sm := &sitemark.Sitemap{
		Sections:    sections,
		ReaderNames: p.readers,
		WriterNames: p.writers,
	}

	named := false
	Walk(sm, func(n sitemark.Node, _ int) bool {
		if sitemark.HasNamedParams(n.Attrs().PathParams) {
			named = true
		}
		return !named
	})
	if named {
		return nil, sitemark.SitemapError("Sitemap must not contain urls with named params")
	}

	if opts.Files != nil {
		if err := ResolveLocations(ctx, sm, opts.Package, opts.Files); err != nil {
			return nil, err
		}
	}
	return sm, nil
}

// Walk visits every entry of sm in pre-order with its depth in the tree:
// sections are at 0, subsections at 1, top-level TOC items at 2.
// Returning false from fn stops the walk.
func Walk(sm *sitemark.Sitemap, fn func(n sitemark.Node, depth int) bool) {
	var walkTOC func(items []*sitemark.TocItem, depth int) bool
	walkTOC = func(items []*sitemark.TocItem, depth int) bool {
		for _, it := range items {
			if !fn(it, depth) || !walkTOC(it.Children, depth+1) {
				return false
			}
		}
		return true
	}
	for _, sec := range sm.Sections {
		if !fn(sec, 0) {
			return
		}
		for _, sub := range sec.Subsections {
			if !fn(sub, 1) || !walkTOC(sub.TOC, 2) {
				return
			}
		}
	}
}
