package sitemap

import (
	"fmt"

	"github.com/fwojciec/sitemark"
)

// ParseDynamicURLs builds the dynamic-url routes of a package from body.
// It uses the sitemap grammar, except that TOC items may appear without an
// enclosing section. Every leaf must carry at least one named parameter and
// no two routes may share a pattern.
func ParseDynamicURLs(ids sitemark.IDMap, packageName, body string) (*sitemark.DynamicURLs, error) {
	docID := packageName + "/dynamic-urls"
	p := newParser(Options{DocID: docID, IDs: ids}, true)
	if err := p.parse(body); err != nil {
		return nil, err
	}
	if len(p.readers) > 0 || len(p.writers) > 0 {
		return nil, sitemark.DynamicURLsError("readers and writers must be set on individual dynamic urls")
	}

	sections, orphans, err := build(docID, p.items)
	if err != nil {
		return nil, err
	}

	d := &sitemark.DynamicURLs{Routes: []*sitemark.Route{}}
	seen := make(map[string]string)
	add := func(e *sitemark.Element, leaf bool) error {
		named := sitemark.HasNamedParams(e.PathParams)
		if !named {
			if leaf {
				return sitemark.DynamicURLsError(fmt.Sprintf("dynamic url %q (%s) must contain at least one named parameter", e.ID, e.Title))
			}
			return nil
		}
		key := sitemark.PatternKey(e.PathParams)
		if prev, ok := seen[key]; ok {
			return sitemark.DynamicURLsError(fmt.Sprintf("dynamic url %q duplicates %q", e.ID, prev))
		}
		seen[key] = e.ID
		d.Routes = append(d.Routes, &sitemark.Route{Element: *e})
		return nil
	}

	var addTOC func(items []*sitemark.TocItem) error
	addTOC = func(items []*sitemark.TocItem) error {
		for _, it := range items {
			if err := add(&it.Element, len(it.Children) == 0); err != nil {
				return err
			}
			if err := addTOC(it.Children); err != nil {
				return err
			}
		}
		return nil
	}

	if err := addTOC(orphans); err != nil {
		return nil, err
	}
	for _, sec := range sections {
		if err := add(&sec.Element, len(sec.Subsections) == 0); err != nil {
			return nil, err
		}
		for _, sub := range sec.Subsections {
			if sub.ID != "" {
				if err := add(&sub.Element, len(sub.TOC) == 0); err != nil {
					return nil, err
				}
			}
			if err := addTOC(sub.TOC); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}
