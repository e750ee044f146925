package sitemap

import (
	"github.com/fwojciec/sitemark"
)

// levelTree is an open TOC item waiting for children.
type levelTree struct {
	level int
	item  *sitemark.TocItem
}

// tocEntry is a TOC item of the flat list with its indentation depth.
type tocEntry struct {
	level int
	row   string
	item  *sitemark.TocItem
}

// build folds the flat list into sections. TOC items found before any
// section are returned as orphans; the parser only lets them through for
// dynamic urls.
func build(docID string, items []*item) ([]*sitemark.Section, []*sitemark.TocItem, error) {
	// Reverse so that the next item is always at the end.
	stack := make([]*item, len(items))
	for i, it := range items {
		stack[len(items)-1-i] = it
	}

	sections := []*sitemark.Section{}
	var orphans []*sitemark.TocItem
	var section *sitemark.Section
	var subsection *sitemark.Subsection

	for len(stack) > 0 {
		next := stack[len(stack)-1]
		switch next.kind {
		case kindSection:
			stack = stack[:len(stack)-1]
			section = next.section
			subsection = nil
			sections = append(sections, section)

		case kindSubsection:
			stack = stack[:len(stack)-1]
			if section == nil {
				return nil, nil, sitemark.TOCItemError(docID, "subsection outside of a section", next.row)
			}
			subsection = next.subsection
			section.Subsections = append(section.Subsections, subsection)

		case kindTOC:
			var run []tocEntry
			for len(stack) > 0 && stack[len(stack)-1].kind == kindTOC {
				it := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				run = append(run, tocEntry{level: it.depth, row: it.row, item: it.toc})
			}
			forest, err := foldTOC(docID, run)
			if err != nil {
				return nil, nil, err
			}
			switch {
			case section == nil:
				orphans = append(orphans, forest...)
			case subsection == nil:
				subsection = &sitemark.Subsection{Visible: false}
				section.Subsections = append(section.Subsections, subsection)
				fallthrough
			default:
				subsection.TOC = append(subsection.TOC, forest...)
			}
		}
	}
	return sections, orphans, nil
}

// foldTOC turns a run of consecutive TOC items into a forest by depth.
// The minimum depth of the run is its root level; every item must have a
// parent at a strictly lower depth or sit at the root level.
func foldTOC(docID string, run []tocEntry) ([]*sitemark.TocItem, error) {
	if len(run) == 0 {
		return nil, nil
	}
	root := run[0].level
	for _, e := range run[1:] {
		root = min(root, e.level)
	}

	var roots []*sitemark.TocItem
	var open []levelTree
	for _, e := range run {
		for len(open) > 0 && open[len(open)-1].level >= e.level {
			open = open[:len(open)-1]
		}
		if len(open) == 0 {
			if e.level != root {
				return nil, sitemark.TOCItemError(docID, "TOC item is indented deeper than the items that follow it", e.row)
			}
			roots = append(roots, e.item)
		} else {
			parent := open[len(open)-1].item
			parent.Children = append(parent.Children, e.item)
		}
		open = append(open, levelTree{level: e.level, item: e.item})
	}
	return roots, nil
}
