package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fwojciec/sitemark"
	"github.com/fwojciec/sitemark/etree"
)

// Run executes the resolve command.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	s, err := loadSite(deps)
	if err != nil {
		return fail(deps, err)
	}

	res, ok := s.Resolve(c.Path)
	if !ok {
		return fail(deps, sitemark.Errorf(sitemark.ENOTFOUND, "no document serves %q", c.Path))
	}

	source := "sitemap"
	if res.Dynamic {
		source = "dynamic"
	}
	fmt.Fprintf(deps.Stdout, "source: %s\n", source)
	if res.Document != "" {
		fmt.Fprintf(deps.Stdout, "document: %s\n", res.Document)
	}
	if res.FileLocation != "" {
		fmt.Fprintf(deps.Stdout, "file: %s\n", res.FileLocation)
	}
	for _, b := range res.Bindings {
		fmt.Fprintf(deps.Stdout, "param %s (%s): %v\n", b.Name, b.Type, b.Value)
	}
	keys := make([]string, 0, len(res.ExtraData))
	for k := range res.ExtraData {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(deps.Stdout, "extra %s: %s\n", k, res.ExtraData[k])
	}
	return nil
}

// Run executes the view command.
func (c *ViewCmd) Run(deps *Dependencies) error {
	s, err := loadSite(deps)
	if err != nil {
		return fail(deps, err)
	}

	view := s.Site().Sitemap.ViewFor(c.Path)
	if view == nil {
		return fail(deps, sitemark.Errorf(sitemark.ENOTFOUND, "%q is not in the sitemap", c.Path))
	}

	fmt.Fprintln(deps.Stdout, "sections:")
	writeViews(deps.Stdout, view.Sections, 1)
	if len(view.Subsections) > 0 {
		fmt.Fprintln(deps.Stdout, "subsections:")
		writeViews(deps.Stdout, view.Subsections, 1)
	}
	if len(view.TOC) > 0 {
		fmt.Fprintln(deps.Stdout, "toc:")
		writeViews(deps.Stdout, view.TOC, 1)
	}
	fmt.Fprintf(deps.Stdout, "current: %s\n", view.CurrentPage.Title)
	return nil
}

// writeViews prints one entry per line. Active entries are marked "*",
// open ones "+".
func writeViews(w io.Writer, views []*sitemark.TocView, depth int) {
	for _, v := range views {
		mark := " "
		switch {
		case v.IsActive:
			mark = "*"
		case v.IsOpen:
			mark = "+"
		}
		fmt.Fprintf(w, "%s%s %s  %s\n", strings.Repeat("  ", depth), mark, v.Title, v.URL)
		writeViews(w, v.Children, depth+1)
	}
}

// Run executes the readers command.
func (c *ReadersCmd) Run(deps *Dependencies) error {
	s, err := loadSite(deps)
	if err != nil {
		return fail(deps, err)
	}

	groups, confidential := s.Readers(c.Path)
	writeGroups(deps.Stdout, groups)
	fmt.Fprintf(deps.Stdout, "confidential: %t\n", confidential)
	return nil
}

// Run executes the writers command.
func (c *WritersCmd) Run(deps *Dependencies) error {
	s, err := loadSite(deps)
	if err != nil {
		return fail(deps, err)
	}

	writeGroups(deps.Stdout, s.Writers(c.Path))
	return nil
}

func writeGroups(w io.Writer, groups []*sitemark.Group) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "(no groups)")
		return
	}
	for _, g := range groups {
		if len(g.Members) > 0 {
			fmt.Fprintf(w, "%s  %s\n", g.Name, strings.Join(g.Members, ", "))
		} else {
			fmt.Fprintln(w, g.Name)
		}
	}
}

// Run executes the locations command.
func (c *LocationsCmd) Run(deps *Dependencies) error {
	s, err := loadSite(deps)
	if err != nil {
		return fail(deps, err)
	}

	for _, loc := range s.Site().Sitemap.AllLocations() {
		if loc.Translation != "" {
			fmt.Fprintf(deps.Stdout, "%s  %s  (translation: %s)\n", loc.URL, loc.Primary, loc.Translation)
		} else {
			fmt.Fprintf(deps.Stdout, "%s  %s\n", loc.URL, loc.Primary)
		}
	}
	return nil
}

// Run executes the sitemap-xml command.
func (c *SitemapXMLCmd) Run(deps *Dependencies) error {
	s, err := loadSite(deps)
	if err != nil {
		return fail(deps, err)
	}

	if err := etree.WriteSitemapXML(deps.Stdout, c.BaseURL, s.Site().Sitemap.AllLocations()); err != nil {
		return fail(deps, err)
	}
	return nil
}
