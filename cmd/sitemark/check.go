package main

import (
	"bytes"
	"fmt"

	"github.com/fwojciec/sitemark"
	"github.com/fwojciec/sitemark/etree"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	s, err := loadSite(deps)
	if err != nil {
		return fail(deps, err)
	}

	site := s.Site()
	var routes int
	if site.DynamicURLs != nil {
		routes = len(site.DynamicURLs.Routes)
	}
	fmt.Fprintf(deps.Stdout, "%s: %d sections, %d dynamic urls, %d locations\n",
		site.Package.Name, len(site.Sitemap.Sections), routes, len(site.Sitemap.AllLocations()))

	if c.SitemapXML == "" {
		return nil
	}
	return c.compare(deps, site)
}

// compare reports URLs the package serves that the existing sitemap.xml
// lacks, and URLs it lists that the package no longer serves.
func (c *CheckCmd) compare(deps *Dependencies, site *sitemark.Site) error {
	var buf bytes.Buffer
	if err := etree.WriteSitemapXML(&buf, c.BaseURL, site.Sitemap.AllLocations()); err != nil {
		return fail(deps, err)
	}
	want, err := etree.ReadSitemapXML(&buf)
	if err != nil {
		return fail(deps, err)
	}

	f, err := deps.Fs.Open(c.SitemapXML)
	if err != nil {
		return fail(deps, sitemark.Errorf(sitemark.ENOTFOUND, "cannot open %s: %v", c.SitemapXML, err))
	}
	defer f.Close()
	got, err := etree.ReadSitemapXML(f)
	if err != nil {
		return fail(deps, err)
	}

	listed := make(map[string]bool, len(got))
	for _, u := range got {
		listed[u] = true
	}
	served := make(map[string]bool, len(want))
	var missing, stale int
	for _, u := range want {
		served[u] = true
		if !listed[u] {
			fmt.Fprintf(deps.Stdout, "missing: %s\n", u)
			missing++
		}
	}
	for _, u := range got {
		if !served[u] {
			fmt.Fprintf(deps.Stdout, "stale: %s\n", u)
			stale++
		}
	}

	if missing+stale > 0 {
		return fail(deps, sitemark.Errorf(sitemark.EINVALID, "%s is out of date: %d missing, %d stale", c.SitemapXML, missing, stale))
	}
	fmt.Fprintf(deps.Stdout, "%s is up to date\n", c.SitemapXML)
	return nil
}
