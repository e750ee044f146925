// Package etree exports sitemap locations as sitemaps.org XML.
package etree

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/sitemark"
)

// Namespace is the sitemaps.org urlset namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// WriteSitemapXML writes a <urlset> with one <url> per location, resolved
// against baseURL. External and duplicate URLs are left out.
func WriteSitemapXML(w io.Writer, baseURL string, locations []sitemark.Location) error {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return sitemark.Errorf(sitemark.EINVALID, "base url must be an absolute http(s) url, got %q", baseURL)
	}
	prefix := strings.TrimSuffix(base.String(), "/")

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", Namespace)

	seen := make(map[string]bool)
	for _, loc := range locations {
		if loc.URL == "" || sitemark.IsExternalURL(loc.URL) {
			continue
		}
		canonical := sitemark.CanonicalURL(loc.URL)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true

		u := prefix + "/"
		if canonical != "/" {
			u += canonical
		}
		urlset.CreateElement("url").CreateElement("loc").SetText(u)
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("writing sitemap XML: %w", err)
	}
	return nil
}

// ReadSitemapXML returns the <loc> values of a <urlset> document.
func ReadSitemapXML(r io.Reader) ([]string, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "urlset" {
		return nil, sitemark.Errorf(sitemark.EINVALID, "sitemap XML has no urlset")
	}

	var urls []string
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}
