package sitemap

import (
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitemark"
)

// Compile-time interface verification.
var _ sitemark.Loader = (*Loader)(nil)

// Loader implements sitemark.Loader. Sites are cached by a fingerprint of
// everything that shapes them, so an unchanged package is parsed once.
// Only the latest site of each package is kept.
// It is safe for concurrent use by multiple goroutines.
type Loader struct {
	files sitemark.FileResolver

	mu    sync.Mutex
	sites map[string]cachedSite
}

type cachedSite struct {
	key  uint64
	site *sitemark.Site
}

// NewLoader creates a new Loader. If files is nil, entries are not bound to
// files.
func NewLoader(files sitemark.FileResolver) *Loader {
	return &Loader{
		files: files,
		sites: make(map[string]cachedSite),
	}
}

// Load parses and resolves pkg.
func (l *Loader) Load(ctx context.Context, pkg *sitemark.Package) (*sitemark.Site, error) {
	if err := pkg.Validate(); err != nil {
		return nil, err
	}

	key := Fingerprint(pkg)
	l.mu.Lock()
	cached, ok := l.sites[pkg.Name]
	l.mu.Unlock()
	if ok && cached.key == key {
		return cached.site, nil
	}

	ids := pkg.IDs
	if ids == nil {
		ids = sitemark.GlobalIDs{}
	}

	sm, err := Parse(ctx, pkg.SitemapBody, Options{
		DocID:   pkg.Name + "/sitemap",
		IDs:     ids,
		Package: pkg,
		Files:   l.files,
	})
	if err != nil {
		return nil, err
	}

	dyn, err := ParseDynamicURLs(ids, pkg.Name, pkg.DynamicURLsBody)
	if err != nil {
		return nil, err
	}
	if l.files != nil {
		if err := ResolveRouteLocations(ctx, dyn, pkg, l.files); err != nil {
			return nil, err
		}
	}

	site := &sitemark.Site{
		Package:     pkg,
		Sitemap:     sm,
		DynamicURLs: dyn,
		IDs:         ids,
		Groups:      sitemark.NewGroups(pkg.Groups),
	}

	l.mu.Lock()
	l.sites[pkg.Name] = cachedSite{key: key, site: site}
	l.mu.Unlock()
	return site, nil
}

// Fingerprint hashes every package field that influences the loaded site.
func Fingerprint(pkg *sitemark.Package) uint64 {
	h := xxhash.New()
	write := func(s string) {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0})
	}

	write(pkg.Name)
	write(pkg.Root)
	write(pkg.Language)
	if pkg.TranslationOf != nil {
		write(pkg.TranslationOf.Name)
		write(pkg.TranslationOf.Root)
	}
	write(pkg.SitemapBody)
	write(pkg.DynamicURLsBody)
	for _, ext := range pkg.Extensions() {
		write(ext)
	}

	anchors := make([]string, 0, len(pkg.IDs))
	for anchor := range pkg.IDs {
		anchors = append(anchors, anchor)
	}
	slices.Sort(anchors)
	for _, anchor := range anchors {
		write(anchor)
		write(pkg.IDs[anchor])
	}

	for _, g := range pkg.Groups {
		write(g.ID)
		write(g.Name)
		write(strconv.Itoa(len(g.Members)))
		for _, m := range g.Members {
			write(m)
		}
	}
	return h.Sum64()
}
