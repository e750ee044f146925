package sitemark

import (
	"context"
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var extensionRe = regexp.MustCompile(`^\.[A-Za-z0-9]+$`)

// DefaultDocumentExtensions are tried, in order, when mapping an id to a file.
var DefaultDocumentExtensions = []string{".ftd", ".md"}

// Package is a unit of authored content: a directory with a sitemap and the
// documents it links to.
type Package struct {
	Name     string `json:"name"`
	Root     string `json:"root"`
	Language string `json:"language,omitempty"`

	// TranslationOf is the upstream package when this one is a translation.
	TranslationOf *Package `json:"translationOf,omitempty"`

	SitemapBody     string `json:"-"`
	DynamicURLsBody string `json:"-"`

	DocumentExtensions []string  `json:"documentExtensions,omitempty"`
	IDs                GlobalIDs `json:"ids,omitempty"`
	Groups             []*Group  `json:"groups,omitempty"`
}

// IsTranslation reports whether p localizes another package.
func (p *Package) IsTranslation() bool {
	return p.TranslationOf != nil
}

// Extensions returns the document extensions to try, in order.
func (p *Package) Extensions() []string {
	if len(p.DocumentExtensions) == 0 {
		return DefaultDocumentExtensions
	}
	return p.DocumentExtensions
}

// Validate returns an error if the package contains invalid fields.
func (p *Package) Validate() error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Root, validation.Required),
		validation.Field(&p.DocumentExtensions, validation.Each(validation.Required, validation.Match(extensionRe))),
	)
	if err != nil {
		return Errorf(EINVALID, "package %q: %s", p.Name, err.Error())
	}
	if p.TranslationOf != nil {
		if p.TranslationOf.Name == "" || p.TranslationOf.Root == "" {
			return Errorf(EINVALID, "package %q: translation-of requires name and root", p.Name)
		}
		if p.TranslationOf.Name == p.Name {
			return Errorf(EINVALID, "package %q cannot be a translation of itself", p.Name)
		}
	}
	for _, g := range p.Groups {
		if err := g.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Site is a loaded package ready to serve queries.
type Site struct {
	Package     *Package
	Sitemap     *Sitemap
	DynamicURLs *DynamicURLs
	IDs         IDMap
	Groups      GroupRegistry
}

// Resolution is the outcome of resolving a request path.
type Resolution struct {
	// Document is the explicit document of the matched entry, if any.
	Document     string            `json:"document,omitempty"`
	FileLocation string            `json:"fileLocation,omitempty"`
	Bindings     []Binding         `json:"bindings"`
	ExtraData    map[string]string `json:"extraData,omitempty"`

	// Dynamic is true when the path matched a dynamic route.
	Dynamic bool `json:"dynamic"`
}

// Resolve finds the document serving path. The sitemap is consulted first,
// then dynamic routes. The bool result is false if nothing matches.
func (s *Site) Resolve(path string) (*Resolution, bool) {
	if s.Sitemap != nil {
		if res, ok := s.Sitemap.ResolveDocument(path); ok {
			return res, true
		}
	}
	route, bindings, ok := s.DynamicURLs.Match(path)
	if !ok {
		return nil, false
	}
	return &Resolution{
		Document:     route.Document,
		FileLocation: route.FileLocation,
		Bindings:     bindings,
		ExtraData:    copyExtra(nil, route.ExtraData),
		Dynamic:      true,
	}, true
}

// Readers returns the groups that may read path and whether it is confidential.
// Dynamic routes are consulted when the sitemap has no entry for path.
func (s *Site) Readers(path string) ([]*Group, bool) {
	if s.Sitemap != nil {
		if _, ok := s.Sitemap.lineage(path); ok {
			return s.Sitemap.Readers(path, s.Groups)
		}
	}
	if route, _, ok := s.DynamicURLs.Match(path); ok {
		names := unionNames(s.sitemapReaders(), s.sitemapWriters(), route.Readers, route.Writers)
		return lookupGroups(names, s.Groups), route.Confidential
	}
	if s.Sitemap == nil {
		return nil, true
	}
	return s.Sitemap.Readers(path, s.Groups)
}

// Writers returns the groups that may write path.
func (s *Site) Writers(path string) []*Group {
	if s.Sitemap != nil {
		if _, ok := s.Sitemap.lineage(path); ok {
			return s.Sitemap.Writers(path, s.Groups)
		}
	}
	if route, _, ok := s.DynamicURLs.Match(path); ok {
		return lookupGroups(unionNames(s.sitemapWriters(), route.Writers), s.Groups)
	}
	if s.Sitemap == nil {
		return nil
	}
	return s.Sitemap.Writers(path, s.Groups)
}

func (s *Site) sitemapReaders() []string {
	if s.Sitemap == nil {
		return nil
	}
	return s.Sitemap.ReaderNames
}

func (s *Site) sitemapWriters() []string {
	if s.Sitemap == nil {
		return nil
	}
	return s.Sitemap.WriterNames
}

// Loader builds a Site from a package.
type Loader interface {
	// Load parses the package's sitemap and dynamic urls and binds every
	// entry to a file. Parse errors carry the codes of the sitemap error
	// taxonomy; missing files are reported as EUSAGE.
	Load(ctx context.Context, pkg *Package) (*Site, error)
}

// FileResolver is the package filesystem adapter.
type FileResolver interface {
	// ResolveDocumentID maps a document id (a URL such as "/docs/intro/") to
	// the file serving it inside the package root.
	// Returns ENOTFOUND if no file backs the id.
	ResolveDocumentID(ctx context.Context, pkg *Package, id string) (string, error)

	// ResolveInRoot looks for id as a file path relative to root and returns
	// the path relative to root.
	// Returns ENOTFOUND if the file does not exist.
	ResolveInRoot(ctx context.Context, root, id string) (string, error)
}

// IsNotFound reports whether err is an ENOTFOUND application error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ENOTFOUND
}
