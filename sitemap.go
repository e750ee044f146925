package sitemark

// Element is the attribute bundle shared by every sitemap entry.
type Element struct {
	// ID is the entry's URL. Required on sections and TOC items.
	ID       string `json:"id"`
	Title    string `json:"title"`
	NavTitle string `json:"navTitle,omitempty"`
	Icon     string `json:"icon,omitempty"`

	// Document names the file backing the entry, overriding the lookup by ID.
	Document string `json:"document,omitempty"`

	Skip         bool `json:"skip"`
	Bury         bool `json:"bury"`
	Confidential bool `json:"confidential"`

	Readers []string `json:"readers,omitempty"`
	Writers []string `json:"writers,omitempty"`

	// ExtraData holds every attribute line of the entry, recognized or not.
	ExtraData  map[string]string `json:"extraData,omitempty"`
	PathParams []PathParam       `json:"pathParams,omitempty"`

	FileLocation            string `json:"fileLocation,omitempty"`
	TranslationFileLocation string `json:"translationFileLocation,omitempty"`
}

// Attrs returns the element itself. It lets *Section, *Subsection and
// *TocItem be handled through the Node interface.
func (e *Element) Attrs() *Element {
	return e
}

// DisplayTitle returns the navigation title, falling back to the title.
func (e *Element) DisplayTitle() string {
	if e.NavTitle != "" {
		return e.NavTitle
	}
	return e.Title
}

// Node is implemented by every sitemap entry.
type Node interface {
	Attrs() *Element
}

// Section is a top-level sitemap entry.
type Section struct {
	Element
	Subsections []*Subsection `json:"subsections,omitempty"`
}

// Subsection groups TOC items inside a section. Subsections synthesized to
// host TOC items declared directly under a section are not Visible.
type Subsection struct {
	Element
	Visible bool       `json:"visible"`
	TOC     []*TocItem `json:"toc,omitempty"`
}

// TocItem is a content link; TOC items nest arbitrarily deep.
type TocItem struct {
	Element
	Children []*TocItem `json:"children,omitempty"`
}

// Sitemap is the parsed navigation tree of a package. It is immutable once
// built and safe for concurrent queries.
type Sitemap struct {
	Sections []*Section `json:"sections"`

	// Groups granted access to every entry.
	ReaderNames []string `json:"readers,omitempty"`
	WriterNames []string `json:"writers,omitempty"`
}

// Route is a dynamic URL: a pattern with named parameters served by a
// single document.
type Route struct {
	Element
}

// DynamicURLs holds routes declared outside the sitemap, in declaration order.
type DynamicURLs struct {
	Routes []*Route `json:"routes"`
}

// Match returns the first route matching path along with its bindings.
func (d *DynamicURLs) Match(path string) (*Route, []Binding, bool) {
	if d == nil {
		return nil, nil, false
	}
	for _, r := range d.Routes {
		if bindings, ok := MatchPathParams(r.PathParams, path); ok {
			return r, bindings, true
		}
	}
	return nil, nil, false
}

// IDMap resolves short anchors to absolute URLs.
type IDMap interface {
	LookupID(anchor string) (url string, ok bool)
}

// GlobalIDs is an in-memory IDMap.
type GlobalIDs map[string]string

// LookupID returns the URL registered for anchor.
func (m GlobalIDs) LookupID(anchor string) (string, bool) {
	url, ok := m[anchor]
	return url, ok
}
