package sitemark

// TocView is a compact, detached view of a sitemap entry used to render
// navigation. Title is the entry's nav title when it has one.
type TocView struct {
	URL       string            `json:"url"`
	Title     string            `json:"title"`
	Icon      string            `json:"icon,omitempty"`
	Document  string            `json:"document,omitempty"`
	Bury      bool              `json:"bury,omitempty"`
	IsActive  bool              `json:"isActive"`
	IsOpen    bool              `json:"isOpen"`
	ExtraData map[string]string `json:"extraData,omitempty"`
	Children  []*TocView        `json:"children,omitempty"`
}

// SitemapView is the navigation as seen from one page.
type SitemapView struct {
	Sections    []*TocView `json:"sections"`
	Subsections []*TocView `json:"subsections"`
	TOC         []*TocView `json:"toc"`

	CurrentSection    *TocView `json:"currentSection,omitempty"`
	CurrentSubsection *TocView `json:"currentSubsection,omitempty"`
	CurrentPage       *TocView `json:"currentPage,omitempty"`
}

// Location is where a sitemap entry lives on disk.
type Location struct {
	Primary     string `json:"primary"`
	Translation string `json:"translation,omitempty"`
	URL         string `json:"url,omitempty"`
}

// lineagePath addresses an entry by indices. Subsection is -1 when a
// section itself matched; TOC is empty unless a TOC item matched.
type lineagePath struct {
	Section    int
	Subsection int
	TOC        []int
}

// lineage finds the first entry, in pre-order, whose id matches path.
func (sm *Sitemap) lineage(path string) (lineagePath, bool) {
	path = stripQuery(path)
	for i, sec := range sm.Sections {
		if idMatches(&sec.Element, path) {
			return lineagePath{Section: i, Subsection: -1}, true
		}
		for j, sub := range sec.Subsections {
			if idMatches(&sub.Element, path) {
				return lineagePath{Section: i, Subsection: j}, true
			}
			if toc, ok := findTOC(sub.TOC, path); ok {
				return lineagePath{Section: i, Subsection: j, TOC: toc}, true
			}
		}
	}
	return lineagePath{}, false
}

// elements returns the matched entry's ancestors followed by the entry.
func (l lineagePath) elements(sm *Sitemap) []*Element {
	sec := sm.Sections[l.Section]
	nodes := []*Element{&sec.Element}
	if l.Subsection < 0 {
		return nodes
	}
	sub := sec.Subsections[l.Subsection]
	nodes = append(nodes, &sub.Element)
	items := sub.TOC
	for _, k := range l.TOC {
		nodes = append(nodes, &items[k].Element)
		items = items[k].Children
	}
	return nodes
}

func findTOC(items []*TocItem, path string) ([]int, bool) {
	for k, item := range items {
		if idMatches(&item.Element, path) {
			return []int{k}, true
		}
		if rest, ok := findTOC(item.Children, path); ok {
			return append([]int{k}, rest...), true
		}
	}
	return nil, false
}

func idMatches(e *Element, path string) bool {
	return e.ID != "" && URLsMatch(e.ID, path)
}

// ResolveDocument finds the entry serving path. ExtraData accumulates the
// extra data of every ancestor, overridden by the entry's own.
// The bool result is false if no entry matches.
func (sm *Sitemap) ResolveDocument(path string) (*Resolution, bool) {
	l, ok := sm.lineage(path)
	if !ok {
		return nil, false
	}
	nodes := l.elements(sm)
	var extra map[string]string
	for _, e := range nodes {
		extra = copyExtra(extra, e.ExtraData)
	}
	matched := nodes[len(nodes)-1]
	return &Resolution{
		Document:     matched.Document,
		FileLocation: matched.FileLocation,
		Bindings:     []Binding{},
		ExtraData:    extra,
	}, true
}

// ViewFor returns the navigation as seen from path, or nil if no entry
// matches. Entries on the active lineage are always shown; other entries
// marked skip are hidden.
func (sm *Sitemap) ViewFor(path string) *SitemapView {
	l, ok := sm.lineage(path)
	if !ok {
		return nil
	}
	nodes := l.elements(sm)

	view := &SitemapView{
		Sections:    []*TocView{},
		Subsections: []*TocView{},
		TOC:         []*TocView{},
	}
	for i, sec := range sm.Sections {
		active := i == l.Section
		if sec.Skip && !active {
			continue
		}
		v := compactView(&sec.Element)
		v.IsActive = active
		view.Sections = append(view.Sections, v)
	}

	sec := sm.Sections[l.Section]
	view.CurrentSection = compactView(&sec.Element)
	view.CurrentSection.IsActive = true

	for j, sub := range sec.Subsections {
		active := j == l.Subsection
		if !sub.Visible || (sub.Skip && !active) {
			continue
		}
		v := compactView(&sub.Element)
		v.IsActive = active
		view.Subsections = append(view.Subsections, v)
	}

	var source *Subsection
	switch {
	case l.Subsection >= 0:
		source = sec.Subsections[l.Subsection]
		if source.Visible {
			view.CurrentSubsection = compactView(&source.Element)
			view.CurrentSubsection.IsActive = true
		}
	case len(sec.Subsections) > 0 && !sec.Subsections[0].Visible:
		source = sec.Subsections[0]
	}
	if source != nil {
		view.TOC = tocViews(source.TOC, l.TOC)
	}

	view.CurrentPage = compactView(nodes[len(nodes)-1])
	view.CurrentPage.IsActive = true
	return view
}

// tocViews renders items. path holds the indices of the active lineage
// below this level: the matched item is active and open, its ancestors
// are open.
func tocViews(items []*TocItem, path []int) []*TocView {
	views := make([]*TocView, 0, len(items))
	for k, item := range items {
		onPath := len(path) > 0 && path[0] == k
		if item.Skip && !onPath {
			continue
		}
		v := compactView(&item.Element)
		var rest []int
		if onPath {
			v.IsOpen = true
			v.IsActive = len(path) == 1
			rest = path[1:]
		}
		if len(item.Children) > 0 {
			v.Children = tocViews(item.Children, rest)
		}
		views = append(views, v)
	}
	return views
}

func compactView(e *Element) *TocView {
	return &TocView{
		URL:       e.ID,
		Title:     e.DisplayTitle(),
		Icon:      e.Icon,
		Document:  e.Document,
		Bury:      e.Bury,
		ExtraData: copyExtra(nil, e.ExtraData),
	}
}

// Readers returns the groups allowed to read path: the sitemap's readers,
// every ancestor's and the entry's own, followed by all writers computed
// the same way. Names unknown to groups are dropped. The bool result is
// true only if the entry and all of its ancestors are confidential.
func (sm *Sitemap) Readers(path string, groups GroupRegistry) ([]*Group, bool) {
	readers := [][]string{sm.ReaderNames}
	writers := [][]string{sm.WriterNames}
	confidential := true
	if l, ok := sm.lineage(path); ok {
		for _, e := range l.elements(sm) {
			readers = append(readers, e.Readers)
			writers = append(writers, e.Writers)
			confidential = confidential && e.Confidential
		}
	}
	names := unionNames(append(readers, writers...)...)
	return lookupGroups(names, groups), confidential
}

// Writers returns the groups allowed to write path: the sitemap's writers
// followed by every ancestor's and the entry's own. Names unknown to groups
// are dropped.
func (sm *Sitemap) Writers(path string, groups GroupRegistry) []*Group {
	writers := [][]string{sm.WriterNames}
	if l, ok := sm.lineage(path); ok {
		for _, e := range l.elements(sm) {
			writers = append(writers, e.Writers)
		}
	}
	return lookupGroups(unionNames(writers...), groups)
}

// AllLocations lists every entry backed by a file: sections, visible
// subsections, then TOC items in pre-order.
func (sm *Sitemap) AllLocations() []Location {
	var locs []Location
	add := func(e *Element) {
		if e.FileLocation == "" {
			return
		}
		locs = append(locs, Location{
			Primary:     e.FileLocation,
			Translation: e.TranslationFileLocation,
			URL:         e.ID,
		})
	}
	var walk func(items []*TocItem)
	walk = func(items []*TocItem) {
		for _, item := range items {
			add(&item.Element)
			walk(item.Children)
		}
	}
	for _, sec := range sm.Sections {
		add(&sec.Element)
		for _, sub := range sec.Subsections {
			if sub.Visible {
				add(&sub.Element)
			}
			walk(sub.TOC)
		}
	}
	return locs
}

func unionNames(lists ...[]string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, list := range lists {
		for _, name := range list {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

func lookupGroups(names []string, groups GroupRegistry) []*Group {
	found := []*Group{}
	if groups == nil {
		return found
	}
	for _, name := range names {
		if g, ok := groups.FindGroup(name); ok {
			found = append(found, g)
		}
	}
	return found
}

func copyExtra(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
