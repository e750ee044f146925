// Package sitemark provides the navigation layer of a website-authoring
// framework. Authors declare a sitemap in a small indentation-sensitive
// language; sitemark parses it into a tree of sections, subsections and
// table-of-contents items, binds every entry to a document on disk, and
// answers per-request questions: which document serves a path, what the
// navigation looks like from that page, and which user groups may read or
// write it.
//
// This package contains domain types, interfaces and pure query logic
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., afero/, sqlite/,
// yaml/) or their concern (sitemap/).
package sitemark
