package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/sitemark"
	smprom "github.com/fwojciec/sitemark/prometheus"
	"github.com/spf13/afero"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Fs      afero.Fs
	Root    string
	Loader  sitemark.Loader
	Groups  sitemark.GroupService
	IDs     sitemark.IDService
	Metrics *smprom.Metrics
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Root        string `help:"Package directory (default: $SITEMARK_ROOT or .)"`
	Verbose     bool   `short:"v" help:"Log file resolution at debug level"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this file on exit"`

	Check      CheckCmd      `cmd:"" help:"Parse the sitemap and dynamic urls and bind every entry to a file"`
	Resolve    ResolveCmd    `cmd:"" help:"Show the document serving a path"`
	View       ViewCmd       `cmd:"" help:"Show the navigation as seen from a path"`
	Readers    ReadersCmd    `cmd:"" help:"List the groups allowed to read a path"`
	Writers    WritersCmd    `cmd:"" help:"List the groups allowed to write a path"`
	Locations  LocationsCmd  `cmd:"" help:"List every entry backed by a file"`
	SitemapXML SitemapXMLCmd `cmd:"" name:"sitemap-xml" help:"Export locations as sitemap.xml"`
	Groups     GroupsCmd     `cmd:"" help:"Manage user groups"`
	IDs        IDsCmd        `cmd:"" name:"ids" help:"Manage global ids"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	SitemapXML string `name:"sitemap-xml" help:"Existing sitemap.xml to compare against the package"`
	BaseURL    string `name:"base-url" help:"Absolute URL the package is served from (with --sitemap-xml)"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	Path string `arg:"" help:"Request path"`
}

// ViewCmd is the "view" subcommand.
type ViewCmd struct {
	Path string `arg:"" help:"Request path"`
}

// ReadersCmd is the "readers" subcommand.
type ReadersCmd struct {
	Path string `arg:"" help:"Request path"`
}

// WritersCmd is the "writers" subcommand.
type WritersCmd struct {
	Path string `arg:"" help:"Request path"`
}

// LocationsCmd is the "locations" subcommand.
type LocationsCmd struct{}

// SitemapXMLCmd is the "sitemap-xml" subcommand.
type SitemapXMLCmd struct {
	BaseURL string `name:"base-url" required:"" help:"Absolute URL the package is served from"`
}

// GroupsCmd groups the "groups" subcommands.
type GroupsCmd struct {
	Add    GroupsAddCmd    `cmd:"" help:"Create a group"`
	List   GroupsListCmd   `cmd:"" help:"List groups of the package"`
	Delete GroupsDeleteCmd `cmd:"" help:"Delete a group"`
}

// GroupsAddCmd is the "groups add" subcommand.
type GroupsAddCmd struct {
	Name    string   `arg:"" help:"Group name as used in readers: and writers: lines"`
	Title   string   `help:"Display title"`
	Members []string `short:"m" name:"member" help:"Member identity (repeatable)"`
	Package string   `help:"Package name (default: the manifest's)"`
}

// GroupsListCmd is the "groups list" subcommand.
type GroupsListCmd struct {
	Package string `help:"Package name (default: the manifest's)"`
}

// GroupsDeleteCmd is the "groups delete" subcommand.
type GroupsDeleteCmd struct {
	ID string `arg:"" help:"Group ID"`
}

// IDsCmd groups the "ids" subcommands.
type IDsCmd struct {
	Set    IDsSetCmd    `cmd:"" help:"Register an anchor"`
	List   IDsListCmd   `cmd:"" help:"List anchors of the package"`
	Delete IDsDeleteCmd `cmd:"" help:"Remove an anchor"`
}

// IDsSetCmd is the "ids set" subcommand.
type IDsSetCmd struct {
	Anchor  string `arg:"" help:"Anchor name"`
	URL     string `arg:"" name:"url" help:"URL the anchor points to"`
	Package string `help:"Package name (default: the manifest's)"`
}

// IDsListCmd is the "ids list" subcommand.
type IDsListCmd struct {
	Package string `help:"Package name (default: the manifest's)"`
}

// IDsDeleteCmd is the "ids delete" subcommand.
type IDsDeleteCmd struct {
	Anchor  string `arg:"" help:"Anchor name"`
	Package string `help:"Package name (default: the manifest's)"`
}
