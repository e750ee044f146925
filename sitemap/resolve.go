package sitemap

import (
	"context"
	"path/filepath"

	"github.com/fwojciec/sitemark"
	"golang.org/x/sync/errgroup"
)

// resolveConcurrency bounds how many sections are resolved at once.
const resolveConcurrency = 4

// ResolveLocations binds every entry of sm to the file serving it, in place.
// Sections are resolved concurrently; each owns a disjoint subtree.
//
// On error, including cancellation, sm is left partially resolved and must
// be discarded.
func ResolveLocations(ctx context.Context, sm *sitemark.Sitemap, pkg *sitemark.Package, files sitemark.FileResolver) error {
	if pkg == nil {
		return sitemark.Errorf(sitemark.EINVALID, "location resolution requires a package")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for _, sec := range sm.Sections {
		g.Go(func() error {
			return resolveSection(gctx, sec, pkg, files)
		})
	}
	return g.Wait()
}

// ResolveRouteLocations binds dynamic routes that name a document.
func ResolveRouteLocations(ctx context.Context, d *sitemark.DynamicURLs, pkg *sitemark.Package, files sitemark.FileResolver) error {
	for _, r := range d.Routes {
		if r.Document == "" {
			continue
		}
		if err := resolveElement(ctx, &r.Element, pkg, files); err != nil {
			return err
		}
	}
	return nil
}

func resolveSection(ctx context.Context, sec *sitemark.Section, pkg *sitemark.Package, files sitemark.FileResolver) error {
	if err := resolveElement(ctx, &sec.Element, pkg, files); err != nil {
		return err
	}
	for _, sub := range sec.Subsections {
		if err := resolveElement(ctx, &sub.Element, pkg, files); err != nil {
			return err
		}
		if err := resolveTOC(ctx, sub.TOC, pkg, files); err != nil {
			return err
		}
	}
	return nil
}

func resolveTOC(ctx context.Context, items []*sitemark.TocItem, pkg *sitemark.Package, files sitemark.FileResolver) error {
	for _, it := range items {
		if err := resolveElement(ctx, &it.Element, pkg, files); err != nil {
			return err
		}
		if err := resolveTOC(ctx, it.Children, pkg, files); err != nil {
			return err
		}
	}
	return nil
}

// resolveElement tries, in order: the package's id mapping, a file named by
// the id inside the package root and, for translations, inside the upstream
// root. Entries pointing outside the package are left unbound.
func resolveElement(ctx context.Context, e *sitemark.Element, pkg *sitemark.Package, files sitemark.FileResolver) error {
	target := e.Document
	if target == "" {
		if e.ID == "" || sitemark.IsExternalURL(e.ID) {
			return nil
		}
		target = e.ID
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := files.ResolveDocumentID(ctx, pkg, target)
	if err == nil {
		e.FileLocation = path
		if pkg.IsTranslation() {
			e.TranslationFileLocation = path
		}
		return nil
	} else if !sitemark.IsNotFound(err) {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	rel, err := files.ResolveInRoot(ctx, pkg.Root, target)
	if err == nil {
		e.FileLocation = filepath.Join(pkg.Root, rel)
		if pkg.IsTranslation() {
			e.TranslationFileLocation = e.FileLocation
		}
		return nil
	} else if !sitemark.IsNotFound(err) {
		return err
	}

	if pkg.IsTranslation() {
		if err := ctx.Err(); err != nil {
			return err
		}
		upstream := pkg.TranslationOf.Root
		rel, err := files.ResolveInRoot(ctx, upstream, target)
		if err == nil {
			e.FileLocation = filepath.Join(upstream, rel)
			return nil
		} else if !sitemark.IsNotFound(err) {
			return err
		}
	}

	return sitemark.UsageError("%s: no file found for %q (title %q)", pkg.Name, target, e.Title)
}
