// Package afero binds sitemap entries to package files through an afero
// filesystem.
package afero

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/sitemark"
	"github.com/spf13/afero"
)

// Ensure FileResolver implements sitemark.FileResolver at compile time.
var _ sitemark.FileResolver = (*FileResolver)(nil)

// FileResolver implements sitemark.FileResolver over an afero.Fs.
type FileResolver struct {
	fs afero.Fs
}

// NewFileResolver creates a new FileResolver reading from fs.
func NewFileResolver(fs afero.Fs) *FileResolver {
	return &FileResolver{fs: fs}
}

// ResolveDocumentID maps a document id to a file inside the package root
// and returns the root-joined path.
func (r *FileResolver) ResolveDocumentID(ctx context.Context, pkg *sitemark.Package, id string) (string, error) {
	rel, err := r.find(ctx, pkg.Root, Candidates(id, pkg.Extensions()))
	if err != nil {
		return "", err
	}
	if rel == "" {
		return "", sitemark.Errorf(sitemark.ENOTFOUND, "%s: no document for id %q", pkg.Name, id)
	}
	return filepath.Join(pkg.Root, rel), nil
}

// ResolveInRoot looks for id under an arbitrary root using the default
// document extensions. The returned path is relative to root.
func (r *FileResolver) ResolveInRoot(ctx context.Context, root, id string) (string, error) {
	rel, err := r.find(ctx, root, Candidates(id, sitemark.DefaultDocumentExtensions))
	if err != nil {
		return "", err
	}
	if rel == "" {
		return "", sitemark.Errorf(sitemark.ENOTFOUND, "no file for %q in %s", id, root)
	}
	return rel, nil
}

// find returns the first candidate that exists as a regular file under
// root, or "" when none does.
func (r *FileResolver) find(ctx context.Context, root string, candidates []string) (string, error) {
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fi, err := r.fs.Stat(filepath.Join(root, filepath.FromSlash(c)))
		if err != nil {
			continue
		}
		if !fi.IsDir() {
			return c, nil
		}
	}
	return "", nil
}

// Candidates lists the relative file paths that may serve id, in order.
// Example: "/docs/intro/" with [.ftd .md] → docs/intro.ftd, docs/intro/index.ftd,
// docs/intro.md, docs/intro/index.md.
func Candidates(id string, extensions []string) []string {
	p := cleanID(id)
	if p == "" {
		out := make([]string, 0, len(extensions)+1)
		for _, ext := range extensions {
			out = append(out, "index"+ext)
		}
		return append(out, "README.md")
	}
	if hasExtension(p) {
		return []string{p}
	}
	out := make([]string, 0, 2*len(extensions))
	for _, ext := range extensions {
		out = append(out, p+ext, path.Join(p, "index"+ext))
	}
	return out
}

// cleanID strips the query, fragment and surrounding slashes of id.
func cleanID(id string) string {
	if i := strings.IndexAny(id, "?#"); i != -1 {
		id = id[:i]
	}
	return strings.Trim(path.Clean("/"+id), "/")
}

func hasExtension(p string) bool {
	return path.Ext(p) != ""
}
