// Package yaml loads package manifests written in YAML.
package yaml

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fwojciec/sitemark"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ManifestName is the manifest file expected at the root of every package.
const ManifestName = "sitemark.yaml"

// manifest mirrors sitemark.yaml.
type manifest struct {
	Name     string `yaml:"name"`
	Language string `yaml:"language"`

	TranslationOf *struct {
		Name string `yaml:"name"`
		Root string `yaml:"root"`
	} `yaml:"translation-of"`

	// Sitemap and DynamicURLs name files relative to the package root.
	// The *Body variants inline the content instead.
	Sitemap         string `yaml:"sitemap"`
	SitemapBody     string `yaml:"sitemap-body"`
	DynamicURLs     string `yaml:"dynamic-urls"`
	DynamicURLsBody string `yaml:"dynamic-urls-body"`

	DocumentExtensions []string          `yaml:"document-extensions"`
	IDs                map[string]string `yaml:"ids"`
	Groups             []groupManifest   `yaml:"groups"`
}

type groupManifest struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Members []string `yaml:"members"`
}

// LoadPackage reads the manifest found in dir along with the sitemap and
// dynamic-url files it names. For a translation package the upstream
// manifest is loaded too, without following its own translation-of, and
// its sitemap is used when the translation declares none.
func LoadPackage(fsys afero.Fs, dir string) (*sitemark.Package, error) {
	pkg, m, err := load(fsys, dir)
	if err != nil {
		return nil, err
	}

	if m.TranslationOf != nil {
		root := m.TranslationOf.Root
		if root != "" && !filepath.IsAbs(root) {
			root = filepath.Join(dir, root)
		}
		upstream, err := loadUpstream(fsys, m.TranslationOf.Name, root)
		if err != nil {
			return nil, err
		}
		pkg.TranslationOf = upstream
		if pkg.SitemapBody == "" {
			pkg.SitemapBody = upstream.SitemapBody
		}
		if pkg.DynamicURLsBody == "" {
			pkg.DynamicURLsBody = upstream.DynamicURLsBody
		}
	}

	if err := pkg.Validate(); err != nil {
		return nil, err
	}
	return pkg, nil
}

// loadUpstream returns the upstream package of a translation. A missing
// upstream manifest is not an error: the name and root given by the
// translation are enough to resolve files.
func loadUpstream(fsys afero.Fs, name, root string) (*sitemark.Package, error) {
	if root == "" {
		return &sitemark.Package{Name: name}, nil
	}
	ok, err := afero.Exists(fsys, filepath.Join(root, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("stat upstream manifest: %w", err)
	}
	if !ok {
		return &sitemark.Package{Name: name, Root: root}, nil
	}

	upstream, _, err := load(fsys, root)
	if err != nil {
		return nil, err
	}
	if name != "" && upstream.Name != name {
		return nil, sitemark.Errorf(sitemark.EINVALID, "translation-of names %q but %s declares %q", name, root, upstream.Name)
	}
	return upstream, nil
}

func load(fsys afero.Fs, dir string) (*sitemark.Package, *manifest, error) {
	path := filepath.Join(dir, ManifestName)
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, sitemark.Errorf(sitemark.ENOTFOUND, "no %s in %s", ManifestName, dir)
	} else if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, nil, sitemark.Errorf(sitemark.EINVALID, "%s: %s", path, err.Error())
	}

	pkg := &sitemark.Package{
		Name:               m.Name,
		Root:               dir,
		Language:           m.Language,
		DocumentExtensions: m.DocumentExtensions,
		IDs:                sitemark.GlobalIDs(m.IDs),
	}

	pkg.SitemapBody, err = body(fsys, dir, m.Sitemap, m.SitemapBody)
	if err != nil {
		return nil, nil, err
	}
	pkg.DynamicURLsBody, err = body(fsys, dir, m.DynamicURLs, m.DynamicURLsBody)
	if err != nil {
		return nil, nil, err
	}

	for _, g := range m.Groups {
		pkg.Groups = append(pkg.Groups, &sitemark.Group{
			Name:    g.ID,
			Title:   g.Title,
			Package: m.Name,
			Members: g.Members,
		})
	}
	return pkg, &m, nil
}

// body returns inline when set, otherwise the content of file relative to
// dir. Both empty yields an empty body.
func body(fsys afero.Fs, dir, file, inline string) (string, error) {
	if inline != "" || file == "" {
		return inline, nil
	}
	data, err := afero.ReadFile(fsys, filepath.Join(dir, file))
	if err != nil {
		return "", sitemark.Errorf(sitemark.EINVALID, "read %s: %s", file, err.Error())
	}
	return string(data), nil
}
