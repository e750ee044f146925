package sitemap_test

import (
	"context"
	"testing"

	"github.com/fwojciec/sitemark"
	"github.com/fwojciec/sitemark/mock"
	"github.com/fwojciec/sitemark/sitemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notFound(id string) error {
	return sitemark.Errorf(sitemark.ENOTFOUND, "no document for %q", id)
}

func TestResolveLocations(t *testing.T) {
	t.Parallel()

	t.Run("binds entries through the package id mapping", func(t *testing.T) {
		t.Parallel()

		files := &mock.FileResolver{
			ResolveDocumentIDFn: func(_ context.Context, pkg *sitemark.Package, id string) (string, error) {
				return pkg.Root + id + "index.ftd", nil
			},
		}
		pkg := &sitemark.Package{Name: "acme", Root: "/src/acme"}

		sm, err := sitemap.Parse(context.Background(), "# Home: /\n## Docs: /docs/\n- Intro: /docs/intro/\n", sitemap.Options{
			DocID:   "acme/sitemap",
			Package: pkg,
			Files:   files,
		})

		require.NoError(t, err)
		home := sm.Sections[0]
		assert.Equal(t, "/src/acme/index.ftd", home.FileLocation)
		assert.Empty(t, home.TranslationFileLocation)
		assert.Equal(t, "/src/acme/docs/index.ftd", home.Subsections[0].FileLocation)
		assert.Equal(t, "/src/acme/docs/intro/index.ftd", home.Subsections[0].TOC[0].FileLocation)
	})

	t.Run("document attribute overrides the id", func(t *testing.T) {
		t.Parallel()

		var seen string
		files := &mock.FileResolver{
			ResolveDocumentIDFn: func(_ context.Context, _ *sitemark.Package, id string) (string, error) {
				seen = id
				return "/src/acme/" + id, nil
			},
		}
		pkg := &sitemark.Package{Name: "acme", Root: "/src/acme"}

		sm, err := sitemap.Parse(context.Background(), "# Home: /\ndocument: landing.ftd\n", sitemap.Options{Package: pkg, Files: files})

		require.NoError(t, err)
		assert.Equal(t, "landing.ftd", seen)
		assert.Equal(t, "/src/acme/landing.ftd", sm.Sections[0].FileLocation)
	})

	t.Run("falls back to the package root", func(t *testing.T) {
		t.Parallel()

		files := &mock.FileResolver{
			ResolveDocumentIDFn: func(_ context.Context, _ *sitemark.Package, id string) (string, error) {
				return "", notFound(id)
			},
			ResolveInRootFn: func(_ context.Context, root, id string) (string, error) {
				assert.Equal(t, "/src/acme", root)
				return "about.md", nil
			},
		}
		pkg := &sitemark.Package{Name: "acme", Root: "/src/acme"}

		sm, err := sitemap.Parse(context.Background(), "# About: /about/\n", sitemap.Options{Package: pkg, Files: files})

		require.NoError(t, err)
		assert.Equal(t, "/src/acme/about.md", sm.Sections[0].FileLocation)
	})

	t.Run("translation found in its own package records both locations", func(t *testing.T) {
		t.Parallel()

		files := &mock.FileResolver{
			ResolveDocumentIDFn: func(_ context.Context, _ *sitemark.Package, _ string) (string, error) {
				return "/src/fr/index.ftd", nil
			},
		}
		pkg := &sitemark.Package{
			Name:          "acme-fr",
			Root:          "/src/fr",
			TranslationOf: &sitemark.Package{Name: "acme", Root: "/src/en"},
		}

		sm, err := sitemap.Parse(context.Background(), "# Accueil: /\n", sitemap.Options{Package: pkg, Files: files})

		require.NoError(t, err)
		assert.Equal(t, "/src/fr/index.ftd", sm.Sections[0].FileLocation)
		assert.Equal(t, "/src/fr/index.ftd", sm.Sections[0].TranslationFileLocation)
	})

	t.Run("translation falls back to the upstream package", func(t *testing.T) {
		t.Parallel()

		files := &mock.FileResolver{
			ResolveDocumentIDFn: func(_ context.Context, _ *sitemark.Package, id string) (string, error) {
				return "", notFound(id)
			},
			ResolveInRootFn: func(_ context.Context, root, id string) (string, error) {
				if root == "/src/en" {
					return "index.ftd", nil
				}
				return "", notFound(id)
			},
		}
		pkg := &sitemark.Package{
			Name:          "acme-fr",
			Root:          "/src/fr",
			TranslationOf: &sitemark.Package{Name: "acme", Root: "/src/en"},
		}

		sm, err := sitemap.Parse(context.Background(), "# Accueil: /\n", sitemap.Options{Package: pkg, Files: files})

		require.NoError(t, err)
		assert.Equal(t, "/src/en/index.ftd", sm.Sections[0].FileLocation)
		assert.Empty(t, sm.Sections[0].TranslationFileLocation)
	})

	t.Run("missing file is a usage error", func(t *testing.T) {
		t.Parallel()

		files := &mock.FileResolver{
			ResolveDocumentIDFn: func(_ context.Context, _ *sitemark.Package, id string) (string, error) {
				return "", notFound(id)
			},
			ResolveInRootFn: func(_ context.Context, _, id string) (string, error) {
				return "", notFound(id)
			},
		}
		pkg := &sitemark.Package{Name: "acme", Root: "/src/acme"}

		_, err := sitemap.Parse(context.Background(), "# Ghost: /ghost/\n", sitemap.Options{Package: pkg, Files: files})

		require.Error(t, err)
		assert.Equal(t, sitemark.EUSAGE, sitemark.ErrorCode(err))
		assert.Contains(t, sitemark.ErrorMessage(err), `"/ghost/"`)
		assert.Contains(t, sitemark.ErrorMessage(err), `"Ghost"`)
	})

	t.Run("other resolver errors are returned as is", func(t *testing.T) {
		t.Parallel()

		files := &mock.FileResolver{
			ResolveDocumentIDFn: func(_ context.Context, _ *sitemark.Package, _ string) (string, error) {
				return "", sitemark.Errorf(sitemark.EINTERNAL, "disk on fire")
			},
		}
		pkg := &sitemark.Package{Name: "acme", Root: "/src/acme"}

		_, err := sitemap.Parse(context.Background(), "# Home: /\n", sitemap.Options{Package: pkg, Files: files})

		require.Error(t, err)
		assert.Equal(t, "disk on fire", sitemark.ErrorMessage(err))
	})

	t.Run("external urls are not looked up", func(t *testing.T) {
		t.Parallel()

		files := &mock.FileResolver{
			ResolveDocumentIDFn: func(_ context.Context, _ *sitemark.Package, id string) (string, error) {
				if sitemark.IsExternalURL(id) {
					return "", sitemark.Errorf(sitemark.EINTERNAL, "looked up %q", id)
				}
				return "/src/acme/index.ftd", nil
			},
		}
		pkg := &sitemark.Package{Name: "acme", Root: "/src/acme"}

		sm, err := sitemap.Parse(context.Background(), "# Home: /\n- GitHub: https://github.com/acme\n", sitemap.Options{Package: pkg, Files: files})

		require.NoError(t, err)
		assert.Empty(t, sm.Sections[0].Subsections[0].TOC[0].FileLocation)
	})

	t.Run("cancelled context stops resolution", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		files := &mock.FileResolver{
			ResolveDocumentIDFn: func(_ context.Context, _ *sitemark.Package, _ string) (string, error) {
				return "/src/acme/index.ftd", nil
			},
		}
		sm, err := sitemap.Parse(context.Background(), "# Home: /\n# Blog: /blog/\n", sitemap.Options{})
		require.NoError(t, err)

		err = sitemap.ResolveLocations(ctx, sm, &sitemark.Package{Name: "acme", Root: "/src/acme"}, files)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("package is required", func(t *testing.T) {
		t.Parallel()

		err := sitemap.ResolveLocations(context.Background(), &sitemark.Sitemap{}, nil, &mock.FileResolver{})

		require.Error(t, err)
		assert.Equal(t, sitemark.EINVALID, sitemark.ErrorCode(err))
	})
}

func TestResolveRouteLocations(t *testing.T) {
	t.Parallel()

	files := &mock.FileResolver{
		ResolveDocumentIDFn: func(_ context.Context, _ *sitemark.Package, id string) (string, error) {
			return "/src/acme/" + id, nil
		},
	}
	d, err := sitemap.ParseDynamicURLs(nil, "acme", `- User: /users/<string:name>/
  document: user.ftd
- Tag: /tags/<string:tag>/
`)
	require.NoError(t, err)

	err = sitemap.ResolveRouteLocations(context.Background(), d, &sitemark.Package{Name: "acme", Root: "/src/acme"}, files)

	require.NoError(t, err)
	assert.Equal(t, "/src/acme/user.ftd", d.Routes[0].FileLocation)
	assert.Empty(t, d.Routes[1].FileLocation)
}
