package main_test

import (
	"testing"

	"github.com/fwojciec/sitemark"
	main "github.com/fwojciec/sitemark/cmd/sitemark"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports the parse error with its row", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(t, "# Home: /\n- a: b: c\n")

		err := (&main.CheckCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, sitemark.EINVALIDTOCITEM, sitemark.ErrorCode(err))
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "error: ambiguous title: URL")
		assert.Contains(t, stderr.String(), "  at: - a: b: c")
	})

	t.Run("reports missing files", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(t, "# Home: /\n- Ghost: /ghost/\n")

		err := (&main.CheckCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, sitemark.EUSAGE, sitemark.ErrorCode(err))
		assert.Contains(t, stderr.String(), `no file found for "/ghost/"`)
	})

	t.Run("accepts an up to date sitemap.xml", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(t, sitemapBody)
		require.NoError(t, afero.WriteFile(deps.Fs, "/site/sitemap.xml", []byte(`<urlset>
  <url><loc>https://acme.dev/</loc></url>
  <url><loc>https://acme.dev/docs/</loc></url>
  <url><loc>https://acme.dev/docs/intro/</loc></url>
</urlset>`), 0o644))

		err := (&main.CheckCmd{SitemapXML: "/site/sitemap.xml", BaseURL: "https://acme.dev"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "acme: 1 sections, 1 dynamic urls, 3 locations\n/site/sitemap.xml is up to date\n", stdout.String())
	})

	t.Run("reports missing and stale sitemap.xml entries", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(t, sitemapBody)
		require.NoError(t, afero.WriteFile(deps.Fs, "/site/sitemap.xml", []byte(`<urlset>
  <url><loc>https://acme.dev/</loc></url>
  <url><loc>https://acme.dev/docs/</loc></url>
  <url><loc>https://acme.dev/old/</loc></url>
</urlset>`), 0o644))

		err := (&main.CheckCmd{SitemapXML: "/site/sitemap.xml", BaseURL: "https://acme.dev"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, sitemark.EINVALID, sitemark.ErrorCode(err))
		assert.Contains(t, stdout.String(), "missing: https://acme.dev/docs/intro/\nstale: https://acme.dev/old/\n")
		assert.Equal(t, "error: /site/sitemap.xml is out of date: 1 missing, 1 stale\n", stderr.String())
	})

	t.Run("requires a base url to compare", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps(t, sitemapBody)

		err := (&main.CheckCmd{SitemapXML: "/site/sitemap.xml"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, sitemark.EINVALID, sitemark.ErrorCode(err))
	})
}

func TestResolveCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("sitemap entry with inherited extra data", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(t, sitemapBody)

		err := (&main.ResolveCmd{Path: "/docs/intro/"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "source: sitemap\nfile: /site/docs/intro.ftd\nextra layout: wide\nextra readers: staff\n", stdout.String())
	})

	t.Run("dynamic route with bindings", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(t, sitemapBody)

		err := (&main.ResolveCmd{Path: "/users/alice/"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, `source: dynamic
document: user.ftd
file: /site/user.ftd
param name (string): alice
extra document: user.ftd
`, stdout.String())
	})

	t.Run("unknown path", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(t, sitemapBody)

		err := (&main.ResolveCmd{Path: "/users/"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, sitemark.ENOTFOUND, sitemark.ErrorCode(err))
		assert.Contains(t, stderr.String(), `no document serves "/users/"`)
	})
}

func TestViewCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("marks the active lineage", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(t, sitemapBody)

		err := (&main.ViewCmd{Path: "/docs/intro/"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, `sections:
  * Home  /
subsections:
  * Docs  /docs/
toc:
  * Intro  /docs/intro/
current: Intro
`, stdout.String())
	})

	t.Run("path outside the sitemap", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps(t, sitemapBody)

		err := (&main.ViewCmd{Path: "/users/alice/"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, sitemark.ENOTFOUND, sitemark.ErrorCode(err))
	})
}

func TestReadersCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(t, sitemapBody)

	err := (&main.ReadersCmd{Path: "/docs/intro/"}).Run(deps)

	require.NoError(t, err)
	assert.Equal(t, "staff  alice\nconfidential: true\n", stdout.String())
}

func TestWritersCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(t, sitemapBody)

	err := (&main.WritersCmd{Path: "/docs/intro/"}).Run(deps)

	require.NoError(t, err)
	assert.Equal(t, "(no groups)\n", stdout.String())
}

func TestLocationsCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(t, sitemapBody)

	err := (&main.LocationsCmd{}).Run(deps)

	require.NoError(t, err)
	assert.Equal(t, "/  /site/index.ftd\n/docs/  /site/docs/index.ftd\n/docs/intro/  /site/docs/intro.ftd\n", stdout.String())
}

func TestSitemapXMLCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes the urlset", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(t, sitemapBody)

		err := (&main.SitemapXMLCmd{BaseURL: "https://acme.dev"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "<loc>https://acme.dev/</loc>")
		assert.Contains(t, stdout.String(), "<loc>https://acme.dev/docs/intro/</loc>")
	})

	t.Run("rejects a relative base url", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps(t, sitemapBody)

		err := (&main.SitemapXMLCmd{BaseURL: "acme.dev"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, sitemark.EINVALID, sitemark.ErrorCode(err))
	})
}
