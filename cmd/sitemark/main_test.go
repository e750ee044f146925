package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	smafero "github.com/fwojciec/sitemark/afero"
	main "github.com/fwojciec/sitemark/cmd/sitemark"
	smprom "github.com/fwojciec/sitemark/prometheus"
	"github.com/fwojciec/sitemark/sitemap"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	manifest = `name: acme
sitemap: sitemap.txt
dynamic-urls: dynamic.txt
groups:
  - id: staff
    members: [alice]
`
	sitemapBody = `# Home: /
readers: staff
## Docs: /docs/
- Intro: /docs/intro/
  layout: wide
`
	dynamicBody = `- User: /users/<string:name>/
  document: user.ftd
`
)

// newPackageFs returns an in-memory filesystem holding a package at /site.
func newPackageFs(t *testing.T, sitemap string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/site/sitemark.yaml":  manifest,
		"/site/sitemap.txt":    sitemap,
		"/site/dynamic.txt":    dynamicBody,
		"/site/index.ftd":      "home",
		"/site/docs/index.ftd": "docs",
		"/site/docs/intro.ftd": "intro",
		"/site/user.ftd":       "user",
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return fs
}

// newDeps wires real loaders over an in-memory package.
func newDeps(t *testing.T, sitemap string) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	fs := newPackageFs(t, sitemap)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  stdout,
		Stderr:  stderr,
		Fs:      fs,
		Root:    "/site",
		Loader:  sitemapLoader(fs),
		Metrics: smprom.NewMetrics(prometheus.NewRegistry()),
	}, stdout, stderr
}

func sitemapLoader(fs afero.Fs) *sitemap.Loader {
	return sitemap.NewLoader(smafero.NewFileResolver(fs))
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	newMain := func(t *testing.T) *main.Main {
		t.Helper()
		m := main.NewMain()
		m.Fs = newPackageFs(t, sitemapBody)
		m.Root = "/site"
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		return m
	}

	t.Run("check loads the package", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain(t).Run(context.Background(), []string{"check"}, stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "acme: 1 sections, 1 dynamic urls, 3 locations\n", stdout.String())
		assert.Contains(t, stderr.String(), `msg="sitemap load"`)
	})

	t.Run("registry ids feed the sitemap", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		require.NoError(t, afero.WriteFile(m.Fs, "/site/sitemap.txt", []byte("# Home: /\n- Intro: intro\n"), 0o644))
		ctx := context.Background()

		err := m.Run(ctx, []string{"ids", "set", "intro", "/docs/intro/"}, &bytes.Buffer{}, &bytes.Buffer{})
		require.NoError(t, err)

		stdout := &bytes.Buffer{}
		err = m.Run(ctx, []string{"resolve", "/docs/intro/"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "file: /site/docs/intro.ftd")
	})

	t.Run("writes metrics on exit", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "metrics.prom")

		err := newMain(t).Run(context.Background(), []string{"--metrics-file", path, "resolve", "/users/bob/"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `sitemark_resolutions_total{source="dynamic"} 1`)
		assert.Contains(t, string(data), `sitemark_loads_total{outcome="ok"} 1`)
	})

	t.Run("verbose logs file resolution", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		err := newMain(t).Run(context.Background(), []string{"-v", "check"}, &bytes.Buffer{}, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), `msg="document resolution"`)
	})

	t.Run("no arguments prints help and fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}

		err := newMain(t).Run(context.Background(), nil, stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, stdout.String(), "check")
	})

	t.Run("unknown command", func(t *testing.T) {
		t.Parallel()

		err := newMain(t).Run(context.Background(), []string{"frobnicate"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})
}
