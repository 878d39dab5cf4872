package main_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/hastitle"
	main "github.com/fwojciec/hastitle/cmd/hastitle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.Dir = t.TempDir()
	m.Terminal = false
	return m
}

func writePage(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"--help"}, {"help"}, {"lint", "--help"}} {
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain(t).Run(context.Background(), args, stdout, stderr)

		require.NoError(t, err, "args %v", args)
		assert.Contains(t, stdout.String(), "Usage:")
	}

	stdout := &bytes.Buffer{}
	_ = newTestMain(t).Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})
	for _, cmd := range []string{"check", "lint", "inspect", "history"} {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_Check(t *testing.T) {
	t.Parallel()

	t.Run("default command finds title", func(t *testing.T) {
		t.Parallel()

		err := newTestMain(t).Run(context.Background(),
			[]string{"<html><head><title>Home</title></head></html>"},
			&bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, 0, main.ExitCode(err))
	})

	t.Run("template block counts", func(t *testing.T) {
		t.Parallel()

		err := newTestMain(t).Run(context.Background(),
			[]string{"check", "{% block title %}Blog{% endblock %}"},
			&bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
	})

	t.Run("print echoes trimmed title", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}

		err := newTestMain(t).Run(context.Background(),
			[]string{"check", "--print", "<head><title>  Home  </title></head>"},
			stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "Home\n", stdout.String())
	})

	t.Run("missing title exits 1 silently", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain(t).Run(context.Background(),
			[]string{"check", "<body><title>X</title></body>"},
			stdout, stderr)

		require.Error(t, err)
		assert.Equal(t, hastitle.ENOTITLE, hastitle.ErrorCode(err))
		assert.Equal(t, 1, main.ExitCode(err))
		assert.Empty(t, stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("missing argument is a usage error", func(t *testing.T) {
		t.Parallel()

		err := newTestMain(t).Run(context.Background(), []string{"--verbose", "check"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, 2, main.ExitCode(err))
	})

	t.Run("no arguments is a usage error", func(t *testing.T) {
		t.Parallel()

		err := newTestMain(t).Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, 2, main.ExitCode(err))
	})

	t.Run("document text starting with a dash", func(t *testing.T) {
		t.Parallel()

		frontMatter := "---\nlayout: base\n---\n{% block title %} Hello {% endblock %}"
		for _, args := range [][]string{
			{frontMatter},
			{"-<head><title>X</title></head>"},
			{"check", frontMatter},
			{"check", "--print", frontMatter},
			{"--verbose", frontMatter},
			{"check", "--", "-<head><title>X</title></head>"},
		} {
			err := newTestMain(t).Run(context.Background(), args, &bytes.Buffer{}, &bytes.Buffer{})

			require.NoError(t, err, "args %q", args)
			assert.Equal(t, 0, main.ExitCode(err))
		}
	})

	t.Run("dash text without a title exits 1", func(t *testing.T) {
		t.Parallel()

		err := newTestMain(t).Run(context.Background(),
			[]string{"--help-me<body></body>"},
			&bytes.Buffer{}, &bytes.Buffer{})

		assert.Equal(t, hastitle.ENOTITLE, hastitle.ErrorCode(err))
		assert.Equal(t, 1, main.ExitCode(err))
	})

	t.Run("lone argument is always document text", func(t *testing.T) {
		t.Parallel()

		for _, text := range []string{"-h", "-v", "check", "lint", "inspect", "--config=x"} {
			stdout := &bytes.Buffer{}

			err := newTestMain(t).Run(context.Background(), []string{text}, stdout, &bytes.Buffer{})

			assert.Equal(t, hastitle.ENOTITLE, hastitle.ErrorCode(err), "text %q", text)
			assert.Equal(t, 1, main.ExitCode(err), "text %q", text)
			assert.NotContains(t, stdout.String(), "Usage:", "text %q", text)
		}
	})

	t.Run("verbose logs extraction attempts", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		err := newTestMain(t).Run(context.Background(),
			[]string{"--verbose", "check", "<head><title>Home</title></head>"},
			&bytes.Buffer{}, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "strategy=html")
		assert.Contains(t, stderr.String(), "matched=true")
	})
}

func TestMain_Run_Config(t *testing.T) {
	t.Parallel()

	t.Run("markers come from nearest config file", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		writePage(t, m.Dir, ".hastitle.toml", "[markers]\ntemplate_open = \"{% block page_title %}\"\n")

		err := m.Run(context.Background(),
			[]string{"check", "{% block page_title %}Docs{% endblock %}"},
			&bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
	})

	t.Run("invalid config is a usage error", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		writePage(t, m.Dir, ".hastitle.toml", "concurrency = -3\n")

		err := m.Run(context.Background(), []string{"check", "x"}, &bytes.Buffer{}, &bytes.Buffer{})

		assert.Equal(t, hastitle.EINVALID, hastitle.ErrorCode(err))
		assert.Equal(t, 2, main.ExitCode(err))
	})

	t.Run("explicit config must exist", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)

		err := m.Run(context.Background(),
			[]string{"--config", filepath.Join(m.Dir, "missing.toml"), "check", "x"},
			&bytes.Buffer{}, &bytes.Buffer{})

		assert.Equal(t, hastitle.ENOTFOUND, hastitle.ErrorCode(err))
		assert.Equal(t, 1, main.ExitCode(err))
	})
}

func TestMain_Run_LintAndHistory(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	site := t.TempDir()
	writePage(t, site, "index.html", "<head><title>Home</title></head>")
	writePage(t, site, "about.html", "<head></head><body>About</body>")
	writePage(t, site, "blog/post.jinja", "{% block title %}Post{% endblock %}")
	dbPath := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(ctx, []string{"lint", "--db", dbPath, site}, stdout, stderr)

	require.Error(t, err)
	assert.Equal(t, hastitle.ENOTITLE, hastitle.ErrorCode(err))
	assert.Equal(t, 1, main.ExitCode(err))
	assert.Contains(t, stdout.String(), "MISSING ")
	assert.Contains(t, stdout.String(), "about.html")
	assert.NotContains(t, stdout.String(), "index.html")
	assert.Contains(t, stderr.String(), "1 of 3 pages missing a title")

	stdout.Reset()
	err = newTestMain(t).Run(ctx, []string{"history", "--db", dbPath}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "1/3 missing")
	runID := strings.Fields(stdout.String())[0]

	stdout.Reset()
	err = newTestMain(t).Run(ctx, []string{"history", "--db", dbPath, "--delete", runID}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "deleted run "+runID+"\n", stdout.String())

	stdout.Reset()
	err = newTestMain(t).Run(ctx, []string{"history", "--db", dbPath}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No runs recorded")
}

func TestMain_Run_LintClean(t *testing.T) {
	t.Parallel()

	site := t.TempDir()
	writePage(t, site, "index.html", "<head><title>Home</title></head>")

	stdout := &bytes.Buffer{}
	err := newTestMain(t).Run(context.Background(), []string{"lint", "--quiet", site}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Empty(t, stdout.String())
}

func TestMain_Run_LintMissingRoot(t *testing.T) {
	t.Parallel()

	err := newTestMain(t).Run(context.Background(),
		[]string{"lint", filepath.Join(t.TempDir(), "nope")},
		&bytes.Buffer{}, &bytes.Buffer{})

	assert.Equal(t, hastitle.ENOTFOUND, hastitle.ErrorCode(err))
	assert.Equal(t, 1, main.ExitCode(err))
}

func TestMain_Run_HistoryRequiresDB(t *testing.T) {
	t.Setenv("HASTITLE_DB", "")

	err := newTestMain(t).Run(context.Background(), []string{"history"}, &bytes.Buffer{}, &bytes.Buffer{})

	assert.Equal(t, hastitle.EINVALID, hastitle.ErrorCode(err))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, main.ExitCode(nil))
	assert.Equal(t, 2, main.ExitCode(hastitle.Errorf(hastitle.EINVALID, "bad flag")))
	assert.Equal(t, 1, main.ExitCode(hastitle.Errorf(hastitle.ENOTITLE, "no title")))
	assert.Equal(t, 1, main.ExitCode(errors.New("disk full")))
}

func TestMain_Run_LintRemote(t *testing.T) {
	t.Parallel()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sitemap.xml":
			fmt.Fprintf(w, "<urlset><url><loc>%[1]s/</loc></url><url><loc>%[1]s/about</loc></url></urlset>", srv.URL)
		case "/":
			fmt.Fprint(w, "<html><head><title>Home</title></head></html>")
		case "/about":
			fmt.Fprint(w, "<html><head></head><body>About</body></html>")
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	stdout := &bytes.Buffer{}
	err := newTestMain(t).Run(context.Background(),
		[]string{"lint", "--quiet", "--rps", "0", "--sitemap", srv.URL + "/sitemap.xml"},
		stdout, &bytes.Buffer{})

	assert.Equal(t, hastitle.ENOTITLE, hastitle.ErrorCode(err))
	assert.Equal(t, "MISSING "+srv.URL+"/about\n", stdout.String())
}

func TestMain_Run_LintNothing(t *testing.T) {
	t.Parallel()

	err := newTestMain(t).Run(context.Background(), []string{"lint", "--quiet"}, &bytes.Buffer{}, &bytes.Buffer{})

	assert.Equal(t, hastitle.EINVALID, hastitle.ErrorCode(err))
}
