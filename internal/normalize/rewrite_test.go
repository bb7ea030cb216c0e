package normalize_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vk/sqlrake/internal/catalog"
	"github.com/vk/sqlrake/internal/ctxlog"
	"github.com/vk/sqlrake/internal/normalize"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return cat
}

func TestRewrite_PositionalURL(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t), []string{"www.site.com/vuln.php?id=1", "--batch"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"--url=www.site.com/vuln.php?id=1", "--batch"}, res.Argv)
}

func TestRewrite_PositionalURLOnlyFirst(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	// Only the very first argument gets the URL shorthand.
	res, err := normalize.Rewrite(testContext(t), []string{"--batch", "-u", "www.site.com/vuln.php?id=1"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"--batch", "-u", "www.site.com/vuln.php?id=1"}, res.Argv)
}

func TestRewrite_UnicodeDashes(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t), []string{"––url=http://x", "—batch"}, cat)
	require.NoError(t, err)
	// The en-dash run becomes "--"; the em-dash form first becomes "-batch"
	// and then gains its missing hyphen from the long-name fixup.
	require.Equal(t, []string{"--url=http://x", "--batch"}, res.Argv)
}

func TestRewrite_AdvancedHelpFixup(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t), []string{"-hh"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"-h"}, res.Argv)
	// The fix-up deliberately skips the basic-help marker.
	require.False(t, res.BasicHelp)
}

func TestRewrite_BasicHelp(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t), []string{"-h"}, cat)
	require.NoError(t, err)
	require.True(t, res.BasicHelp)
	require.Equal(t, []string{"-h"}, res.Argv)
}

func TestRewrite_WideCommaIsFatal(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	_, err := normalize.Rewrite(testContext(t), []string{"--ignore-code=200，500"}, cat)
	require.Error(t, err)
	require.Contains(t, err.Error(), "comma characters")
}

func TestRewrite_MiswrittenShortOption(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	_, err := normalize.Rewrite(testContext(t), []string{"-u=http://x"}, cat)
	require.Error(t, err)
	require.Contains(t, err.Error(), "miswritten")
}

func TestRewrite_MissingHyphenInjected(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t), []string{"-u", "http://x", "-data=id=1"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"-u", "http://x", "--data=id=1"}, res.Argv)
}

func TestRewrite_BareLongOptionIsFatal(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	_, err := normalize.Rewrite(testContext(t), []string{"data=1"}, cat)
	require.Error(t, err)
	require.Contains(t, err.Error(), "without a starting hyphen")
}

func TestRewrite_BareValueAfterOptionPassesThrough(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	// A name=value token directly after an option is that option's value.
	res, err := normalize.Rewrite(testContext(t), []string{"--data", "data=1"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"--data", "data=1"}, res.Argv)
}

func TestRewrite_IgnoredAndDeprecatedElided(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t),
		[]string{"--profile", "-u", "http://x", "--identify-waf"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"-u", "http://x"}, res.Argv)
}

func TestRewrite_SilentShorthand(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t), []string{"--silent", "-u", "http://x"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"-u", "http://x"}, res.Argv)
	require.True(t, res.VerbositySet)
	require.Equal(t, 0, res.Verbosity)
}

func TestRewrite_SessionFileKeepsShortS(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	// -s followed by a value is the session file option, not --silent.
	res, err := normalize.Rewrite(testContext(t), []string{"-u", "http://x", "-s", "session.sqlite"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"-u", "http://x", "-s", "session.sqlite"}, res.Argv)
	require.False(t, res.VerbositySet)
}

func TestRewrite_LegacyRenames(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t),
		[]string{"--data-raw=id=1", "--drop-cookie", "--auth-creds=user:pass"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"--data=id=1", "--drop-set-cookie", "--auth-cred=user:pass"}, res.Argv)
}

func TestRewrite_MangledTamperElided(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t), []string{"--tamperspace2comment", "-u", "http://x"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"-u", "http://x"}, res.Argv)
}

func TestRewrite_AggregatesRepeatedOptions(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t),
		[]string{"--tamper", "a", "--tamper", "b", "--tamper", "c"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"--tamper", "a,b,c"}, res.Argv)
}

func TestRewrite_AggregatesInlineForm(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t),
		[]string{"--skip=a", "--skip=b", "--ignore-code=401", "--ignore-code", "500"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"--skip=a,b", "--ignore-code=401,500"}, res.Argv)
}

func TestRewrite_HeaderAccumulation(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t),
		[]string{"-H", "X-A: 1", "--header=X-B: 2", "-u", "http://x"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"X-A: 1", "X-B: 2"}, res.ExtraHeaders)
	// Header tokens still reach the parser.
	require.Equal(t, []string{"-H", "X-A: 1", "--header=X-B: 2", "-u", "http://x"}, res.Argv)
}

func TestRewrite_ExactAliases(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t), []string{"--deps", "--disable-colouring"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"--dependencies", "--disable-coloring"}, res.Argv)
}

func TestRewrite_RequestFileMultiLoad(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	dir := t.TempDir()
	first := filepath.Join(dir, "req1.txt")
	second := filepath.Join(dir, "req2.txt")
	require.NoError(t, os.WriteFile(first, []byte("GET / HTTP/1.1\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("GET /a HTTP/1.1\n"), 0o600))

	res, err := normalize.Rewrite(testContext(t), []string{"-r", first, second, "--batch"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"-r", first + "," + second, "--batch"}, res.Argv)
}

func TestRewrite_RequestFileStopsAtNonFile(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	dir := t.TempDir()
	first := filepath.Join(dir, "req1.txt")
	second := filepath.Join(dir, "req2.txt")
	require.NoError(t, os.WriteFile(first, []byte("GET / HTTP/1.1\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("GET /a HTTP/1.1\n"), 0o600))

	// The first token that is not an existing file stops the scan and stays
	// in argv unconsumed.
	res, err := normalize.Rewrite(testContext(t),
		[]string{"-r", first, second, "notfound.txt", "--batch"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"-r", first + "," + second, "notfound.txt", "--batch"}, res.Argv)
}

func TestRewrite_ThreadsForceMarker(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t), []string{"-u", "http://x", "--threads", "44!"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"-u", "http://x", "--threads", "44"}, res.Argv)
	require.True(t, res.SkipThreadCheck)
}

func TestRewrite_ThreadsForceMarkerInline(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t), []string{"--threads=44!"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"--threads=44"}, res.Argv)
	require.True(t, res.SkipThreadCheck)
}

func TestRewrite_VersionShortCircuits(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t), []string{"-u", "http://x", "--version", "--nonsense"}, cat)
	require.NoError(t, err)
	require.True(t, res.ShowVersion)
}

func TestRewrite_VerbosityShorthand(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t), []string{"-vvv", "-u", "http://x"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"-u", "http://x"}, res.Argv)
	require.True(t, res.VerbositySet)
	require.Equal(t, 3, res.Verbosity)
}

func TestRewrite_CombinedInvocation(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	res, err := normalize.Rewrite(testContext(t), []string{
		"www.site.com/vuln.php?id=1",
		"-H", "X-A: 1",
		"--skip=a", "--skip=b",
		"--threads", "4!",
		"-vv",
	}, cat)
	require.NoError(t, err)

	want := &normalize.Result{
		Argv: []string{
			"--url=www.site.com/vuln.php?id=1",
			"-H", "X-A: 1",
			"--skip=a,b",
			"--threads", "4",
		},
		ExtraHeaders:    []string{"X-A: 1"},
		Verbosity:       2,
		VerbositySet:    true,
		SkipThreadCheck: true,
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("rewrite result mismatch (-want +got):\n%s", diff)
	}
}

func TestRewrite_VerbosityWithExplicitValueKept(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	// -v followed by a bare number is the regular option form.
	res, err := normalize.Rewrite(testContext(t), []string{"-v", "3", "-u", "http://x"}, cat)
	require.NoError(t, err)
	require.Equal(t, []string{"-v", "3", "-u", "http://x"}, res.Argv)
	require.False(t, res.VerbositySet)
}
