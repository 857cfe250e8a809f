package tailr

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	color.NoColor = true
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	filename := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))
	return filename
}

func newTestTailer(cfg Config) (*Tailer, *bytes.Buffer, *bytes.Buffer) {
	stdout := bytes.NewBufferString("")
	stderr := bytes.NewBufferString("")
	return &Tailer{
		Config: cfg,
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

func TestRunLines(t *testing.T) {
	tmpdir := t.TempDir()
	filename := writeFile(t, tmpdir, "ten.txt", ten)

	cfg, err := NewConfig("-3", "", false, false)
	require.NoError(t, err)
	tl, stdout, stderr := newTestTailer(cfg)
	require.NoError(t, tl.Run([]string{filename}))
	assert.Equal(t, "8\n9\n10\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunBytes(t *testing.T) {
	tmpdir := t.TempDir()
	filename := writeFile(t, tmpdir, "twelve.txt", twelve)
	empty := writeFile(t, tmpdir, "empty.txt", "")

	tests := []struct {
		name  string
		bytes string
		file  string
		want  string
	}{
		{"whole file", "+0", filename, twelve},
		{"empty file", "-5", empty, ""},
		{"from start of empty file", "+0", empty, ""},
		{"last seven", "7", filename, "twelve\n"},
		{"take zero", "0", filename, ""},
		{"anchored", "+60", filename, "lve\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig("", tc.bytes, false, false)
			require.NoError(t, err)
			tl, stdout, _ := newTestTailer(cfg)
			require.NoError(t, tl.Run([]string{tc.file}))
			assert.Equal(t, tc.want, stdout.String())
		})
	}
}

func TestRunHeaders(t *testing.T) {
	tmpdir := t.TempDir()
	one := writeFile(t, tmpdir, "one.txt", "one line with 24 bytes!\n")
	two := writeFile(t, tmpdir, "ten.txt", ten)

	cfg, err := NewConfig("-1", "", false, false)
	require.NoError(t, err)
	tl, stdout, _ := newTestTailer(cfg)
	require.NoError(t, tl.Run([]string{one, two}))
	want := "==> " + one + " <==\none line with 24 bytes!\n" +
		"\n==> " + two + " <==\n10\n"
	assert.Equal(t, want, stdout.String())

	cfg.Quiet = true
	tl, stdout, _ = newTestTailer(cfg)
	require.NoError(t, tl.Run([]string{one, two}))
	assert.Equal(t, "one line with 24 bytes!\n10\n", stdout.String())
}

func TestRunSkipsUnopenable(t *testing.T) {
	tmpdir := t.TempDir()
	missing := filepath.Join(tmpdir, "missing.txt")
	filename := writeFile(t, tmpdir, "ten.txt", ten)

	cfg, err := NewConfig("-2", "", false, false)
	require.NoError(t, err)
	tl, stdout, stderr := newTestTailer(cfg)
	err = tl.Run([]string{missing, filename, tmpdir})
	assert.ErrorIs(t, err, ErrFilesSkipped)

	assert.Equal(t, "\n==> "+filename+" <==\n9\n10\n", stdout.String())
	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, missing+": no such file or directory", lines[0])
	assert.Equal(t, tmpdir+": is a directory", lines[1])
}

func TestRunDefaults(t *testing.T) {
	tmpdir := t.TempDir()
	filename := writeFile(t, tmpdir, "twelve.txt", twelve)

	tl, stdout, _ := newTestTailer(Config{})
	require.NoError(t, tl.Run([]string{filename}))
	assert.Equal(t, twelve[len("one\ntwo\n"):], stdout.String())
}

func TestRunAbortsOnReadError(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("needs /proc/self/mem")
	}
	tmpdir := t.TempDir()
	good := writeFile(t, tmpdir, "ten.txt", ten)

	cfg, err := NewConfig("-1", "", false, false)
	require.NoError(t, err)
	tl, stdout, stderr := newTestTailer(cfg)
	err = tl.Run([]string{"/proc/self/mem", good})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFilesSkipped)
	assert.Contains(t, err.Error(), "failed to read /proc/self/mem")
	assert.NotContains(t, stdout.String(), "==> "+good+" <==")
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunToStdout(t *testing.T) {
	tmpdir := t.TempDir()
	filename := writeFile(t, tmpdir, "ten.txt", ten)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	cfg, err := NewConfig("", "-3", false, false)
	require.NoError(t, err)
	runErr := Run(cfg, []string{filename})
	os.Stdout = orig
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)

	require.NoError(t, runErr)
	assert.Equal(t, "10\n", string(out))
}

func TestRunLogsFileIdentity(t *testing.T) {
	tmpdir := t.TempDir()
	filename := writeFile(t, tmpdir, "ten.txt", ten)

	core, logs := observer.New(zapcore.DebugLevel)
	cfg, err := NewConfig("-2", "", false, false)
	require.NoError(t, err)
	tl, _, _ := newTestTailer(cfg)
	tl.Logger = zap.New(core)
	require.NoError(t, tl.Run([]string{filename}))

	entries := logs.FilterMessage("extract lines").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, filename, fields["path"])
	assert.Contains(t, fields, "inode")
	assert.Contains(t, fields, "dev")
	assert.Equal(t, uint64(10), fields["lines"])
}
