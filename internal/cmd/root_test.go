package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/Sysinternals-jcd/internal/engine"
	"github.com/microsoft/Sysinternals-jcd/internal/models"
)

// isolate points every config and ignore lookup at an empty home directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("JCD_CONFIG", "")
	t.Setenv("JCD_DEBUG", "")
	return home
}

// workspace returns a symlink-free temp dir so paths compare equal to os.Getwd.
func workspace(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0755))
	}
}

func run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRootCommandHelp(t *testing.T) {
	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "jcd <pattern> [index]")
	assert.Contains(t, buf.String(), "--ignore-case")
	assert.Contains(t, buf.String(), "--no-ignore")
}

func TestVersionFlag(t *testing.T) {
	code, stdout, _ := run("--version")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, Version)
}

func TestScenarioIgnoreFileAndBypass(t *testing.T) {
	isolate(t)
	project := filepath.Join(workspace(t), "project")
	mkdirs(t, project, "src", "target")
	require.NoError(t, os.WriteFile(filepath.Join(project, ".jcdignore"), []byte("target\n"), 0644))
	t.Chdir(project)

	code, stdout, stderr := run("target", "0")
	assert.Equal(t, ExitNotFound, code)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)

	code, stdout, _ = run("-x", "target", "0")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, filepath.Join(project, "target")+"\n", stdout)

	code, stdout, _ = run("target", "--no-ignore")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, filepath.Join(project, "target")+"\n", stdout)
}

func TestScenarioExactThenPartial(t *testing.T) {
	isolate(t)
	cwd := filepath.Join(workspace(t), "root", "a")
	mkdirs(t, cwd, "un", "unmemorize", "lost+found")
	t.Chdir(cwd)

	code, stdout, _ := run("un")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, filepath.Join(cwd, "un")+"\n", stdout)

	code, stdout, _ = run("un", "1")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, filepath.Join(cwd, "unmemorize")+"\n", stdout)

	code, stdout, _ = run("un", "2")
	assert.Equal(t, ExitNotFound, code)
	assert.Empty(t, stdout)

	code, stdout, _ = run("--list", "un")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, filepath.Join(cwd, "un")+"\n"+filepath.Join(cwd, "unmemorize")+"\n", stdout)
	assert.NotContains(t, stdout, "lost+found")
}

func TestScenarioParentAndSibling(t *testing.T) {
	isolate(t)
	parent := filepath.Join(workspace(t), "parent")
	mkdirs(t, parent, "child1", "child2")
	t.Chdir(filepath.Join(parent, "child1"))

	code, stdout, _ := run("..", "0")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, parent+"\n", stdout)

	code, stdout, _ = run("../child2", "0")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, filepath.Join(parent, "child2")+"\n", stdout)
}

func TestCaseInsensitiveFlag(t *testing.T) {
	isolate(t)
	root := workspace(t)
	mkdirs(t, root, "Documents")
	t.Chdir(root)

	code, _, _ := run("documents")
	assert.Equal(t, ExitNotFound, code)

	code, stdout, _ := run("documents", "-i")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, filepath.Join(root, "Documents")+"\n", stdout)
}

func TestAbsoluteCompletion(t *testing.T) {
	isolate(t)
	root := workspace(t)
	work := filepath.Join(root, "alice", "work")
	mkdirs(t, work, "alice-notes", "bob")
	t.Chdir(root)

	code, stdout, _ := run("--list", filepath.Join(work, "ali"))
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, filepath.Join(work, "alice-notes")+"\n", stdout)

	code, stdout, _ = run(filepath.Join(work, "ali"), "0")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, filepath.Join(work, "alice-notes")+"\n", stdout)

	code, stdout, _ = run(filepath.Join(work, "ali"), "1")
	assert.Equal(t, ExitNotFound, code)
	assert.Empty(t, stdout)
}

func TestTrailingSlashOnLeafDirectory(t *testing.T) {
	isolate(t)
	root := workspace(t)
	mkdirs(t, root, "leaf")
	t.Chdir(root)

	code, stdout, stderr := run(filepath.Join(root, "leaf") + "/")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, filepath.Join(root, "leaf")+"\n", stdout)
	assert.Empty(t, stderr)
}

func TestUsageErrors(t *testing.T) {
	isolate(t)
	t.Chdir(workspace(t))

	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"missing pattern", nil, "missing pattern"},
		{"unknown flag", []string{"--bogus", "x"}, "unknown flag"},
		{"non-numeric index", []string{"x", "first"}, "invalid index"},
		{"negative index", []string{"x", "--", "-1"}, "invalid index"},
		{"too many arguments", []string{"a", "1", "2"}, "too many arguments"},
		{"list with index", []string{"-l", "a", "1"}, "--list"},
		{"empty pattern", []string{""}, "pattern is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := run(tt.args...)
			assert.Equal(t, ExitUsage, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Error: ")
			assert.Contains(t, stderr, tt.message)
			assert.Contains(t, stderr, "Usage:")

			code, stdout, stderr = run(append([]string{"--quiet"}, tt.args...)...)
			assert.Equal(t, ExitUsage, code)
			assert.Empty(t, stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestConfigErrors(t *testing.T) {
	home := isolate(t)
	t.Chdir(workspace(t))

	bad := filepath.Join(home, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("search: [unclosed\n"), 0644))
	code, stdout, stderr := run("--config", bad, "x")
	assert.Equal(t, ExitUnresolved, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "failed to load config")

	invalid := filepath.Join(home, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("search:\n  symlinks: sometimes\n"), 0644))
	t.Setenv("JCD_CONFIG", invalid)
	code, _, stderr = run("x")
	assert.Equal(t, ExitUnresolved, code)
	assert.Contains(t, stderr, "invalid configuration")
}

func TestConfigMaxDepth(t *testing.T) {
	home := isolate(t)
	root := workspace(t)
	mkdirs(t, root, "a/b/c/deep")
	t.Chdir(root)

	cfgDir := filepath.Join(home, ".config", "jcd")
	mkdirs(t, cfgDir)
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("search:\n  max_depth: 3\n"), 0644))

	code, _, _ := run("deep")
	assert.Equal(t, ExitNotFound, code)

	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("search:\n  max_depth: 4\n"), 0644))
	code, stdout, _ := run("deep")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, filepath.Join(root, "a", "b", "c", "deep")+"\n", stdout)
}

func TestDiagnosticsRespectQuiet(t *testing.T) {
	isolate(t)
	root := workspace(t)
	mkdirs(t, root, "keep")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".jcdignore"), []byte("(a+)+\n[broken\n"), 0644))
	t.Chdir(root)

	code, stdout, stderr := run("keep")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, filepath.Join(root, "keep")+"\n", stdout)
	assert.Contains(t, stderr, "[WARN]")
	assert.Contains(t, stderr, "(a+)+")
	assert.Contains(t, stderr, "[broken")

	code, stdout, stderr = run("keep", "-q")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, filepath.Join(root, "keep")+"\n", stdout)
	assert.Empty(t, stderr)
}

func TestDebugEnvironment(t *testing.T) {
	isolate(t)
	root := workspace(t)
	mkdirs(t, root, "here")
	t.Chdir(root)
	t.Setenv("JCD_DEBUG", "1")

	code, stdout, stderr := run("here")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, filepath.Join(root, "here")+"\n", stdout)
	assert.Contains(t, stderr, "[DEBUG]")
}

func TestLogFile(t *testing.T) {
	home := isolate(t)
	root := workspace(t)
	mkdirs(t, root, "here")
	t.Chdir(root)

	logPath := filepath.Join(home, "logs", "jcd.log")
	cfgPath := filepath.Join(home, "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf("log_level: debug\nlog_file: %s\n", logPath)), 0644))

	code, _, _ := run("--config", cfgPath, "--quiet", "here")
	require.Equal(t, ExitOK, code)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] jcd "+Version)
	assert.Contains(t, string(data), "resolved base="+root)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{fmt.Errorf("lookup: %w", engine.ErrNotFound), ExitNotFound},
		{&UsageError{Err: errors.New("bad")}, ExitUsage},
		{fmt.Errorf("x: %w", engine.ErrUnresolvableBase), ExitUnresolved},
		{&ConfigError{Err: errors.New("bad yaml")}, ExitUnresolved},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "%v", tt.err)
	}
}

func TestQuietRequested(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"x"}, false},
		{[]string{"-q", "x"}, true},
		{[]string{"x", "--quiet"}, true},
		{[]string{"--quiet=true"}, true},
		{[]string{"-iq", "x"}, true},
		{[]string{"-ix", "x"}, false},
		{[]string{"--", "-q"}, false},
		{[]string{"--query"}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, quietRequested(tt.args), "%v", tt.args)
	}
}

func TestWriteListTable(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })

	list := models.RankedList{
		{Path: "/w/src", Direction: models.Up, Depth: 1, Kind: models.Exact},
		{Path: "/w/proj/日本語src", Direction: models.Down, Depth: 12, Kind: models.Partial},
	}

	var buf bytes.Buffer
	require.NoError(t, writeList(&buf, list, true))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "#  KIND     DIR   DEPTH  NAME       PATH", lines[0])
	assert.Equal(t, "0  exact    up    1      src        /w/src", lines[1])
	assert.Equal(t, "1  partial  down  12     日本語src  /w/proj/日本語src", lines[2])
}

func TestWriteListPlain(t *testing.T) {
	list := models.RankedList{{Path: "/a"}, {Path: "/b"}}

	var buf bytes.Buffer
	require.NoError(t, writeList(&buf, list, false))
	assert.Equal(t, "/a\n/b\n", buf.String())
}
