package process

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sgf "github.com/q12we34rt5/tabularpcn"
)

const solvedGame = "(;B[aa]C[solver_status: WIN\n]" +
	"(;W[bb]C[solver_status: WIN\n];B[cc]C[solver_status: WIN\n])" +
	"(;W[dd]C[solver_status: WIN\nmatch_tt = true\n]))"

func writeGame(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	assert.Equal(t, "tabularpcn", cfg.Name)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, []string{".sgf"}, cfg.Extensions)
	assert.Equal(t, 2, cfg.ContextLines)
}

func TestParseConfigFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "name: solver-trees\nworkers: 3\nextensions:\n  - .sgf\n  - .pcn\ncontext-lines: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := ParseConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "solver-trees", cfg.Name)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, []string{".sgf", ".pcn"}, cfg.Extensions)
	assert.Equal(t, 4, cfg.ContextLines)
}

func TestParseConfigFileDefaultsEmptyFields(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("name: only-name\n"), 0o644))

	cfg, err := ParseConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "only-name", cfg.Name)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, []string{".sgf"}, cfg.Extensions)
}

func TestParseConfigFileMissing(t *testing.T) {
	t.Parallel()
	_, err := ParseConfigFile(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestFile(t *testing.T) {
	t.Parallel()
	path := writeGame(t, t.TempDir(), "game.sgf", solvedGame)

	report, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, path, report.Path)
	assert.Equal(t, 4, report.Nodes)
	assert.Equal(t, sgf.TypeAND, report.RootType)
	assert.Equal(t, uint64(4), report.TreeSize)
	assert.Equal(t, uint64(4), report.ProofTreeSize)
	assert.True(t, report.Solved)
}

func TestFileParseError(t *testing.T) {
	t.Parallel()
	path := writeGame(t, t.TempDir(), "bad.sgf", "(;B[aa]")

	_, err := File(path)
	require.Error(t, err)
	var gErr *sgf.GrammarError
	assert.ErrorAs(t, err, &gErr)
}

func TestFilesOverDirectory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeGame(t, dir, "a.sgf", solvedGame)
	writeGame(t, dir, "sub/b.sgf", "(;B[aa])")
	writeGame(t, dir, "notes.txt", "ignored")

	reports, err := Files(context.Background(), zap.NewNop(), []string{dir}, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, filepath.Join(dir, "a.sgf"), reports[0].Path)
	assert.Equal(t, filepath.Join(dir, "sub", "b.sgf"), reports[1].Path)
	assert.False(t, reports[1].Solved)
	assert.Equal(t, uint64(0), reports[1].ProofTreeSize)
}

func TestFilesMixedPaths(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	single := writeGame(t, dir, "single.sgf", solvedGame)
	sub := filepath.Join(dir, "trees")
	writeGame(t, dir, "trees/c.sgf", solvedGame)

	reports, err := Files(context.Background(), zap.NewNop(), []string{single, sub}, DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, reports, 2)
}

func TestFilesBadFileFails(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeGame(t, dir, "ok.sgf", solvedGame)
	writeGame(t, dir, "bad.sgf", "(;B[aa]))")

	_, err := Files(context.Background(), zap.NewNop(), []string{dir}, DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.sgf")
}

func TestFilesMissingPath(t *testing.T) {
	t.Parallel()
	_, err := Files(context.Background(), zap.NewNop(), []string{filepath.Join(t.TempDir(), "nope")}, DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error accessing")
}
