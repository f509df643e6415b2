package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/seqcheck/internal/history"
)

// runSeqcheck executes the root command with args and returns stdout.
func runSeqcheck(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// writeFixture creates the given files under a fresh temp dir.
func writeFixture(t *testing.T, files []string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
	return root
}

// noConfig returns a --config flag pointing at a nonexistent file so tests
// never pick up a developer's real config.
func noConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "no-config.yaml")
}

func TestCheckReportsMissingFiles(t *testing.T) {
	dir := writeFixture(t, []string{"img.001.png", "img.002.png", "img.004.png"})

	out, err := runSeqcheck(t, "check", "--config", noConfig(t), "--no-history", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "In "+dir+":")
	assert.Contains(t, out, "  Missing img.003.png\n")
	assert.Contains(t, out, "Total missing: 1 file in 1 dir\n")
	assert.Contains(t, out, "Processed 3 files in ")
}

func TestCheckNothingMissing(t *testing.T) {
	dir := writeFixture(t, []string{"img.001.png", "img.002.png"})

	out, err := runSeqcheck(t, "check", "--config", noConfig(t), "--no-history", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Nothing missing\n")
	assert.NotContains(t, out, "Missing img")
}

func TestCheckRecursive(t *testing.T) {
	dir := writeFixture(t, []string{
		"top.1.png", "top.3.png",
		"sub/frame.01.exr", "sub/frame.04.exr",
	})

	out, err := runSeqcheck(t, "check", "--config", noConfig(t), "--no-history", "-r", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Missing top.2.png")
	assert.Contains(t, out, "Missing frame.02.exr")
	assert.Contains(t, out, "Missing frame.03.exr")
	assert.Contains(t, out, "Total missing: 3 files in 2 dirs\n")
}

func TestCheckWithoutRecursiveSkipsSubdirs(t *testing.T) {
	dir := writeFixture(t, []string{
		"top.1.png", "top.2.png",
		"sub/frame.01.exr", "sub/frame.04.exr",
	})

	out, err := runSeqcheck(t, "check", "--config", noConfig(t), "--no-history", dir)
	require.NoError(t, err)

	assert.NotContains(t, out, "frame.02.exr")
	assert.Contains(t, out, "Nothing missing\n")
}

func TestCheckRangeFlags(t *testing.T) {
	dir := writeFixture(t, []string{"f.01.png", "f.02.png", "f.05.png", "f.09.png"})

	out, err := runSeqcheck(t, "check", "--config", noConfig(t), "--no-history",
		"--from", "1", "--to", "5", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Missing f.03.png")
	assert.Contains(t, out, "Missing f.04.png")
	assert.NotContains(t, out, "f.06.png")
	assert.NotContains(t, out, "f.09.png")
}

func TestCheckInvalidRange(t *testing.T) {
	dir := writeFixture(t, []string{"f.01.png"})

	_, err := runSeqcheck(t, "check", "--config", noConfig(t), "--no-history",
		"--from", "10", "--to", "5", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid range")
}

func TestCheckExcludePattern(t *testing.T) {
	dir := writeFixture(t, []string{"keep.1.png", "keep.3.png", "skip.1.png", "skip.3.png"})

	out, err := runSeqcheck(t, "check", "--config", noConfig(t), "--no-history",
		"-e", "skip", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Missing keep.2.png")
	assert.NotContains(t, out, "skip.2.png")
}

func TestCheckExcludeFileFlag(t *testing.T) {
	dir := writeFixture(t, []string{"f.1.png", "f.3.png", "ExcludeMe"})

	out, err := runSeqcheck(t, "check", "--config", noConfig(t), "--no-history",
		"-x", "ExcludeMe", "-v", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Missing f.2.png")
	assert.NotContains(t, out, "ExcludeMe")
}

func TestCheckMissingPath(t *testing.T) {
	_, err := runSeqcheck(t, "check", "--config", noConfig(t), "--no-history",
		filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestCheckOutputFile(t *testing.T) {
	dir := writeFixture(t, []string{"img.001.png", "img.003.png"})
	reportPath := filepath.Join(t.TempDir(), "gaps.txt")

	out, err := runSeqcheck(t, "check", "--config", noConfig(t), "--no-history",
		"-o", reportPath, dir)
	require.NoError(t, err)

	data, readErr := os.ReadFile(reportPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "Missing img.002.png")
	// The report still goes to stdout as well.
	assert.Contains(t, out, "Missing img.002.png")
}

func TestCheckRecordsHistory(t *testing.T) {
	dir := writeFixture(t, []string{"img.001.png", "img.003.png"})

	cfgDir := t.TempDir()
	dbPath := filepath.Join(cfgDir, "history.db")
	cfgPath := filepath.Join(cfgDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"history:\n  enabled: true\n  db_path: "+dbPath+"\n  keep_scans: 10\n"), 0644))

	_, err := runSeqcheck(t, "check", "--config", cfgPath, dir)
	require.NoError(t, err)

	store, err := history.NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	scans, err := store.ListScans(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, scans, 1)
	assert.Equal(t, dir, scans[0].Root)
	assert.Equal(t, 2, scans[0].FilesProcessed)
	assert.Equal(t, 1, scans[0].MissingFiles)

	_, missing, err := store.GetScan(context.Background(), scans[0].ID)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "img.002.png", missing[0].Name)
}

func TestCheckNoHistoryFlag(t *testing.T) {
	dir := writeFixture(t, []string{"img.001.png", "img.003.png"})

	cfgDir := t.TempDir()
	dbPath := filepath.Join(cfgDir, "history.db")
	cfgPath := filepath.Join(cfgDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"history:\n  enabled: true\n  db_path: "+dbPath+"\n"), 0644))

	_, err := runSeqcheck(t, "check", "--config", cfgPath, "--no-history", dir)
	require.NoError(t, err)

	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr), "no database should be created with --no-history")
}

func TestCheckConfigRecursive(t *testing.T) {
	dir := writeFixture(t, []string{"sub/frame.01.exr", "sub/frame.03.exr"})

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("recursive: true\nhistory:\n  enabled: false\n  db_path: unused.db\n"), 0644))

	out, err := runSeqcheck(t, "check", "--config", cfgPath, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Missing frame.02.exr")
}
