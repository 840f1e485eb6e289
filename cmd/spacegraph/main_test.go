package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/depthlath/analysis"
	"github.com/katalvlaran/depthlath/attr"
	"github.com/katalvlaran/depthlath/connectivity"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

const starLines = `
count: 4
links:
  - [0, 1]
  - [0, 2]
  - [0, 3]
`

const chainSegments = `
count: 3
lengths: [10, 20, 10]
joins:
  - {a: 0, aEnd: forward, b: 1, bEnd: backward, turn: 0}
  - {a: 1, aEnd: forward, b: 2, bEnd: backward, turn: 90}
`

const roomGrid = `
reach: conn4
cells:
  - [1, 1, 1]
  - [1, 1, 1]
`

func TestLoadLines(t *testing.T) {
	lg, err := loadLines(writeFile(t, "lines.yaml", starLines))
	require.NoError(t, err)
	assert.Equal(t, 4, lg.Len())
	assert.ElementsMatch(t, []int{1, 2, 3}, lg.Neighbors(0))
}

func TestLoadLinesBadLink(t *testing.T) {
	_, err := loadLines(writeFile(t, "lines.yaml", "count: 2\nlinks:\n  - [0, 1, 1]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 2 refs")
}

func TestLoadSegments(t *testing.T) {
	sg, err := loadSegments(writeFile(t, "segments.yaml", chainSegments))
	require.NoError(t, err)
	assert.Equal(t, 3, sg.Len())
	assert.Equal(t, 20.0, sg.Length(1))
	require.Len(t, sg.Forward(1), 1)
	assert.Equal(t, 2, sg.Forward(1)[0].Ref)
	assert.ElementsMatch(t, []int{0, 2}, sg.Neighbors(1))
}

func TestLoadSegmentsBadEnd(t *testing.T) {
	body := "count: 2\njoins:\n  - {a: 0, aEnd: sideways, b: 1, bEnd: backward}\n"
	_, err := loadSegments(writeFile(t, "segments.yaml", body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "join 0")
}

func TestLoadGrid(t *testing.T) {
	pg, err := loadGrid(writeFile(t, "grid.yaml", roomGrid))
	require.NoError(t, err)
	assert.Len(t, pg.Refs(), 6)

	_, err = loadGrid(writeFile(t, "grid.yaml", "reach: hex\ncells: [[1]]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown reach")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := loadLines(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestSelectPoints(t *testing.T) {
	pg, err := connectivity.NewVisibilityGrid([][]int{{1, 1}, {1, 1}})
	require.NoError(t, err)
	refs, err := selectPoints(pg, []string{"0,0", " 1 , 1 "})
	require.NoError(t, err)
	a, _ := pg.Ref(0, 0)
	b, _ := pg.Ref(1, 1)
	assert.Equal(t, []int{a, b}, refs)

	_, err = selectPoints(pg, []string{"1;1"})
	assert.Error(t, err)
	_, err = selectPoints(pg, []string{"x,1"})
	assert.Error(t, err)
}

func TestAxialCommand(t *testing.T) {
	out, err := runCLI(t, "axial", "--graph", writeFile(t, "lines.yaml", starLines))
	require.NoError(t, err)
	assert.Contains(t, out, "CONNECTIVITY")
	assert.Contains(t, out, "CONTROLLABILITY")
}

func TestSegmentCommandUnknownAnalysis(t *testing.T) {
	_, err := runCLI(t, "segment", "--graph", writeFile(t, "s.yaml", chainSegments), "--analysis", "fastest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown segment analysis")
}

func TestSegmentPathNeedsSelection(t *testing.T) {
	_, err := runCLI(t, "segment", "--graph", writeFile(t, "s.yaml", chainSegments), "--analysis", "metric-path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not complete")
}

func TestVGASnapshotAndStats(t *testing.T) {
	dir := t.TempDir()
	grid := writeFile(t, "grid.yaml", roomGrid)
	_, err := runCLI(t, "vga", "--grid", grid, "--analysis", "global", "--snapshot", dir)
	require.NoError(t, err)

	db, err := attr.OpenDB(dir, analysis.NewLogger(&bytes.Buffer{}, false))
	require.NoError(t, err)
	table, err := attr.LoadSnapshot(db, "attributes")
	require.NoError(t, err)
	require.NoError(t, db.Close())
	assert.Equal(t, 6, table.Len())
	_, ok := table.ColumnIndex(analysis.ColVisualMeanDepth)
	assert.True(t, ok)

	out, err := runCLI(t, "stats", "--snapshot", dir)
	require.NoError(t, err)
	assert.Contains(t, out, analysis.ColVisualNodeCount)
	assert.Contains(t, out, "6 rows")
}

func TestStatsNeedsSnapshot(t *testing.T) {
	_, err := runCLI(t, "stats")
	require.Error(t, err)
}

type brokenBar struct{}

func (brokenBar) Finish() error { return errors.New("terminal gone") }

func TestFinishBarLogsFailure(t *testing.T) {
	var logs, errOut bytes.Buffer
	e := &env{log: analysis.NewLogger(&logs, true), errOut: &errOut}
	e.finishBar(brokenBar{})
	assert.Contains(t, logs.String(), "failed to finish progress bar")
	assert.Contains(t, logs.String(), "terminal gone")
	assert.Equal(t, "\n", errOut.String())
}
