package reshape_test

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/genoconv/reshape"
	"github.com/grailbio/testutil"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(t *testing.T, text string) *reshape.Frame {
	f, err := reshape.ReadFrame(strings.NewReader(text))
	require.NoError(t, err)
	return f
}

const (
	snpsTSV = "SNPID\tSNPNum\tSequence\n" +
		"rs1\t1\tAC[A/G]T\n" +
		"rs2\t2\tGG[C/T]A\n"
	scalingTSV = "SNPNum\tDaughterPlate\n" +
		"1\tDP1\n" +
		"2\tDP1\n" +
		"2\tDP2\n"
	dataTSV = "DaughterPlate\tMasterPlate\tMasterWell\tCall\tSNPID\tSubjectID\n" +
		"DP1\tMP1\tA12\tA:G\trs1\tS2\n" +
		"DP1\tMP1\tA12\tC:C\trs2\tS2\n" +
		"DP1\tMP1\tB3\tG:G\trs1\tS1\n" +
		"DP1\tMP1\tC4\tA:A\trs1\t\n" +
		"DP1\tMP1\tD5\tA:A\trs1\t  \n" +
		"DP2\tMP2\twell H1\tT:T\trs2\tS3\n" +
		"DP9\tMP9\tE1\tT:T\trs2\tS4\n"
)

func TestReadFrame(t *testing.T) {
	f := frame(t, "a\tb\tc\n1\t2\n4\t5\t6\n")
	assert.Equal(t, []string{"a", "b", "c"}, f.Columns)
	assert.Equal(t, [][]string{{"1", "2", ""}, {"4", "5", "6"}}, f.Rows)
	assert.Equal(t, 1, f.Index("b"))
	assert.Equal(t, -1, f.Index("d"))

	_, err := reshape.ReadFrame(strings.NewReader("a\tb\n1\t2\t3\n"))
	assert.Error(t, err)

	f = frame(t, "")
	assert.Empty(t, f.Columns)
}

func TestMarkers(t *testing.T) {
	m, err := reshape.Markers(frame(t, snpsTSV))
	require.NoError(t, err)
	assert.Equal(t, []string{"SNPID", "SNPNum", "Sequence", "marker_name"}, m.Columns)
	assert.Equal(t, "rs1_1", m.Rows[0][3])
	assert.Equal(t, "rs2_2", m.Rows[1][3])

	_, err = reshape.Markers(frame(t, "SNPID\tSequence\n"))
	e, ok := err.(*reshape.MissingColumnError)
	require.True(t, ok, "%T", err)
	assert.Equal(t, "SNPNum", e.Column)
}

func TestWell(t *testing.T) {
	for _, test := range []struct{ in, row, col string }{
		{"A12", "A", "12"},
		{"well H1", "H", "1"},
		{"Z9", "", ""},
		{"", "", ""},
		{"xB07y", "B", "07"},
	} {
		row, col := reshape.Well(test.in)
		assert.Equal(t, test.row, row, test.in)
		assert.Equal(t, test.col, col, test.in)
	}
}

func TestGrid(t *testing.T) {
	markers, err := reshape.Markers(frame(t, snpsTSV))
	require.NoError(t, err)
	grid, err := reshape.Grid(markers, frame(t, scalingTSV), frame(t, dataTSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"SubjectID", "MasterPlate", "MasterWell", "well_row", "well_col", "rs1_1", "rs2_2"}, grid.Columns)
	assert.Equal(t, [][]string{
		{"S1", "MP1", "B3", "B", "3", "G:G", ""},
		{"S2", "MP1", "A12", "A", "12", "A:G", "C:C"},
		{"S3", "MP2", "well H1", "H", "1", "", "T:T"},
	}, grid.Rows)
}

func TestGridEmpty(t *testing.T) {
	markers, err := reshape.Markers(frame(t, snpsTSV))
	require.NoError(t, err)
	data := frame(t, "DaughterPlate\tMasterPlate\tMasterWell\tCall\tSNPID\tSubjectID\nDP1\tMP1\tA1\tA:A\trs1\t\n")
	grid, err := reshape.Grid(markers, frame(t, scalingTSV), data)
	require.NoError(t, err)
	assert.Equal(t, reshape.GridIndex, grid.Columns)
	assert.Empty(t, grid.Rows)

	_, err = reshape.Grid(markers, frame(t, "SNPNum\n1\n"), data)
	e, ok := err.(*reshape.MissingColumnError)
	require.True(t, ok, "%T", err)
	assert.Equal(t, "Scaling", e.Table)
	assert.Equal(t, "DaughterPlate", e.Column)
}

func TestPivotDuplicate(t *testing.T) {
	f := frame(t, "k\tm\tv\nx\tm1\t1\nx\tm1\t2\n")
	_, err := reshape.Pivot(f, []string{"k"}, "m", "v")
	e, ok := err.(*reshape.DuplicateEntryError)
	require.True(t, ok, "%T", err)
	assert.Equal(t, []string{"x"}, e.Key)
	assert.Equal(t, "m1", e.Column)
}

func TestPivotSorted(t *testing.T) {
	f := frame(t, "k\tm\tv\nb\tz\t1\na\ty\t2\nb\ty\t3\n")
	out, err := reshape.Pivot(f, []string{"k"}, "m", "v")
	require.NoError(t, err)
	assert.Equal(t, []string{"k", "y", "z"}, out.Columns)
	assert.Equal(t, [][]string{{"a", "2", ""}, {"b", "3", "1"}}, out.Rows)
}

func TestRun(t *testing.T) {
	ctx := vcontext.Background()
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	in := reshape.Inputs{
		SNPs:    filepath.Join(dir, "r.snps.tsv"),
		Scaling: filepath.Join(dir, "r.scaling.tsv"),
		Data:    filepath.Join(dir, "r.data.tsv"),
	}
	require.NoError(t, ioutil.WriteFile(in.SNPs, []byte(snpsTSV), 0644))
	require.NoError(t, ioutil.WriteFile(in.Scaling, []byte(scalingTSV), 0644))
	require.NoError(t, ioutil.WriteFile(in.Data, []byte(dataTSV), 0644))

	paths, err := reshape.Run(ctx, in, dir, "r")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "r.grid.tsv"), paths[reshape.GridOutput])
	assert.Equal(t, filepath.Join(dir, "r.markers.tsv"), paths[reshape.MarkersOutput])

	data, err := ioutil.ReadFile(paths[reshape.MarkersOutput])
	require.NoError(t, err)
	assert.Equal(t, "SNPID\tSNPNum\tSequence\tmarker_name\nrs1\t1\tAC[A/G]T\trs1_1\nrs2\t2\tGG[C/T]A\trs2_2\n", string(data))

	data, err = ioutil.ReadFile(paths[reshape.GridOutput])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "S1\tMP1\tB3\tB\t3\tG:G\t", lines[1])
}

func TestRunDuplicate(t *testing.T) {
	ctx := vcontext.Background()
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	in := reshape.Inputs{
		SNPs:    filepath.Join(dir, "snps.tsv"),
		Scaling: filepath.Join(dir, "scaling.tsv"),
		Data:    filepath.Join(dir, "data.tsv"),
	}
	dup := dataTSV + "DP1\tMP1\tB3\tG:A\trs1\tS1\n"
	require.NoError(t, ioutil.WriteFile(in.SNPs, []byte(snpsTSV), 0644))
	require.NoError(t, ioutil.WriteFile(in.Scaling, []byte(scalingTSV), 0644))
	require.NoError(t, ioutil.WriteFile(in.Data, []byte(dup), 0644))

	_, err := reshape.Run(ctx, in, dir, "")
	_, ok := errors.Cause(err).(*reshape.DuplicateEntryError)
	assert.True(t, ok, "%v", err)
}

func TestOutputFileName(t *testing.T) {
	assert.Equal(t, "grid.tsv", reshape.GridOutput.FileName(""))
	assert.Equal(t, "P1.markers.tsv", reshape.MarkersOutput.FileName("P1"))
}
