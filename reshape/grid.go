package reshape

import (
	"fmt"
	"regexp"
	"strings"

	linq "github.com/ahmetb/go-linq"
	"github.com/biogo/store/llrb"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// Column names used by the reshaping.
const (
	ColSNPID         = "SNPID"
	ColSNPNum        = "SNPNum"
	ColDaughterPlate = "DaughterPlate"
	ColMasterPlate   = "MasterPlate"
	ColMasterWell    = "MasterWell"
	ColSubjectID     = "SubjectID"
	ColCall          = "Call"
	ColMarkerName    = "marker_name"
	ColWellRow       = "well_row"
	ColWellCol       = "well_col"
)

// GridIndex names the columns identifying one grid row, in output order.
var GridIndex = []string{ColSubjectID, ColMasterPlate, ColMasterWell, ColWellRow, ColWellCol}

// wellPattern finds a plate well label such as "A12" anywhere in MasterWell.
var wellPattern = regexp.MustCompile(`([A-H])(\d+)`)

// DuplicateEntryError reports two calls for the same grid cell.
type DuplicateEntryError struct {
	Key    []string
	Column string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("duplicate entry for %s in column %s", strings.Join(e.Key, "/"), e.Column)
}

// Markers returns a copy of snps with a marker_name column appended, holding
// SNPID and SNPNum joined by an underscore.
func Markers(snps *Frame) (*Frame, error) {
	idx, err := snps.indices("SNPs", ColSNPID, ColSNPNum)
	if err != nil {
		return nil, err
	}
	out := &Frame{Columns: append(append([]string(nil), snps.Columns...), ColMarkerName)}
	for _, row := range snps.Rows {
		r := append(append(make([]string, 0, len(row)+1), row...), row[idx[0]]+"_"+row[idx[1]])
		out.Rows = append(out.Rows, r)
	}
	return out, nil
}

// Well splits a well label such as "A12" into its row letter and column
// number. Both are empty if no label is found.
func Well(s string) (row, col string) {
	m := wellPattern.FindStringSubmatch(s)
	if m == nil {
		return "", ""
	}
	return m[1], m[2]
}

// Grid builds the sample-by-marker call grid. markers is the output of
// Markers. Data rows without a SubjectID are dropped; the rest are matched to
// a marker through Scaling (on SNPNum) and then on SNPID and DaughterPlate.
// Data rows matching no marker do not appear.
func Grid(markers, scaling, data *Frame) (*Frame, error) {
	if _, err := markers.indices("Markers", ColSNPNum, ColSNPID, ColMarkerName); err != nil {
		return nil, err
	}
	if _, err := scaling.indices("Scaling", ColSNPNum, ColDaughterPlate); err != nil {
		return nil, err
	}
	didx, err := data.indices("Data", ColDaughterPlate, ColMasterPlate, ColMasterWell, ColCall, ColSNPID, ColSubjectID)
	if err != nil {
		return nil, err
	}
	empty := &Frame{Columns: append(append([]string(nil), GridIndex...), ColMarkerName, ColCall)}
	if len(markers.Rows) == 0 || len(scaling.Rows) == 0 {
		return Pivot(empty, GridIndex, ColMarkerName, ColCall)
	}

	// Whitespace-only subjects count as missing, like empty ones.
	samples := &Frame{Columns: append(append([]string(nil), data.Columns...), ColWellRow, ColWellCol)}
	subject, well := didx[5], didx[2]
	nSubjects := 0
	for _, row := range data.Rows {
		r := append(make([]string, 0, len(row)+2), row...)
		if strings.TrimSpace(r[subject]) == "" {
			r[subject] = ""
		} else {
			nSubjects++
		}
		wr, wc := Well(r[well])
		samples.Rows = append(samples.Rows, append(r, wr, wc))
	}
	if nSubjects == 0 {
		return Pivot(empty, GridIndex, ColMarkerName, ColCall)
	}
	df := samples.dataFrame().
		Filter(dataframe.F{Colname: ColSubjectID, Comparator: series.Neq, Comparando: ""})
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "drop rows without SubjectID")
	}
	if df.Nrow() == 0 {
		return Pivot(empty, GridIndex, ColMarkerName, ColCall)
	}
	df = df.Select(append(append([]string(nil), GridIndex...), ColSNPID, ColDaughterPlate, ColCall))

	plates := scaling.dataFrame().Select([]string{ColSNPNum, ColDaughterPlate}).
		InnerJoin(markers.dataFrame().Select([]string{ColSNPNum, ColSNPID, ColMarkerName}), ColSNPNum)
	if plates.Err != nil {
		return nil, errors.Wrap(plates.Err, "join Scaling with SNPs")
	}
	if plates.Nrow() == 0 {
		return Pivot(empty, GridIndex, ColMarkerName, ColCall)
	}
	joined := df.InnerJoin(plates.Select([]string{ColSNPID, ColDaughterPlate, ColMarkerName}), ColSNPID, ColDaughterPlate)
	if joined.Err != nil {
		return nil, errors.Wrap(joined.Err, "join Data with markers")
	}
	f, err := frameOf(joined)
	if err != nil {
		return nil, err
	}
	if len(f.Columns) == 0 {
		f = empty
	}
	return Pivot(f, GridIndex, ColMarkerName, ColCall)
}

// gridRow is one output row of Pivot, ordered by key.
type gridRow struct {
	key   []string
	cells map[string]string
}

func (r *gridRow) Compare(c llrb.Comparable) int {
	o := c.(*gridRow)
	for i := range r.key {
		if d := strings.Compare(r.key[i], o.key[i]); d != 0 {
			return d
		}
	}
	return 0
}

// Pivot reshapes f from long to wide form. Each distinct combination of the
// index columns becomes a row, each distinct value of column becomes a
// column, and the cell holds value. Rows and the new columns are sorted; cells
// with no value are empty. Two rows of f landing in the same cell yield a
// *DuplicateEntryError.
func Pivot(f *Frame, index []string, column, value string) (*Frame, error) {
	iidx, err := f.indices("pivot input", index...)
	if err != nil {
		return nil, err
	}
	cv, err := f.indices("pivot input", column, value)
	if err != nil {
		return nil, err
	}
	var (
		rows  llrb.Tree
		names []string
	)
	for _, row := range f.Rows {
		key := make([]string, len(iidx))
		for i, j := range iidx {
			key[i] = row[j]
		}
		probe := &gridRow{key: key}
		r, _ := rows.Get(probe).(*gridRow)
		if r == nil {
			r = probe
			r.cells = map[string]string{}
			rows.Insert(r)
		}
		name := row[cv[0]]
		if _, ok := r.cells[name]; ok {
			return nil, &DuplicateEntryError{Key: key, Column: name}
		}
		r.cells[name] = row[cv[1]]
		names = append(names, name)
	}

	var columns []string
	linq.From(names).Distinct().SortT(func(a, b string) bool { return a < b }).ToSlice(&columns)

	out := &Frame{Columns: append(append([]string(nil), index...), columns...)}
	rows.Do(func(c llrb.Comparable) bool {
		r := c.(*gridRow)
		row := append(make([]string, 0, len(out.Columns)), r.key...)
		for _, name := range columns {
			row = append(row, r.cells[name])
		}
		out.Rows = append(out.Rows, row)
		return false
	})
	return out, nil
}
