// Copyright 2021 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reshape

import (
	"context"
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/genoconv/util"
	"github.com/pkg/errors"
)

// Frame is a table of text cells. Every row has len(Columns) cells.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// MissingColumnError reports a table lacking a column the reshaping needs.
type MissingColumnError struct {
	Table, Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table %s has no column %q", e.Table, e.Column)
}

// Index returns the position of column name, or -1.
func (f *Frame) Index(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// indices returns the positions of the named columns, or a
// *MissingColumnError for the first one f lacks.
func (f *Frame) indices(table string, names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		if idx[i] = f.Index(name); idx[i] < 0 {
			return nil, &MissingColumnError{Table: table, Column: name}
		}
	}
	return idx, nil
}

// ReadFrame reads a TSV table whose first row names the columns. Short rows
// are padded with empty cells; a row longer than the header is an error.
func ReadFrame(r io.Reader) (*Frame, error) {
	in := tsv.NewReader(r)
	in.FieldsPerRecord = -1
	in.LazyQuotes = true
	f := &Frame{}
	for line := 1; ; line++ {
		fields, err := in.Reader.Read()
		if err == io.EOF {
			return f, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read line %d", line)
		}
		if line == 1 {
			f.Columns = append([]string(nil), fields...)
			continue
		}
		if len(fields) > len(f.Columns) {
			return nil, errors.Errorf("line %d has %d fields, header has %d", line, len(fields), len(f.Columns))
		}
		row := make([]string, len(f.Columns))
		copy(row, fields)
		f.Rows = append(f.Rows, row)
	}
}

// ReadFrameFile runs ReadFrame on the file at path.
func ReadFrameFile(ctx context.Context, path string) (_ *Frame, err error) {
	in, err := util.OpenInput(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	f, err := ReadFrame(in)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return f, nil
}

// WriteTSV writes f to w, header first.
func (f *Frame) WriteTSV(w io.Writer) error {
	out := tsv.NewWriter(w)
	for _, row := range append([][]string{f.Columns}, f.Rows...) {
		for _, cell := range row {
			out.WriteString(cell)
		}
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	return out.Flush()
}

// WriteFrameFile writes f as TSV to path.
func WriteFrameFile(ctx context.Context, path string, f *Frame) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer file.CloseAndReport(ctx, out, &err)
	return f.WriteTSV(out.Writer(ctx))
}

// dataFrame loads f into a gota DataFrame with every column typed as
// string. f must have at least one row.
func (f *Frame) dataFrame() dataframe.DataFrame {
	records := make([][]string, 0, len(f.Rows)+1)
	records = append(records, f.Columns)
	records = append(records, f.Rows...)
	return dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}))
}

// frameOf converts a gota DataFrame back to a Frame.
func frameOf(df dataframe.DataFrame) (*Frame, error) {
	if df.Err != nil {
		return nil, df.Err
	}
	records := df.Records()
	if len(records) == 0 {
		return &Frame{}, nil
	}
	return &Frame{Columns: records[0], Rows: records[1:]}, nil
}
