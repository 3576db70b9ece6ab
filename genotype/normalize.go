package genotype

import (
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/genoconv/util"
)

// Opts controls Normalize.
type Opts struct {
	// MaxUnsupported is the number of unsupported calls tolerated. The next
	// one aborts the conversion with a *TooManyUnsupportedError.
	MaxUnsupported int
	// KeepLabel copies the row label (first column) to the output unchanged
	// instead of dropping it.
	KeepLabel bool
}

// DefaultOpts are the options used by the bio-genotype command unless
// overridden.
var DefaultOpts = Opts{
	MaxUnsupported: 19,
}

// Stats summarizes one conversion.
type Stats struct {
	// Rows is the number of data rows written.
	Rows int
	// Calls is the number of calls normalized, unsupported ones included.
	Calls int
	// Unsupported is the number of calls replaced by MissingCall because they
	// could not be read.
	Unsupported int
}

// TooManyUnsupportedError aborts a conversion once the unsupported call limit
// is exceeded. Row and Col locate the call that broke the limit; both are
// 1-based, Row counting data rows and Col counting input columns.
type TooManyUnsupportedError struct {
	Row, Col int
	Call     string
	Limit    int
}

func (e *TooManyUnsupportedError) Error() string {
	return fmt.Sprintf("file processing stopped due to excessive format errors: unsupported allele call %q at row %d column %d, more than %d tolerated",
		e.Call, e.Row, e.Col, e.Limit)
}

// RowLengthError reports a data row whose column count differs from the first
// data row's.
type RowLengthError struct {
	Row       int
	Got, Want int
}

func (e *RowLengthError) Error() string {
	return fmt.Sprintf("data row %d has %d columns, expected %d", e.Row, e.Got, e.Want)
}

// unsupportedBudget counts unsupported calls against the tolerated maximum.
type unsupportedBudget struct {
	limit, spent int
}

// take records one more unsupported call. It returns false once the limit is
// already used up.
func (b *unsupportedBudget) take() bool {
	if b.spent >= b.limit {
		return false
	}
	b.spent++
	return true
}

// Normalize reads a tab-separated call sheet from r and writes the normalized
// calls to w. The first row is a header and is skipped; the first column of
// each data row is a label. The output has no header.
//
// On a *TooManyUnsupportedError the offending row is discarded but every row
// before it has been written to w.
func Normalize(r io.Reader, w io.Writer, opts Opts) (stats Stats, err error) {
	in := tsv.NewReader(r)
	in.FieldsPerRecord = -1
	in.LazyQuotes = true
	out := tsv.NewWriter(w)
	defer func() {
		if e := out.Flush(); e != nil && err == nil {
			err = e
		}
	}()

	budget := unsupportedBudget{limit: opts.MaxUnsupported}
	nCol := -1
	var calls []string
	for row := 0; ; row++ {
		fields, rerr := in.Reader.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return stats, errors.E(rerr, fmt.Sprintf("read row %d", row))
		}
		if row == 0 {
			continue
		}
		if nCol < 0 {
			nCol = len(fields)
			if nCol < 2 && !opts.KeepLabel {
				return stats, errors.E(errors.Invalid, fmt.Sprintf("data row %d has no call columns", row))
			}
		}
		if len(fields) != nCol {
			return stats, &RowLengthError{Row: row, Got: len(fields), Want: nCol}
		}

		calls = calls[:0]
		for col := 1; col < len(fields); col++ {
			norm, ok := NormalizeCall(fields[col])
			if !ok {
				if !budget.take() {
					return stats, &TooManyUnsupportedError{Row: row, Col: col + 1, Call: fields[col], Limit: opts.MaxUnsupported}
				}
				log.Error.Printf("Unsupported allele call %q row %d column %d", fields[col], row, col+1)
				stats.Unsupported++
			}
			calls = append(calls, norm)
		}
		stats.Calls += len(calls)

		if opts.KeepLabel {
			out.WriteString(fields[0])
		}
		for _, c := range calls {
			out.WriteString(c)
		}
		if err = out.EndLine(); err != nil {
			return stats, err
		}
		stats.Rows++
	}
	return stats, nil
}

// NormalizeFile runs Normalize from inPath to outPath. Either may be any path
// grailbio/base/file understands; gzip input is detected automatically.
func NormalizeFile(ctx context.Context, inPath, outPath string, opts Opts) (stats Stats, err error) {
	in, err := util.OpenInput(ctx, inPath)
	if err != nil {
		return stats, err
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	out, err := file.Create(ctx, outPath)
	if err != nil {
		return stats, errors.E(err, "create", outPath)
	}
	defer file.CloseAndReport(ctx, out, &err)

	if stats, err = Normalize(in, out.Writer(ctx), opts); err != nil {
		return stats, err
	}
	log.Printf("normalized %d rows, %d calls (%d unsupported) from %s into %s",
		stats.Rows, stats.Calls, stats.Unsupported, inPath, outPath)
	return stats, nil
}
