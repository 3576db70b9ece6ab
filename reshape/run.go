package reshape

import (
	"context"
	"fmt"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// Output identifies a table produced by Run.
type Output int

const (
	// GridOutput is the sample by marker call grid.
	GridOutput Output = iota
	// MarkersOutput is the SNPs table with marker names.
	MarkersOutput
)

// Outputs lists every Output in the order Run reports them.
var Outputs = []Output{GridOutput, MarkersOutput}

func (o Output) String() string {
	switch o {
	case GridOutput:
		return "grid"
	case MarkersOutput:
		return "markers"
	}
	return fmt.Sprintf("Output(%d)", int(o))
}

// FileName is "<prefix>.<output>.tsv", or "<output>.tsv" for an empty prefix.
func (o Output) FileName(prefix string) string {
	name := strings.ToLower(o.String()) + ".tsv"
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// Inputs are the paths of the split tables Run reads.
type Inputs struct {
	SNPs, Scaling, Data string
}

// Run reads the SNPs, Scaling and Data tables, and writes the Markers and Grid
// tables under outDir. It returns the path of each output.
func Run(ctx context.Context, in Inputs, outDir, prefix string) (map[Output]string, error) {
	snps, err := ReadFrameFile(ctx, in.SNPs)
	if err != nil {
		return nil, err
	}
	scaling, err := ReadFrameFile(ctx, in.Scaling)
	if err != nil {
		return nil, err
	}
	data, err := ReadFrameFile(ctx, in.Data)
	if err != nil {
		return nil, err
	}

	markers, err := Markers(snps)
	if err != nil {
		return nil, err
	}
	grid, err := Grid(markers, scaling, data)
	if err != nil {
		return nil, errors.Wrapf(err, "reshape %s", in.Data)
	}

	frames := map[Output]*Frame{MarkersOutput: markers, GridOutput: grid}
	paths := map[Output]string{}
	for _, o := range Outputs {
		p := file.Join(outDir, o.FileName(prefix))
		if err := WriteFrameFile(ctx, p, frames[o]); err != nil {
			return nil, err
		}
		paths[o] = p
	}
	log.Printf("reshape: %d markers, %d grid rows by %d columns",
		len(markers.Rows), len(grid.Rows), len(grid.Columns)-len(GridIndex))
	return paths, nil
}
