package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/genoconv/encoding/lgc"
	"github.com/grailbio/genoconv/reshape"
	"v.io/x/lib/cmdline"
)

var cyan = color.New(color.FgCyan).SprintFunc()

// echo prints one aligned name/path line of the stderr summary.
func echo(w io.Writer, name, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", name, cyan(value))
}

type splitFlags struct {
	prefix   string
	noPrefix bool
	reshape  bool
}

// headerJSONName is the file the Header table is written to as JSON.
func headerJSONName(prefix string) string {
	if prefix == "" {
		return "header.json"
	}
	return prefix + ".header.json"
}

// splitLGC segments the report at inPath into outDir, converts its Header
// table to JSON and reshapes the SNPs, Scaling and Data tables. The final
// stdout line names the project and the reshaped tables.
func splitLGC(ctx context.Context, stdout, stderr io.Writer, flags splitFlags, inPath, outDir string) error {
	prefix := flags.prefix
	switch {
	case flags.noPrefix:
		prefix = ""
	case prefix == "":
		prefix = lgc.Prefix(inPath)
	}
	fmt.Fprintln(stderr, "Arguments:")
	echo(stderr, "input", inPath)
	echo(stderr, "output_dir", outDir)
	echo(stderr, "prefix", prefix)

	split, err := lgc.SegmentFile(ctx, inPath, outDir, lgc.Opts{Prefix: prefix})
	if err != nil {
		return err
	}
	fmt.Fprintln(stderr, "Split tables:")
	for _, t := range split.Tables() {
		p, _ := split.Path(t)
		echo(stderr, t.String(), p)
	}

	headerPath, _ := split.Path(lgc.Header)
	md, err := lgc.ReadMetadataFile(ctx, headerPath)
	if err != nil {
		return err
	}
	jsonPath := file.Join(outDir, headerJSONName(prefix))
	if err := lgc.WriteMetadataJSON(ctx, jsonPath, md); err != nil {
		return err
	}
	fmt.Fprintln(stderr, "Header metadata:")
	echo(stderr, "json", jsonPath)

	var outputs map[reshape.Output]string
	if flags.reshape {
		in, ok := reshapeInputs(split)
		if !ok {
			log.Printf("split-lgc: %s lacks a SNPs, Scaling or Data table; not reshaping", inPath)
		} else if outputs, err = reshape.Run(ctx, in, outDir, prefix); err != nil {
			return err
		}
	}
	if outputs != nil {
		fmt.Fprintln(stderr, "Reshaped tables for loading:")
		for _, o := range reshape.Outputs {
			echo(stderr, o.String(), outputs[o])
		}
	}

	project, err := md.ProjectNumber()
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return cmdline.ErrExitCode(exitMissingKey)
	}
	if outputs == nil {
		fmt.Fprintln(stdout, project)
		return nil
	}
	fmt.Fprintln(stdout, project, outputs[reshape.GridOutput], outputs[reshape.MarkersOutput])
	return nil
}

func reshapeInputs(split *lgc.Split) (reshape.Inputs, bool) {
	var (
		in reshape.Inputs
		ok [3]bool
	)
	in.SNPs, ok[0] = split.Path(lgc.SNPs)
	in.Scaling, ok[1] = split.Path(lgc.Scaling)
	in.Data, ok[2] = split.Path(lgc.Data)
	return in, ok[0] && ok[1] && ok[2]
}
