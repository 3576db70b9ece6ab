package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/grailbio/genoconv/genotype"
	"v.io/x/lib/cmdline"
)

// Exit statuses, besides the 1 cmdline uses for any other error.
const (
	exitMissingKey      = 1
	exitTooManyFailures = 2
)

type normalizeFlags struct {
	keepLabel      bool
	maxUnsupported int
}

func normalizeAlleles(ctx context.Context, stderr io.Writer, flags normalizeFlags, inPath, outPath string) error {
	opts := genotype.Opts{
		MaxUnsupported: flags.maxUnsupported,
		KeepLabel:      flags.keepLabel,
	}
	fmt.Fprintln(stderr, "Arguments:")
	echo(stderr, "input", inPath)
	echo(stderr, "output", outPath)

	stats, err := genotype.NormalizeFile(ctx, inPath, outPath, opts)
	if e, ok := err.(*genotype.TooManyUnsupportedError); ok {
		fmt.Fprintln(stderr, e.Error())
		return cmdline.ErrExitCode(exitTooManyFailures)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "Normalized %d rows, %d calls, %d unsupported\n", stats.Rows, stats.Calls, stats.Unsupported)
	return nil
}
