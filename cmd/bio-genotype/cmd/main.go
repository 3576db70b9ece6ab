package cmd

import (
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
	"github.com/grailbio/base/vcontext"
	"v.io/x/lib/cmdline"
)

func newCmdNormalize(c config) *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "normalize-alleles",
		Short: "Normalize the allele calls of a tab-separated call sheet",
		Long: `
normalize-alleles rewrites every call of a sample by marker call sheet as a
two-letter genotype over ACGTN+-. The header row and the row label column are
dropped. Calls that cannot be read become NN; once more than -max-unsupported
of them are found the conversion stops with exit status 2.`,
		ArgsName: "input-tsv output-tsv",
	}
	var flags normalizeFlags
	cmd.Flags.BoolVar(&flags.keepLabel, "keep-label", c.KeepLabel, "Copy the row label column to the output")
	cmd.Flags.IntVar(&flags.maxUnsupported, "max-unsupported", c.MaxUnsupported, "Number of unsupported calls tolerated before giving up")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return env.UsageErrorf("normalize-alleles takes input-tsv output-tsv, but got %v", argv)
		}
		return normalizeAlleles(vcontext.Background(), env.Stderr, flags, argv[0], argv[1])
	})
	return cmd
}

func newCmdSplit(c config) *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "split-lgc",
		Short: "Split an LGC genotyping report into per-table TSV files",
		Long: `
split-lgc writes each table of a comma-separated LGC report to
<output-dir>/<prefix>.<table>.tsv, converts the Header table to
<prefix>.header.json, and builds <prefix>.markers.tsv and <prefix>.grid.tsv
from the SNPs, Scaling and Data tables. The last line printed on stdout is
"<project number> <grid path> <markers path>".`,
		ArgsName: "input-csv output-dir",
	}
	var flags splitFlags
	cmd.Flags.StringVar(&flags.prefix, "prefix", "", "Output file prefix. By default, the input file name without its .csv suffix")
	cmd.Flags.BoolVar(&flags.noPrefix, "no-prefix", false, "Name output files after their table only")
	cmd.Flags.BoolVar(&flags.reshape, "reshape", c.Reshape, "Build the markers and grid tables")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return env.UsageErrorf("split-lgc takes input-csv output-dir, but got %v", argv)
		}
		return splitLGC(vcontext.Background(), env.Stdout, env.Stderr, flags, argv[0], argv[1])
	})
	return cmd
}

func registerS3() {
	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
}

func Run() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	c, err := loadConfig()
	if err != nil {
		log.Fatal(fmt.Errorf("bio-genotype: environment: %v", err))
	}
	registerS3()
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-genotype",
			Short:    "Tools for converting genotyping laboratory exports",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdNormalize(c),
				newCmdSplit(c),
			},
		})
}
