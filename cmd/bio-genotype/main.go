// bio-genotype converts genotyping laboratory exports into tables ready for
// loading.
package main

import "github.com/grailbio/genoconv/cmd/bio-genotype/cmd"

func main() {
	cmd.Run()
}
