package cmd

import (
	"github.com/grailbio/genoconv/genotype"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix is prepended to the names of environment variables that override
// flag defaults, e.g. BIO_GENOTYPE_MAX_UNSUPPORTED.
const envPrefix = "BIO_GENOTYPE"

// config holds the flag defaults.
type config struct {
	MaxUnsupported int  `envconfig:"MAX_UNSUPPORTED"`
	KeepLabel      bool `envconfig:"KEEP_LABEL"`
	Reshape        bool `envconfig:"RESHAPE" default:"true"`
}

// loadConfig returns the built-in defaults, overridden by the environment.
func loadConfig() (config, error) {
	c := config{
		MaxUnsupported: genotype.DefaultOpts.MaxUnsupported,
		KeepLabel:      genotype.DefaultOpts.KeepLabel,
	}
	err := envconfig.Process(envPrefix, &c)
	return c, err
}
