// Command urn parses, checks and normalizes Uniform Resource Names.
//
// URNs are read from the arguments, or line by line from stdin when no arguments are given.
// Settings can also be provided with URN_* environment variables or a YAML config file.
package main

import (
	"os"

	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}
