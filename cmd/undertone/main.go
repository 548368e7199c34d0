// undertone - colour undertone and seasonal palette classifier
//
// undertone samples images, finds their dominant colour and classifies it as
// warm, cool or neutral, matched against the seasonal colour-analysis palettes.
package main

import (
	"os"

	"github.com/jmylchreest/undertone/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
