// carouselgen is a batch orchestration tool for generating reference
// carousel strips through a remote image API.
package main

import (
	"fmt"
	"os"

	"carouselgen/cli"
	"carouselgen/core"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(core.ExitCodeError)
	}
	os.Exit(core.ExitCodeSuccess)
}
