// Command padify adds an even margin of background color around a
// screenshot, cropping a cut-off last line or stray cursor first.
//
// Usage:
//
//	padify shot.png                 # writes shot_pad.png
//	padify --all 64 --bg '#1e1e1e' shot.png out.png
//	padify --no-crop --debug-crop shot.jpg
package main

import (
	"fmt"
	"os"

	"github.com/osolmaz/tools/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "padify: %v\n", err)
		os.Exit(1)
	}
}
