// Command adder adds signed 32-bit integers and verifies the sums against
// scenario files.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/adder/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
