package main

import (
	"fmt"
	"os"

	"github.com/interpretive-systems/triptych/internal/cli"
)

// version is set by the linker at release time.
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
