package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

func main() {
	a := &app{fs: afero.NewOsFs(), stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := a.rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "geotext:", err)
		os.Exit(1)
	}
}
