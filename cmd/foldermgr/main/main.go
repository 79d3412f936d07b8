package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/foldermgr/cmd/foldermgr"
)

func main() {
	rootCmd := foldermgr.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, foldermgr.RenderError(err))
		os.Exit(1)
	}
}
