// Copyright (c) 2026 nrbf-go Authors

package main

import (
	"fmt"
	"os"

	nrbf_tui "github.com/nrbf-go/nrbf-go/internal/tui"
	"github.com/spf13/pflag"
)

///////////////////////////////////////////////////////////////////////////////

func main() {
	var config nrbf_tui.Config
	var showHelp bool

	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help")
	pflag.BoolVarP(&config.Zstd, "zstd", "z", false, "Input is zstd (useful for handling zstd on stdin)")
	pflag.Parse()

	if showHelp {
		fmt.Fprintf(os.Stdout, "usage: %s [options] file\n\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(0)
	}

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [options] file\n", os.Args[0])
		os.Exit(1)
	}
	config.Path = args[0]

	if err := nrbf_tui.Run(config); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
}
