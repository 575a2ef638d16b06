// Package main provides the entry point for the imgsweep CLI.
//
// imgsweep saves every image a web page references, picking the
// highest-resolution variant each image declares.
//
// Usage:
//
//	imgsweep export https://example.com/gallery
//	imgsweep export --render -o ./pics https://example.com/app
//	imgsweep export capture.yaml
//
// See --help for all available options.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

// main is the entry point for imgsweep.
func main() {
	if err := fang.Execute(
		context.Background(),
		NewRootCmd(),
		fang.WithVersion(getVersion()),
		fang.WithCommit(getCommit()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
