// Package buildinfo carries the version stamped into the binary at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/storefront/internal/buildinfo.Version=v1.2.0 \
//	  -X github.com/dmitrijs2005/storefront/internal/buildinfo.Date=$(date -u +%F) \
//	  -X github.com/dmitrijs2005/storefront/internal/buildinfo.Commit=$(git rev-parse --short HEAD)" ./cmd/cli
package buildinfo

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
)

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// AppName is the banner text.
const AppName = "storefront"

// PrintBanner writes the application name as ASCII art.
func PrintBanner(w io.Writer) {
	fmt.Fprintln(w, figure.NewFigure(AppName, "cybermedium", true).String())
}

// PrintBuildData writes the version, date and commit, one per line.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
