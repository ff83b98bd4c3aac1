// Package buildinfo holds version data injected at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/storefront/internal/buildinfo.Version=v1.0.0"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = ""
	Date    = ""
	Commit  = ""
)

func valueOrNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

// PrintBuildData writes version, date and commit to w, with "N/A" for
// values that were not set.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", valueOrNA(Version))
	fmt.Fprintf(w, "Build date: %s\n", valueOrNA(Date))
	fmt.Fprintf(w, "Build commit: %s\n", valueOrNA(Commit))
}
