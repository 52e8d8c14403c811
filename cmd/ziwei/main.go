// Package main implements the ziwei command-line tool, which computes Zi
// Wei Dou Shu natal charts, palace relations and classical patterns from
// lunar birth facts without a server or database.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
