// SPDX-License-Identifier: MIT

// Command panacus computes pangenome growth curves.
package main

import (
	"os"

	"github.com/heringerp/panacus/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
