// Command splitbill runs cost allocations from the terminal.
//
//	splitbill run                       # built-in verification scenarios
//	splitbill run scenarios.yaml        # scenarios from a YAML file
//	splitbill allocate --total 300 --fixed 90 --days 30 \
//	    --person Alice --person Bob:0-9 --person Charlie
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
