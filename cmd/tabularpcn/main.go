package main

import (
	"fmt"
	"os"

	"github.com/q12we34rt5/tabularpcn/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
