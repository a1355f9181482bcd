package main

import (
	"os"

	"github.com/unhappychoice/gittype-sub005/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
