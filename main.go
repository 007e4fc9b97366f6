// main is the entry point for the whatsmygrade CLI.
package main

import (
	"github.com/huangsam/whatsmygrade/cmd"
	"github.com/huangsam/whatsmygrade/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Error running whatsmygrade", err)
	}
}
