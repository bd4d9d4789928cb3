// main is the entry point for the relgate CLI.
package main

import (
	"github.com/huangsam/relgate/cmd"
	"github.com/huangsam/relgate/internal/contract"
	"github.com/huangsam/relgate/internal/history"
)

func main() {
	err := cmd.Execute()

	// Close before any fatal exit so SQLite flushes cleanly
	history.CloseHistory()

	if err != nil {
		contract.LogFatal("command failed", err)
	}
}
