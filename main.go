// main is the entry point for the mcpcensus CLI.
package main

import (
	"github.com/huangsam/mcpcensus/cmd"
	"github.com/huangsam/mcpcensus/internal/contract"
	"github.com/huangsam/mcpcensus/internal/history"
)

func main() {
	cmd.SetHistoryManager(history.Manager)

	err := cmd.Execute()

	history.CloseStores()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}
	if err != nil {
		contract.LogFatal("Cannot run mcpcensus", err)
	}
}
