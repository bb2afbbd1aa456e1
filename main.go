// Package main is the entry point for the finetic application.
package main

import (
	"github.com/finetic-cli/finetic/cmd"
	"github.com/finetic-cli/finetic/config"
	"github.com/finetic-cli/finetic/internal/cache"
	"github.com/finetic-cli/finetic/internal/sync"
	"github.com/finetic-cli/finetic/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Initialize asynchronous background processes for cache maintenance and
	// redelivery of playback reports that failed to reach the server.
	go cache.CollectGarbage()
	go sync.ReconcileFailures()

	cmd.Execute()
}
