package main

import (
	"log/slog"

	"github.com/nullspace/nullspace/pkg/logger"
)

func main() {
	// Create a colored logger
	log := logger.NewDefaultLogger(slog.LevelDebug)

	log.Info("============================================")
	log.Info("    NULLspace Colored Logger Demo")
	log.Info("============================================")
	log.Info("")

	log.Debug("Debug message - standard color")
	log.Info("Info message - standard color")
	log.Info("Fetched studies from GeneLab - green!")
	log.Info("Study records cached - also green!")
	log.Warn("Warning message - yellow!")
	log.Error("Error message - red!")

	log.Info("")
	log.Info("Catalog operations are highlighted in green:")
	log.Info("Fetched studies from GeneLab", "count", 20, "term", "spaceflight")
	log.Info("Study records cached", "ttl", "1h")

	log.Info("")
	log.Warn("Warnings appear in yellow for attention")
	log.Error("Errors appear in red for immediate visibility")

	log.Info("")
	log.Info("Demo complete!")
}
