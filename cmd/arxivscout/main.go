package main

import (
	"arxivscout/cmd/handlers"
	"arxivscout/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	handlers.Execute()
}
