package commands

import (
	"fmt"
	"os"

	"propmedia/pkg/logger"
)

func ExitOnError(err error) {
	logger.Error("propmedia error", "err", err.Error())
	os.Exit(1)
}

func HandleHelp(_ []string) {
	fmt.Println(`propmedia — media ingestion service

Usage:
  propmedia run <config.yml>   start the HTTP server
  propmedia version            print the version
  propmedia help               print this help`) //nolint
}
