package main

import (
	"os"

	"github.com/sandeepkv93/tminus/internal/cli"
	"github.com/sandeepkv93/tminus/internal/logging"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		logging.Error(err.Error())
		os.Exit(1)
	}
}
