package main

import (
	"os"

	"github.com/dshills/revmob/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
