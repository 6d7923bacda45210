package main

import (
	"os"

	"github.com/dshills/tabgroup/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
