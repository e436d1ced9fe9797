package main

import (
	"os"

	"github.com/heathj/domkit/cli"
)

func main() {
	os.Exit(cli.Execute())
}
