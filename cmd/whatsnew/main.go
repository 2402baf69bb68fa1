package main

import (
	"os"

	"github.com/ariel-frischer/whatsnew/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
