package main

import (
	"os"

	"github.com/signalytics/pokedex/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
