package main

import (
	"github.com/mindmatch/memoryledger/internal/cli"
)

func main() {
	cli.Execute()
}
