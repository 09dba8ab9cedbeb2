package main

import (
	"github.com/0xPolygon/edge-modules/command/root"
)

func main() {
	root.NewRootCommand().Execute()
}
