package main

import (
	"github.com/NVIDIA/gathermeta/pkg/cli"
)

func main() {
	cli.Execute()
}
