package main

import (
	"os"

	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/cmd/warpviz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
