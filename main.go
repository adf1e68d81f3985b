package main

import (
	"os"

	"github.com/jmllr/ytnotes/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
