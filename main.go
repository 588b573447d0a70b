package main

import (
	"os"

	"github.com/sadopc/studysync/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
