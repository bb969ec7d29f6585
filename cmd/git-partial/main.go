package main

import (
	"os"

	"github.com/bianoble/git-partial/cmd/git-partial/cmd"
	"github.com/bianoble/git-partial/pkg/gitpartial"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// 2: refused before changing anything.
		if gitpartial.IsPrecondition(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
