package main

import (
	"os"

	nullspacecmd "github.com/nullspace/nullspace/cmd/nullspace"
)

func main() {
	if err := nullspacecmd.Execute(); err != nil {
		os.Exit(1)
	}
}
