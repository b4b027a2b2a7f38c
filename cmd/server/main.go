package main

import (
	"fmt"
	"os"

	"github.com/tanishqswami/fit-hub-management-system/internal/app"
)

func main() {
	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fithub: %v\n", err)
		os.Exit(1)
	}
}
