package main

import (
	"fmt"
	"os"

	"github.com/Rakhulsr/general-equipments/app/cmd"
)

func main() {
	if err := cmd.RunCli(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
