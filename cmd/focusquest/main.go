package main

import (
	"os"

	"focusquest/cmd/focusquest/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
