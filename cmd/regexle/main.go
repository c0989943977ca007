// Package main is the entry point for the regexle CLI.
package main

import (
	"github.com/regexle/regexle-go/cmd/regexle/cmd"
)

func main() {
	cmd.Execute()
}
