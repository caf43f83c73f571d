// ./main.go
package main

import (
	"github.com/wgabrys88/franz/cmd"
)

// main is the entry point for the franz binary.
func main() {
	// Execute the root command defined in the cmd package.
	// This handles all command-line parsing, configuration, and execution.
	cmd.Execute()
}
