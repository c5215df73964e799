// Package main is the entry point for the hoopsfeat CLI tool, which ingests
// basketball game logs and assembles leakage-free pre-game features.
package main

import "github.com/courtside/go-hoops-features/cmd"

func main() {
	cmd.Execute()
}
