// Command valves reads a valve network description and prints the best
// total pressure release one agent, or two, can achieve within the budget.
//
//	valves --input caves.txt
//	valves --agents 2 --paths < caves.txt
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
