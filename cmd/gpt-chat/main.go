// Package main provides the gpt-chat command-line client.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// main is the program entry point.
func main() {
	cmd := newRootCommand(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errSilentExit) {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
