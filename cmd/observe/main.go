// Command observe replays mutation scripts against an observable collection
// and prints the notifications they raise.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/observe/cmd/observe/cmd"
	"github.com/go-drift/observe/pkg/errors"
)

func main() {
	defer errors.Recover("observe.main")

	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
