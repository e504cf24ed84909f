// Command aerofs is a small command-line client for an AeroFS appliance.
package main

import (
	"fmt"
	"os"

	"github.com/Ning0612/aerofs-go/internal/logger"
)

func main() {
	err := newRootCmd().Execute()
	_ = logger.Shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
