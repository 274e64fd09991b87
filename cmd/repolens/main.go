package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/repolens/repolens/internal/redact"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	code := 1
	var ece *exitCodeError
	if errors.As(err, &ece) {
		code = ece.code
	}
	// Error text may embed a token passed on the command line.
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(os.Stderr, redact.String(msg))
	}
	os.Exit(code)
}
