package main

import (
	"errors"
	"fmt"
	"os"

	apperrors "retention-workers/internal/common/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var stdErr *apperrors.StandardError
		if errors.As(err, &stdErr) && stdErr.Details != "" {
			fmt.Fprintf(os.Stderr, "error: %s: %s\n", stdErr.Message, stdErr.Details)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
