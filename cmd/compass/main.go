package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // Command completed
	ExitInvalid = 1 // Input failed validation
	ExitError   = 2 // Configuration or runtime error
)

// InvalidInputError indicates the command ran but its input failed
// validation (e.g. a decision file that does not conform to the
// schema).
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var invalidErr *InvalidInputError
		if errors.As(err, &invalidErr) {
			os.Exit(ExitInvalid)
		}
		os.Exit(ExitError)
	}
}
