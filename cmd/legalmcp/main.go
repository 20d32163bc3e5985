package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess       = 0 // Command completed
	ExitQualityFailed = 1 // Evaluation completed but fell below the required tier
	ExitError         = 2 // Configuration or runtime error
)

// QualityFailureError indicates the evaluation ran successfully but the
// scoreboard landed below the tier the caller required.
type QualityFailureError struct {
	Message string
}

func (e *QualityFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var qualityErr *QualityFailureError
		if errors.As(err, &qualityErr) {
			os.Exit(ExitQualityFailed)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
