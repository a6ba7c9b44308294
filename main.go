package main

import (
	"fmt"
	"os"

	"github.com/morikuni/failure/v2"

	"github.com/ziadkadry99/packdocs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		userMessage := err.Error()
		if fmsg := failure.MessageOf(err); fmsg != "" {
			userMessage = fmsg.String()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", userMessage)
		// The user message hides the cause and any command hint.
		if userMessage != err.Error() {
			fmt.Fprintf(os.Stderr, "  %v\n", err)
		}
		os.Exit(1)
	}
}
