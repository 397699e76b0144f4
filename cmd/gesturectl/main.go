// Command gesturectl inspects gesture recognizer configurations: it validates
// a config file, lists the event names each recognizer can emit and shows
// which of them a Manager would subscribe to.
package main

import (
	"os"

	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if err := buildRootCmd(&logger).Execute(); err != nil {
		logger.Error().Err(err).Msg("gesturectl failed")
		os.Exit(1)
	}
}
