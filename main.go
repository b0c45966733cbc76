package main

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bacalhau-project/lambdapushdown/cmd/cli"
)

func main() {
	start := time.Now()
	log.Trace().Msgf("Top of execution - %s", start.UTC())
	cli.Execute()
	log.Trace().Msgf("Execution finished - %s", time.Since(start))
}
