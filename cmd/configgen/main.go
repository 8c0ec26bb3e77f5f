package main

import (
	"github.com/danmuck/assembler/internal/config"
	"github.com/danmuck/assembler/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	output := pflag.String("output", config.DefaultPath, "output path for config template")
	validate := pflag.Bool("validate", false, "validate an existing config file")
	input := pflag.String("input", config.DefaultPath, "config path for validation")
	force := pflag.Bool("force", false, "overwrite existing config file")
	pflag.Parse()

	logging.ConfigureRuntime()

	if *validate {
		if _, err := config.Load(*input); err != nil {
			log.Fatal().Err(err).Msg("config validation failed")
		}
		log.Info().Msgf("Validated fragctl config at %s", *input)
		return
	}

	if err := config.WriteTemplate(*output, *force); err != nil {
		log.Fatal().Err(err).Msg("config template write failed")
	}
	log.Info().Msgf("Wrote fragctl config template to %s", *output)
}
