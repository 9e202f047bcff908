package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/caarlos0/env/v6"
	"github.com/iov-one/onesig/errors"
)

// Config holds the defaults read from the environment. Flags take
// precedence.
type Config struct {
	// ProgramID is the base58 identity of the multisig program, used to
	// derive agent identities.
	ProgramID string `env:"ONESIG_PROGRAM_ID"`
	// Output is either text or json.
	Output string `env:"ONESIG_OUTPUT" envDefault:"text"`
}

func loadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return c, errors.Wrap(errors.ErrInput, err.Error())
	}
	return c, nil
}

// render writes the result in the configured format. Text output is
// produced by the text function.
func render(w io.Writer, conf *Config, result interface{}, text func(io.Writer)) error {
	switch conf.Output {
	case "json":
		raw, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
		_, err = fmt.Fprintf(w, "%s\n", raw)
		return err
	case "text", "":
		text(w)
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "unknown output format %q", conf.Output)
	}
}
