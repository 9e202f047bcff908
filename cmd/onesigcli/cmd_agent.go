package main

import (
	"fmt"
	"io"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/x/multisig"
	"github.com/spf13/cobra"
)

func agentCmd(conf *Config) *cobra.Command {
	var instance, program string
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Print the agent identity of an instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if program == "" {
				program = conf.ProgramID
			}
			if program == "" {
				return errors.Wrap(errors.ErrEmpty, "program identity, use --program or ONESIG_PROGRAM_ID")
			}
			prog, err := onesig.ParseIdentity(program)
			if err != nil {
				return errors.Wrap(err, "program")
			}
			inst, err := onesig.ParseIdentity(instance)
			if err != nil {
				return errors.Wrap(err, "instance")
			}
			agent, bump, err := multisig.FindAgent(prog, inst)
			if err != nil {
				return err
			}
			res := struct {
				Agent onesig.Identity `json:"agent"`
				Bump  uint8           `json:"bump"`
			}{Agent: agent, Bump: bump}
			return render(cmd.OutOrStdout(), conf, res, func(w io.Writer) {
				fmt.Fprintf(w, "%s %d\n", agent, bump)
			})
		},
	}
	cmd.Flags().StringVar(&instance, "instance", "", "instance identity, base58")
	cmd.Flags().StringVar(&program, "program", "", "program identity, base58, defaults to ONESIG_PROGRAM_ID")
	_ = cmd.MarkFlagRequired("instance")
	return cmd
}

func versionCmd(conf *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of the multisig program",
		RunE: func(cmd *cobra.Command, args []string) error {
			res := struct {
				Version string `json:"version"`
			}{Version: multisig.Version}
			return render(cmd.OutOrStdout(), conf, res, func(w io.Writer) {
				fmt.Fprintln(w, multisig.Version)
			})
		},
	}
}
