package main

import (
	"fmt"
	"io"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/x/multisig"
	"github.com/spf13/cobra"
)

func digestCmd(conf *Config) *cobra.Command {
	var seed, commitment string
	var expiry int64
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Print the digest signers approve for a commitment",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := onesig.ParseHash(seed)
			if err != nil {
				return errors.Wrap(err, "seed")
			}
			root, err := onesig.ParseHash(commitment)
			if err != nil {
				return errors.Wrap(err, "commitment")
			}
			digest, err := multisig.BuildDigest(s, root, onesig.UnixTime(expiry))
			if err != nil {
				return err
			}
			res := struct {
				Digest onesig.Hash `json:"digest"`
			}{Digest: digest}
			return render(cmd.OutOrStdout(), conf, res, func(w io.Writer) {
				fmt.Fprintln(w, digest)
			})
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "batch seed of the instance, hex")
	cmd.Flags().StringVar(&commitment, "commitment", "", "merkle root of the batch, hex")
	cmd.Flags().Int64Var(&expiry, "expiry", 0, "expiry as unix seconds")
	_ = cmd.MarkFlagRequired("seed")
	_ = cmd.MarkFlagRequired("commitment")
	_ = cmd.MarkFlagRequired("expiry")
	return cmd
}
