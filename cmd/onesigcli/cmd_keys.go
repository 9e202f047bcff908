package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/crypto"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/x/multisig"
	"github.com/spf13/cobra"
)

func signCmd(conf *Config) *cobra.Command {
	var key, digest string
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a commitment digest with a secp256k1 key",
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := crypto.LoadSecpKey(key)
			if err != nil {
				return errors.Wrap(err, "key")
			}
			d, err := onesig.ParseHash(digest)
			if err != nil {
				return errors.Wrap(err, "digest")
			}
			sig, err := crypto.SignDigest(priv, d)
			if err != nil {
				return err
			}
			res := struct {
				Signer    multisig.Address `json:"signer"`
				Signature string           `json:"signature"`
			}{Signer: crypto.KeyAddress(priv), Signature: "0x" + hex.EncodeToString(sig)}
			return render(cmd.OutOrStdout(), conf, res, func(w io.Writer) {
				fmt.Fprintln(w, res.Signature)
			})
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "private key, hex")
	cmd.Flags().StringVar(&digest, "digest", "", "digest to sign, hex")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("digest")
	return cmd
}

func recoverCmd(conf *Config) *cobra.Command {
	var digest, signatures string
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Print the signer addresses of concatenated signatures",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := onesig.ParseHash(digest)
			if err != nil {
				return errors.Wrap(err, "digest")
			}
			raw, err := hex.DecodeString(strings.TrimPrefix(signatures, "0x"))
			if err != nil {
				return errors.Wrapf(errors.ErrInput, "signatures: %s", err)
			}
			signers, err := multisig.Signers(d, raw)
			if err != nil {
				return err
			}
			res := struct {
				Signers []multisig.Address `json:"signers"`
			}{Signers: signers}
			return render(cmd.OutOrStdout(), conf, res, func(w io.Writer) {
				for _, s := range signers {
					fmt.Fprintln(w, strings.ToLower(s.Hex()))
				}
			})
		},
	}
	cmd.Flags().StringVar(&digest, "digest", "", "signed digest, hex")
	cmd.Flags().StringVar(&signatures, "signatures", "", "concatenated 65 byte signatures, hex")
	_ = cmd.MarkFlagRequired("digest")
	_ = cmd.MarkFlagRequired("signatures")
	return cmd
}
