package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/x/multisig"
	"github.com/spf13/cobra"
)

func leafCmd(conf *Config) *cobra.Command {
	var instance, action, decode string
	var id, nonce uint64
	cmd := &cobra.Command{
		Use:   "leaf",
		Short: "Encode an action into a commitment leaf",
		Long: `Encode an action into a commitment leaf and print its bytes and hash.

The action is given as JSON, for example
  {"program": "<base58>", "accounts": [{"pubkey": "<base58>", "is_signer": true}],
   "data": "<base64>", "value": 100}
Only the agent of the instance may be flagged as a signer.

With --decode the hex encoded leaf bytes are parsed and printed instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if decode != "" {
				return decodeLeaf(cmd.OutOrStdout(), conf, decode)
			}
			if instance == "" || action == "" {
				return errors.Wrap(errors.ErrEmpty, "--instance and --action are required")
			}
			inst, err := onesig.ParseIdentity(instance)
			if err != nil {
				return errors.Wrap(err, "instance")
			}
			var a multisig.Action
			if err := json.Unmarshal([]byte(action), &a); err != nil {
				return errors.Wrapf(errors.ErrInput, "action: %s", err)
			}
			leaf := multisig.Leaf{Instance: inst, ID: id, Nonce: nonce, Action: a}
			raw, err := leaf.Encode()
			if err != nil {
				return err
			}
			hash := multisig.HashLeaf(raw)
			res := struct {
				Leaf string      `json:"leaf"`
				Hash onesig.Hash `json:"hash"`
			}{Leaf: hex.EncodeToString(raw), Hash: hash}
			return render(cmd.OutOrStdout(), conf, res, func(w io.Writer) {
				fmt.Fprintf(w, "leaf: %s\nhash: %s\n", res.Leaf, hash)
			})
		},
	}
	cmd.Flags().StringVar(&instance, "instance", "", "instance identity, base58")
	cmd.Flags().Uint64Var(&id, "id", 0, "instance id")
	cmd.Flags().Uint64Var(&nonce, "nonce", 0, "replay counter value the leaf is bound to")
	cmd.Flags().StringVar(&action, "action", "", "action as JSON")
	cmd.Flags().StringVar(&decode, "decode", "", "hex encoded leaf bytes to decode")
	return cmd
}

func decodeLeaf(w io.Writer, conf *Config, encoded string) error {
	raw, err := hex.DecodeString(strings.TrimPrefix(encoded, "0x"))
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "leaf: %s", err)
	}
	leaf, err := multisig.DecodeLeaf(raw)
	if err != nil {
		return err
	}
	res := struct {
		Leaf *multisig.Leaf `json:"leaf"`
		Hash onesig.Hash    `json:"hash"`
	}{Leaf: leaf, Hash: multisig.HashLeaf(raw)}
	return render(w, conf, res, func(w io.Writer) {
		fmt.Fprintf(w, "instance: %s\nid: %d\nnonce: %d\nprogram: %s\nvalue: %d\nhash: %s\n",
			leaf.Instance, leaf.ID, leaf.Nonce, leaf.Action.Program, leaf.Action.Value, res.Hash)
	})
}

func treeCmd(conf *Config) *cobra.Command {
	var leavesPath string
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Build a commitment tree and print its root and proofs",
		Long: `Build a commitment tree from leaf hashes and print its root and the
membership proof of every leaf. The leaves file is a JSON list of hex
encoded hashes, "-" reads it from the standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if leavesPath == "-" {
				raw, err = ioutil.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = ioutil.ReadFile(leavesPath)
			}
			if err != nil {
				return errors.Wrap(errors.ErrInput, err.Error())
			}
			return buildTree(cmd.OutOrStdout(), conf, raw)
		},
	}
	cmd.Flags().StringVar(&leavesPath, "leaves", "-", "path to a JSON list of leaf hashes")
	return cmd
}

type treeResult struct {
	Root   onesig.Hash     `json:"root"`
	Proofs [][]onesig.Hash `json:"proofs"`
}

func buildTree(out io.Writer, conf *Config, raw []byte) error {
	var leaves []onesig.Hash
	if err := json.Unmarshal(raw, &leaves); err != nil {
		return errors.Wrapf(errors.ErrInput, "leaves: %s", err)
	}
	tree, err := multisig.NewTree(leaves)
	if err != nil {
		return err
	}
	res := treeResult{Root: tree.Root(), Proofs: make([][]onesig.Hash, tree.Len())}
	for i := range res.Proofs {
		if res.Proofs[i], err = tree.Proof(i); err != nil {
			return err
		}
	}
	return render(out, conf, res, func(w io.Writer) {
		fmt.Fprintf(w, "root: %s\n", res.Root)
		for i, proof := range res.Proofs {
			fmt.Fprintf(w, "proof %d:", i)
			for _, h := range proof {
				fmt.Fprintf(w, " %s", h)
			}
			fmt.Fprintln(w)
		}
	})
}
