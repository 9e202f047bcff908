// Command onesigcli prepares and inspects multisig commitments off the
// ledger. Signers use it to compute the digest they approve, the leaves of
// a batch and the membership proofs executors submit.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	conf, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := newRootCmd(conf).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd returns the command tree. All commands write to the command
// output so that they can be run in tests.
func newRootCmd(conf Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "onesigcli",
		Short:         "Off-ledger tooling for multisig commitments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&conf.Output, "output", "o", conf.Output, "output format, text or json")
	root.AddCommand(
		digestCmd(&conf),
		leafCmd(&conf),
		treeCmd(&conf),
		signCmd(&conf),
		recoverCmd(&conf),
		agentCmd(&conf),
		genesisCmd(&conf),
		versionCmd(&conf),
	)
	return root
}
