package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/app"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/store/iavl"
	"github.com/iov-one/onesig/x/host"
	"github.com/iov-one/onesig/x/multisig"
	"github.com/spf13/cobra"
)

type genesisInstance struct {
	Instance onesig.Identity `json:"instance"`
	Agent    onesig.Identity `json:"agent"`
}

type genesisResult struct {
	AppHash   string            `json:"app_hash"`
	Instances []genesisInstance `json:"instances"`
}

// genesisCmd applies a genesis file to an empty in-memory state. Operators
// use it to check the file and learn the agent identities to fund.
func genesisCmd(conf *Config) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "genesis",
		Short: "Apply a genesis file to an empty state and print the instance agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := app.LoadGenesis(file)
			if err != nil {
				return err
			}
			res, err := applyGenesis(gen.AppOptions)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), conf, res, func(w io.Writer) {
				fmt.Fprintln(w, res.AppHash)
				for _, i := range res.Instances {
					fmt.Fprintf(w, "%s %s\n", i.Instance, i.Agent)
				}
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "genesis.json", "genesis file")
	return cmd
}

func applyGenesis(opts onesig.Options) (*genesisResult, error) {
	db := iavl.NewMemCommitStore()
	ledger := app.NewLedger(db, app.NewRouter(), &onesig.EventLog{})
	inits := app.ChainInitializers(host.Initializer{}, &multisig.Initializer{})
	id, err := ledger.InitChain(inits, opts)
	if err != nil {
		return nil, err
	}

	var instances []multisig.InitMsg
	if err := opts.ReadOptions("multisig", &instances); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	view := db.CacheWrap()
	defer view.Discard()
	engine := multisig.NewEngine(nil)
	res := genesisResult{AppHash: hex.EncodeToString(id.Hash)}
	for _, i := range instances {
		agent, err := engine.Agent(view, i.Instance)
		if err != nil {
			return nil, errors.Wrapf(err, "instance %s", i.Instance)
		}
		res.Instances = append(res.Instances, genesisInstance{Instance: i.Instance, Agent: agent})
	}
	return &res, nil
}
