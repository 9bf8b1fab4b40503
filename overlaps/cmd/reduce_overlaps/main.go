// Copyright 2010-2024 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// The reduce_overlaps command reads groups of intervals and prints every way of picking
// one interval per group so that no two picked intervals overlap.
//
// The groups are read from the file given as argument, or from stdin:
//
//	reduce_overlaps --strategy=forward --max_solutions=10 groups.yaml
//
// Every flag can also be set in the file given by --config, or through an environment
// variable such as REDUCE_OVERLAPS_MAX_TIME=5s.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	log "github.com/golang/glog"
	"github.com/ortools-contrib/overlaps/overlaps/go/search"
	"github.com/ortools-contrib/overlaps/overlaps/go/selection"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "REDUCE_OVERLAPS"

// options holds the resolved flags of one run.
type options struct {
	params search.Parameters
	output string
}

func loadOptions(v *viper.Viper) (options, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return options{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		log.V(1).Infof("Read config from %s", v.ConfigFileUsed())
	}
	strategy, err := search.ParseStrategy(v.GetString("strategy"))
	if err != nil {
		return options{}, err
	}
	output := v.GetString("output")
	if err := checkOutput(output); err != nil {
		return options{}, err
	}
	return options{
		params: search.Parameters{
			MaxSolutions: v.GetInt64("max_solutions"),
			MaxTime:      v.GetDuration("max_time"),
			Strategy:     strategy,
		},
		output: output,
	}, nil
}

func reduceOverlaps(in io.Reader, out io.Writer, opts options) error {
	groups, err := loadGroups(in)
	if err != nil {
		return err
	}
	m, err := selection.Build(groups)
	if err != nil {
		return fmt.Errorf("failed to instantiate the selection model: %w", err)
	}
	res, err := search.SearchWithParameters(m, &opts.params)
	if err != nil {
		return fmt.Errorf("failed to search the model: %w", err)
	}
	return writeResponse(out, opts.output, res)
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "reduce_overlaps [file]",
		Short: "Enumerates the non-overlapping selections of one interval per group",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(v)
			if err != nil {
				return err
			}
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return reduceOverlaps(in, cmd.OutOrStdout(), opts)
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.String("config", "", "YAML file holding default values for the flags below")
	flags.Int64("max_solutions", 0, "stop after this many solutions, 0 for no limit")
	flags.Duration("max_time", 0, "stop after this long, 0 for no limit")
	flags.String("strategy", search.LazyPairwise.String(), "search strategy: lazy, forward or sat")
	flags.String("output", outputText, "output format: text or json")
	if err := v.BindPFlags(flags); err != nil {
		log.Fatalf("Binding flags failed: %v", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Exitf("reduce_overlaps returned with error: %v", err)
	}
}
