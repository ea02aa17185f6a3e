// SPDX-License-Identifier: MIT

// Package cli is the command line surface of panacus: a cobra command tree
// whose flags are bound through viper, so that a YAML run configuration
// (see package config) supplies defaults and explicit flags override them.
package cli

import (
	"fmt"

	"github.com/heringerp/panacus/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// NewRootCmd builds the command tree. Every call returns an independent
// tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:           "panacus",
		Short:         "Count and grow pangenome coverage from variation graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if v.GetBool("verbose") {
				log.SetLevel(log.DebugLevel)
			}
			path := v.GetString("config")
			if path == "" {
				return nil
			}
			run, err := config.Load(path)
			if err != nil {
				return err
			}
			log.Debugf("cli: run configuration from %s", path)
			v.SetDefault("coverage", run.Coverage)
			v.SetDefault("quorum", run.Quorum)
			v.SetDefault("threads", run.Threads)
			return nil
		},
	}
	root.PersistentFlags().StringP("config", "c", "", "YAML run configuration")
	root.PersistentFlags().BoolP("verbose", "v", false, "log debug messages")
	mustBindFlags(v, root.PersistentFlags())

	root.AddCommand(newGrowthCmd(v))

	return root
}

// Execute runs the command tree with os.Args.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		log.Errorf("%v", err)
		return err
	}

	return nil
}

// mustBindFlags binds every flag of fs under its own name. Binding only
// fails for a nil flag set, which is a programming error.
func mustBindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	if err := v.BindPFlags(fs); err != nil {
		panic(fmt.Sprintf("cli: bind flags: %v", err))
	}
}
