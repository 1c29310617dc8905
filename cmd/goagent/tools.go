package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/goagent/observability"
	"github.com/tailored-agentic-units/goagent/tools"
	"github.com/tailored-agentic-units/goagent/toolkit"
)

func newToolsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the built-in tools enabled by the current config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			reg := tools.NewRegistry(observability.NoOpObserver{})
			if err := toolkit.Register(reg, &cfg.Tools); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), reg.Describe())
			return err
		},
	}
}
