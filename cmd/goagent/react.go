package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/goagent/react"
)

func newReactCmd(a *app) *cobra.Command {
	var (
		maxSteps   int
		malformed  string
		transcript bool
		exportDir  string
	)

	cmd := &cobra.Command{
		Use:   "react [question]",
		Short: "Answer a question with the think/act/observe loop",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if maxSteps > 0 {
				cfg.ReAct.MaxSteps = maxSteps
			}
			if malformed != "" {
				cfg.ReAct.MalformedPolicy = react.MalformedPolicy(malformed)
			}
			if exportDir != "" {
				cfg.Memory.ExportPath = exportDir
			}

			k, err := a.newKernel(cmd, cfg)
			if err != nil {
				return err
			}

			result, err := k.RunReAct(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("react run failed: %w", err)
			}

			if transcript {
				fmt.Fprintln(cmd.ErrOrStderr(), result.Transcript())
			}
			return a.printAnswer(cmd, result.Answer)
		},
	}

	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "Maximum model calls (overrides config)")
	cmd.Flags().StringVar(&malformed, "malformed", "", "Malformed action policy: skip or observe")
	cmd.Flags().BoolVar(&transcript, "transcript", false, "Print every step to stderr")
	cmd.Flags().StringVar(&exportDir, "trajectory-dir", "", "Write the step transcript under this directory")
	return cmd
}
