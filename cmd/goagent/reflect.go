package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newReflectCmd(a *app) *cobra.Command {
	var (
		maxIterations int
		trajectory    bool
		exportDir     string
	)

	cmd := &cobra.Command{
		Use:   "reflect [task]",
		Short: "Draft, critique and refine an answer to a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if maxIterations > 0 {
				cfg.Reflection.MaxIterations = maxIterations
			}
			if exportDir != "" {
				cfg.Memory.ExportPath = exportDir
			}

			k, err := a.newKernel(cmd, cfg)
			if err != nil {
				return err
			}

			result, err := k.RunReflection(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("reflection run failed: %w", err)
			}

			if trajectory {
				fmt.Fprintln(cmd.ErrOrStderr(), result.Trajectory)
			}
			return a.printAnswer(cmd, result.Content)
		},
	}

	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "Maximum critique rounds (overrides config)")
	cmd.Flags().BoolVar(&trajectory, "trajectory", false, "Print every attempt and critique to stderr")
	cmd.Flags().StringVar(&exportDir, "trajectory-dir", "", "Write the trajectory under this directory")
	return cmd
}
