package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/specialistvlad/toymeas/internal/app"
	"github.com/specialistvlad/toymeas/internal/hcl"
	"github.com/spf13/cobra"
)

func runCmd(g *globalFlags, logW io.Writer) *cobra.Command {
	var output, connector string

	c := &cobra.Command{
		Use:   "run SETUP_PATH",
		Short: "Finalize a setup and write its expected distributions",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.appConfig(args[0], output, connector)
			if err != nil {
				return err
			}
			sum, err := app.NewApp(logW, cfg, hcl.NewLoader()).Run(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range sum.Outputs {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	c.Flags().StringVarP(&output, "output", "o", "", "Output file (overrides the setup's output).")
	c.Flags().StringVarP(&connector, "connector", "c", "", "Data connector: chiral or nominal (overrides the setup's connector).")
	return c
}

func validateCmd(g *globalFlags, logW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate SETUP_PATH",
		Short: "Load and finalize a setup without generating anything",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.appConfig(args[0], "", "")
			if err != nil {
				return err
			}
			sum, err := app.NewApp(logW, cfg, hcl.NewLoader()).Validate(cmd.Context())
			if err != nil {
				return err
			}
			energies := make([]string, len(sum.Energies))
			for i, e := range sum.Energies {
				energies[i] = e.String()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK (energies: %s)\n", strings.Join(energies, ", "))
			return nil
		},
	}
}

func inspectCmd() *cobra.Command {
	var minValue float64

	c := &cobra.Command{
		Use:   "inspect OUTPUT_FILE",
		Short: "Summarize a written output file",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Inspect(cmd.OutOrStdout(), args[0], minValue)
		},
	}
	c.Flags().Float64Var(&minValue, "min", 0, "Only bins above this value count towards the integral.")
	return c
}

func initCmd() *cobra.Command {
	var (
		energy float64
		force  bool
		opts   hcl.SkeletonOptions
	)

	c := &cobra.Command{
		Use:   "init [FILE]",
		Short: "Write a starter setup file (stdout when FILE is omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Energy = energy
			if len(args) == 0 {
				return hcl.WriteSkeleton(cmd.OutOrStdout(), opts)
			}

			flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
			if force {
				flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
			}
			f, err := os.OpenFile(args[0], flags, 0o644)
			if err != nil {
				return &ExitError{Code: ExitFailure, Message: err.Error()}
			}
			defer f.Close()
			if err := hcl.WriteSkeleton(f, opts); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), args[0])
			return nil
		},
	}
	c.Flags().Float64Var(&energy, "energy", 250, "Center-of-mass energy in GeV.")
	c.Flags().StringVar(&opts.Source, "source", "", "Path of the distribution source.")
	c.Flags().StringVar(&opts.Output, "output", "", "Output file of the setup.")
	c.Flags().StringSliceVar(&opts.Distributions, "distribution", nil, "Distribution to select (repeatable).")
	c.Flags().BoolVar(&force, "force", false, "Overwrite FILE if it exists.")
	return c
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

// exactArgs reports a wrong argument count as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &ExitError{Code: ExitUsage, Message: err.Error()}
		}
		return nil
	}
}
