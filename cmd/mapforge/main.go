package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/quiethollow/mapforge/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mapforge",
		Short: "Deterministic procedural world generator",
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(generateAllCmd())
	rootCmd.AddCommand(themesCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(minimapCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "generate [theme]",
		Short: "Generate a world document for one theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runGenerate(args[0], opts)
		},
	}
	addRunFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.filename, "filename", "", "output filename (default derived from theme and seed)")
	return cmd
}

func generateAllCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "generate-all",
		Short: "Generate world documents for every registered theme",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runGenerateAll(opts)
		},
	}
	addRunFlags(cmd, &opts)
	return cmd
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "generation seed")
	cmd.Flags().Float64Var(&opts.size, "size", 0, "map side length (default 400)")
	cmd.Flags().StringVar(&opts.outDir, "out", "maps", "output directory")
	cmd.Flags().StringVar(&opts.overridesFile, "overrides", "", "YAML file with seed/size/feature overrides")
	cmd.Flags().BoolVar(&opts.minimap, "minimap", false, "also render a minimap PNG per map")
}

func themesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List registered themes and their feature counts",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runThemes()
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [map-file]",
		Short: "Re-check a generated world document",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func minimapCmd() *cobra.Command {
	var resolution int
	var out string

	cmd := &cobra.Command{
		Use:   "minimap [map-file]",
		Short: "Render a minimap PNG from a world document",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runMinimap(args[0], resolution, out)
		},
	}
	cmd.Flags().IntVar(&resolution, "resolution", 128, "minimap resolution in cells")
	cmd.Flags().StringVar(&out, "out", "", "output PNG path (default alongside the map file)")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int
	var mapsDir string
	var logFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local dev server over a maps directory",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			srv := server.New(mapsDir, port, logFile)
			return srv.Start()
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	cmd.Flags().StringVar(&mapsDir, "maps", "maps", "directory of generated maps")
	cmd.Flags().StringVar(&logFile, "log-file", "", "log to this file with rotation instead of stderr")
	return cmd
}
