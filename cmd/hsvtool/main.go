// Command hsvtool works with hardware setup project files from the command
// line: export drawings and cable schedules, inspect projects, and check
// them against a catalog.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "hsvtool",
		Short:   "Tooling for hardware setup project files",
		Long:    "hsvtool exports, inspects, and validates .hsvproj hardware setup files without opening the editor.",
		Version: version.Version,
	}

	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newInfoCommand())
	rootCmd.AddCommand(newCheckCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
