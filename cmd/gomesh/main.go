package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gomesh/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gomesh",
	Short: "Surface measurement over triangulated meshes",
	Long: `gomesh measures triangulated 3D surfaces: geodesic distances along
the surface, region selection and surface area. It reads ASCII and
binary STL files.`,
	Version: version.GetVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
