package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/philipparndt/gomesh/internal/engine"
	"github.com/philipparndt/gomesh/pkg/analysis"
	"github.com/philipparndt/gomesh/pkg/meshgraph"
	"github.com/philipparndt/gomesh/pkg/stl"
	"github.com/spf13/cobra"
)

var (
	pathStart    int
	pathEnd      int
	pathWatch    bool
	pathProgress bool
)

var pathCmd = &cobra.Command{
	Use:   "path [file]",
	Short: "Measure the geodesic path between two mesh vertices",
	Long: `Build the surface edge graph of a mesh and report the shortest path
along the surface between two vertex indices. Vertex indices refer to
the welded mesh (see "info" for the vertex count).`,
	Args: cobra.ExactArgs(1),
	Run:  runPath,
}

func init() {
	rootCmd.AddCommand(pathCmd)

	pathCmd.Flags().IntVar(&pathStart, "start", 0, "Start vertex index")
	pathCmd.Flags().IntVar(&pathEnd, "end", 0, "End vertex index")
	pathCmd.Flags().BoolVar(&pathWatch, "watch", false, "Re-measure whenever the file changes")
	pathCmd.Flags().BoolVar(&pathProgress, "progress", false, "Print graph build progress")
}

const pathContext = "cli"

func runPath(cmd *cobra.Command, args []string) {
	filename := args[0]

	eng := engine.New(engine.Options{})
	if err := loadAndBuild(eng, filename); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	reportPath(eng)

	if !pathWatch {
		return
	}

	sw, err := eng.Watch(pathContext, filename, func(err error) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Rebuild failed: %v\n", err)
			return
		}
		reportPath(eng)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", filename, err)
		os.Exit(1)
	}
	defer sw.Close()

	fmt.Printf("\nWatching %s for changes (Ctrl+C to stop)...\n", filename)
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt
}

// loadAndBuild parses the file, activates the CLI context and waits
// for the graph build to finish
func loadAndBuild(eng *engine.Engine, filename string) error {
	model, err := stl.Parse(filename)
	if err != nil {
		return fmt.Errorf("parsing STL file: %w", err)
	}
	m, err := model.ToMesh(filename)
	if err != nil {
		return fmt.Errorf("building mesh: %w", err)
	}

	eng.Activate(pathContext, m)

	done := make(chan error, 1)
	progress := func(p engine.BuildProgress) {
		if pathProgress {
			fmt.Printf("  %s: %d%% (%d/%d)\n", p.Stage, p.Percent, p.Current, p.Total)
		}
	}
	if err := eng.BuildGraph(pathContext, progress, func(err error) { done <- err }); err != nil {
		return err
	}
	return <-done
}

// reportPath runs the path query and prints the result
func reportPath(eng *engine.Engine) {
	path, err := eng.FindPath(pathStart, pathEnd, pathContext)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Println("Geodesic Path Measurement")
	fmt.Println("=========================")
	fmt.Printf("Start vertex: %d\n", pathStart)
	fmt.Printf("End vertex:   %d\n", pathEnd)

	if path == nil {
		fmt.Println("\nNo path: vertex out of range or vertices not connected")
		return
	}

	fmt.Printf("\nPath points: %d\n", len(path))
	for i, p := range path {
		fmt.Printf("  %3d: %s\n", i, analysis.FormatVector(p))
	}
	fmt.Printf("\nSurface distance: %.6f units\n", meshgraph.PathLength(path))
}
