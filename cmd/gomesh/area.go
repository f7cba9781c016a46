package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gomesh/internal/engine"
	"github.com/philipparndt/gomesh/pkg/stl"
	"github.com/spf13/cobra"
)

var areaTriangles string

var areaCmd = &cobra.Command{
	Use:   "area [file]",
	Short: "Compute the surface area of a triangle selection",
	Long: `Sum the area of the given triangle indices. Without --triangles the
whole surface is measured.`,
	Args: cobra.ExactArgs(1),
	Run:  runArea,
}

func init() {
	rootCmd.AddCommand(areaCmd)

	areaCmd.Flags().StringVar(&areaTriangles, "triangles", "", "Comma-separated triangle indices (default: all)")
}

func runArea(cmd *cobra.Command, args []string) {
	filename := args[0]

	model, err := stl.Parse(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing STL file: %v\n", err)
		os.Exit(1)
	}
	m, err := model.ToMesh(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building mesh: %v\n", err)
		os.Exit(1)
	}

	var triangles []int
	if areaTriangles == "" {
		triangles = make([]int, m.TriangleCount())
		for i := range triangles {
			triangles[i] = i
		}
	} else {
		for _, field := range strings.Split(areaTriangles, ",") {
			idx, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid triangle index %q\n", field)
				os.Exit(1)
			}
			triangles = append(triangles, idx)
		}
	}

	eng := engine.New(engine.Options{})
	result, err := eng.ComputeArea(m, triangles)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Selection Area")
	fmt.Println("==============")
	fmt.Printf("Triangles: %d\n", result.TriangleCount)
	fmt.Printf("Area:      %.6f square units\n", result.Area)
}
