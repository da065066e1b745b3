package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/catalog"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/export"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/project"
)

func newExportCommand() *cobra.Command {
	var catalogDir string
	var output string
	var format string
	var width, height int

	cmd := &cobra.Command{
		Use:   "export <project.hsvproj>",
		Short: "Export a project as PNG, SVG, PDF, or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args[0], catalogDir, output, format, width, height)
		},
	}

	cmd.Flags().StringVarP(&catalogDir, "catalog", "c", "catalog", "Catalog directory")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: project name with format extension)")
	cmd.Flags().StringVarP(&format, "format", "f", "png", "Output format: png, svg, pdf, xlsx")
	cmd.Flags().IntVar(&width, "width", 1200, "Image width in pixels (png, svg)")
	cmd.Flags().IntVar(&height, "height", 800, "Image height in pixels (png, svg)")

	return cmd
}

func runExport(projectPath, catalogDir, output, format string, width, height int) error {
	cat, err := catalog.LoadDir(catalogDir)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	proj, err := project.Load(projectPath)
	if err != nil {
		return err
	}

	if output == "" {
		output = strings.TrimSuffix(projectPath, project.Extension) + "." + format
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	scene := proj.BuildDiagram(cat).BuildScene()
	opts := export.DefaultOptions()
	opts.Width = width
	opts.Height = height
	opts.Title = proj.Name
	if opts.Title == "" {
		opts.Title = strings.TrimSuffix(filepath.Base(projectPath), project.Extension)
	}

	switch format {
	case "png":
		err = export.WritePNG(scene, f, opts)
	case "svg":
		err = export.WriteSVG(scene, f, opts)
	case "pdf":
		err = export.WritePDF(scene, f, opts.Title)
	case "xlsx":
		err = export.WriteXLSX(scene, f)
	default:
		err = fmt.Errorf("unknown format %q (want png, svg, pdf, or xlsx)", format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", output)
	return nil
}
