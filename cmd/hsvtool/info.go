package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/project"
)

func newInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <project.hsvproj>",
		Short: "Print a summary of a project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
	return cmd
}

func runInfo(path string) error {
	proj, err := project.Load(path)
	if err != nil {
		return err
	}

	fmt.Printf("Name:        %s\n", proj.Name)
	if proj.Description != "" {
		fmt.Printf("Description: %s\n", proj.Description)
	}
	fmt.Printf("Version:     %d\n", proj.Version)
	fmt.Printf("Created:     %s\n", proj.Created.Format("2006-01-02 15:04"))
	fmt.Printf("Modified:    %s\n", proj.Modified.Format("2006-01-02 15:04"))
	fmt.Printf("Components:  %d\n", len(proj.Components))
	fmt.Printf("Cables:      %d\n", len(proj.Cables))

	types := make(map[string]int)
	for _, c := range proj.Components {
		types[c.TypeID]++
	}
	if len(types) > 0 {
		fmt.Println("By type:")
		for _, c := range proj.Components {
			if n, ok := types[c.TypeID]; ok {
				fmt.Printf("  %-20s %d\n", c.TypeID, n)
				delete(types, c.TypeID)
			}
		}
	}
	return nil
}
