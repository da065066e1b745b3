package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/catalog"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/project"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/topology"
)

func newCheckCommand() *cobra.Command {
	var catalogDir string

	cmd := &cobra.Command{
		Use:   "check <project.hsvproj>",
		Short: "Validate a project against a catalog",
		Long: `Check reports components whose type is missing from the catalog and
cables whose endpoints no longer resolve. These entries are silently dropped
when the editor loads the project; check makes them visible.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0], catalogDir)
		},
	}

	cmd.Flags().StringVarP(&catalogDir, "catalog", "c", "catalog", "Catalog directory")

	return cmd
}

func runCheck(projectPath, catalogDir string) error {
	cat, err := catalog.LoadDir(catalogDir)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	proj, err := project.Load(projectPath)
	if err != nil {
		return err
	}

	problems := 0

	kept := make(map[string]bool)
	for _, c := range proj.Components {
		if cat.Get(c.TypeID) == nil {
			fmt.Printf("component %s: unknown type %q\n", c.ID, c.TypeID)
			problems++
			continue
		}
		kept[c.ID] = true
	}

	for _, cbl := range proj.Cables {
		if !kept[cbl.StartComponentID] {
			fmt.Printf("cable %s: start references missing component %q\n", cbl.ID, cbl.StartComponentID)
			problems++
		}
		if !kept[cbl.EndComponentID] {
			fmt.Printf("cable %s: end references missing component %q\n", cbl.ID, cbl.EndComponentID)
			problems++
		}
	}

	d := proj.BuildDiagram(cat)
	dropped := len(proj.Cables) - len(d.Wires())
	if dropped > 0 {
		fmt.Printf("%d cable(s) would be dropped on load\n", dropped)
	}

	groups := topology.Groups(d)
	fmt.Printf("%d component(s), %d cable(s), %d connection group(s)\n",
		len(d.Components()), len(d.Wires()), len(groups))

	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	fmt.Println("ok")
	return nil
}
