// Package main provides the entry point for the Hardware Setup Visualizer.
package main

import (
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/app"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/catalog"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/version"
	"github.com/PhilipU/HardwareSetupVisualizer/ui/mainwindow"
	"github.com/PhilipU/HardwareSetupVisualizer/ui/prefs"
)

const (
	appTitle = "Hardware Setup Visualizer"

	defaultCatalogDir = "catalog"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	appPrefs := prefs.Load()

	catalogDir := appPrefs.String(prefs.KeyCatalogDir)
	if catalogDir == "" {
		catalogDir = defaultCatalogDir
	}

	cat, err := catalog.LoadDir(catalogDir)
	if err != nil {
		log.Printf("Catalog: %v, starting with an empty catalog", err)
		cat, _ = catalog.New()
	} else {
		log.Printf("Catalog: loaded %d definitions from %s", cat.Count(), catalogDir)
	}

	appState := app.NewState(cat)

	fyneApp := fyneapp.New()
	fyneApp.Settings().SetTheme(&app.VisualizerTheme{})

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// Reload the catalog when its files change on disk.
	watcher, err := catalog.NewWatcher(catalogDir, func() {
		reloaded, err := catalog.LoadDir(catalogDir)
		if err != nil {
			log.Printf("Catalog reload: %v", err)
			return
		}
		log.Printf("Catalog reload: %d definitions", reloaded.Count())
		appState.SetCatalog(reloaded)
	})
	if err != nil {
		log.Printf("Catalog watcher: %v", err)
	} else {
		watcher.Start()
		defer watcher.Stop()
	}

	// Open a project passed on the command line, or the last one used.
	projectPath := appPrefs.String(prefs.KeyLastProject)
	if len(os.Args) > 1 {
		projectPath = os.Args[1]
	}
	if projectPath != "" {
		if err := appState.LoadProject(projectPath); err != nil {
			log.Printf("Failed to load project %s: %v", projectPath, err)
		}
	}

	win.SetOnClosed(func() {
		if err := appPrefs.Save(); err != nil {
			log.Printf("Preferences: %v", err)
		}
	})

	win.ShowAndRun()
}
