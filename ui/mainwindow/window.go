// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/PhilipU/HardwareSetupVisualizer/internal/app"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/export"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/project"
	"github.com/PhilipU/HardwareSetupVisualizer/internal/topology"
	"github.com/PhilipU/HardwareSetupVisualizer/ui/canvas"
	"github.com/PhilipU/HardwareSetupVisualizer/ui/prefs"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.DiagramCanvas
	palette   *widget.List
	statusBar *widget.Label

	paletteIDs []string
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Hardware Setup Visualizer")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout: palette | canvas, status bar below.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.New(mw.state)
	mw.statusBar = widget.NewLabel("Ready")

	mw.canvas.OnStatus(func(msg string) {
		if msg == "" {
			msg = "Ready"
		}
		mw.statusBar.SetText(msg)
	})
	mw.canvas.OnError(func(err error) {
		mw.statusBar.SetText(err.Error())
	})

	mw.rebuildPaletteIDs()
	mw.palette = widget.NewList(
		func() int { return len(mw.paletteIDs) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			def := mw.state.Catalog.Get(mw.paletteIDs[i])
			label := o.(*widget.Label)
			if def != nil {
				label.SetText(def.Name)
			} else {
				label.SetText(mw.paletteIDs[i])
			}
		},
	)
	mw.palette.OnSelected = func(i widget.ListItemID) {
		mw.canvas.BeginPlacement(mw.paletteIDs[i])
		mw.palette.UnselectAll()
	}

	toolbar := container.NewHBox(
		widget.NewLabel("Zoom:"),
		widget.NewButton("-", mw.canvas.ZoomOut),
		widget.NewButton("+", mw.canvas.ZoomIn),
		widget.NewCheck("Snap", func(on bool) {
			mw.canvas.SetSnap(on)
			mw.prefs.SetBool(prefs.KeySnapToGrid, on)
		}),
	)

	canvasArea := container.NewBorder(toolbar, nil, nil, nil, mw.canvas)

	split := container.NewHSplit(
		container.NewBorder(widget.NewLabel("Components"), nil, nil, nil, mw.palette),
		canvasArea,
	)
	split.SetOffset(0.2)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(
		float32(mw.prefs.FloatWithFallback(prefs.KeyWindowW, 1200)),
		float32(mw.prefs.FloatWithFallback(prefs.KeyWindowH, 800)),
	))
}

func (mw *MainWindow) rebuildPaletteIDs() {
	mw.paletteIDs = mw.paletteIDs[:0]
	for _, def := range mw.state.Catalog.Definitions() {
		mw.paletteIDs = append(mw.paletteIDs, def.ID)
	}
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Setup", mw.onNew),
		fyne.NewMenuItem("Open...", mw.onOpen),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save", mw.onSave),
		fyne.NewMenuItem("Save As...", mw.onSaveAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG...", func() { mw.onExport("png") }),
		fyne.NewMenuItem("Export SVG...", func() { mw.onExport("svg") }),
		fyne.NewMenuItem("Export PDF...", func() { mw.onExport("pdf") }),
		fyne.NewMenuItem("Export Cable Schedule (XLSX)...", func() { mw.onExport("xlsx") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.onUndo),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Connection Groups", mw.onShowGroups),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, toolsMenu))
}

// setupEventHandlers wires state events to UI updates.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.statusBar.SetText("Opened " + filepath.Base(path))
			mw.prefs.SetString(prefs.KeyLastProject, path)
		}
	})
	mw.state.On(app.EventProjectSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.statusBar.SetText("Saved " + filepath.Base(path))
			mw.prefs.SetString(prefs.KeyLastProject, path)
		}
	})
	mw.state.On(app.EventCatalogReloaded, func(interface{}) {
		mw.rebuildPaletteIDs()
		mw.palette.Refresh()
		mw.statusBar.SetText("Catalog reloaded")
	})
	mw.state.On(app.EventModified, func(data interface{}) {
		mw.updateTitle()
	})
}

func (mw *MainWindow) updateTitle() {
	title := "Hardware Setup Visualizer"
	if path := mw.state.CurrentPath(); path != "" {
		title += " - " + filepath.Base(path)
	}
	if mw.state.IsModified() {
		title += " *"
	}
	mw.SetTitle(title)
}

func (mw *MainWindow) onNew() {
	mw.state.NewProject()
	mw.updateTitle()
	mw.statusBar.SetText("New setup")
}

func (mw *MainWindow) onOpen() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		if err := mw.state.LoadProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateTitle()
	}, mw.Window)
}

func (mw *MainWindow) onSave() {
	path := mw.state.CurrentPath()
	if path == "" {
		mw.onSaveAs()
		return
	}
	if err := mw.state.SaveProject(path); err != nil {
		dialog.ShowError(err, mw.Window)
	}
	mw.updateTitle()
}

func (mw *MainWindow) onSaveAs() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		_ = writer.Close()
		if !strings.HasSuffix(path, project.Extension) {
			path += project.Extension
		}
		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateTitle()
	}, mw.Window)
}

func (mw *MainWindow) onUndo() {
	if !mw.state.Undo() {
		mw.statusBar.SetText("Nothing to undo")
	}
}

// onExport writes the current scene in the requested format.
func (mw *MainWindow) onExport(format string) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		_ = writer.Close()
		if !strings.HasSuffix(path, "."+format) {
			path += "." + format
		}
		if err := mw.exportTo(path, format); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.statusBar.SetText("Exported " + filepath.Base(path))
	}, mw.Window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{"." + format}))
	d.Show()
}

func (mw *MainWindow) exportTo(path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scene := mw.state.Diagram.BuildScene()
	opts := export.DefaultOptions()
	opts.Title = strings.TrimSuffix(filepath.Base(mw.state.CurrentPath()), project.Extension)

	switch format {
	case "png":
		return export.WritePNG(scene, f, opts)
	case "svg":
		return export.WriteSVG(scene, f, opts)
	case "pdf":
		return export.WritePDF(scene, f, opts.Title)
	case "xlsx":
		return export.WriteXLSX(scene, f)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// onShowGroups lists which components are cabled together.
func (mw *MainWindow) onShowGroups() {
	groups := topology.Groups(mw.state.Diagram)
	if len(groups) == 0 {
		dialog.ShowInformation("Connection Groups", "No components placed.", mw.Window)
		return
	}

	var sb strings.Builder
	for i, group := range groups {
		names := make([]string, 0, len(group))
		for _, id := range group {
			if inst := mw.state.Diagram.Component(id); inst != nil && inst.Name != "" {
				names = append(names, inst.Name)
			} else {
				names = append(names, id)
			}
		}
		fmt.Fprintf(&sb, "Group %d: %s\n", i+1, strings.Join(names, ", "))
	}
	dialog.ShowInformation("Connection Groups", sb.String(), mw.Window)
}
