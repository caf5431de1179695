// panelview — desktop viewer for built panels.
//
// Loads a layout file, runs the assembly pipeline, and shows the finished
// face with its build diagnostics.
//
// Build:
//
//	go build -o panelview ./cmd/panelview
package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/panelcut/internal/kernel"
	"github.com/piwi3910/panelcut/internal/library"
	"github.com/piwi3910/panelcut/internal/panel"
	"github.com/piwi3910/panelcut/internal/project"
	"github.com/piwi3910/panelcut/internal/ui"
	"github.com/piwi3910/panelcut/internal/ui/widgets"
)

func main() {
	logger := zap.NewNop()

	application := app.NewWithID("com.piwi3910.panelview")
	application.Settings().SetTheme(ui.NewPanelViewTheme())
	window := application.NewWindow("PanelView — Panel Cutout Viewer")

	content := container.NewStack(widget.NewLabel("Open a layout file to begin."))
	window.SetContent(content)

	cfgPath := project.DefaultConfigPath()
	cfg, err := project.LoadAppConfig(cfgPath)
	if err != nil {
		cfg = project.DefaultAppConfig()
	}

	openLayout := func(path string) {
		face, report, k, req, err := buildFromLayout(path, logger)
		if err != nil {
			dialog.ShowError(err, window)
			return
		}
		content.Objects = []fyne.CanvasObject{
			widgets.RenderBuildResult(req.Name, face, k, report),
		}
		content.Refresh()
		window.SetTitle(fmt.Sprintf("PanelView — %s", req.Name))

		cfg.AddRecentLayout(path)
		if err := project.SaveAppConfig(cfgPath, cfg); err != nil {
			logger.Warn("failed to save recent layouts", zap.Error(err))
		}
	}

	openItem := fyne.NewMenuItem("Open Layout...", func() {
		fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()
			openLayout(reader.URI().Path())
		}, window)
		fd.Show()
	})
	fileItems := []*fyne.MenuItem{openItem}
	if len(cfg.RecentLayouts) > 0 {
		recentItems := make([]*fyne.MenuItem, 0, len(cfg.RecentLayouts))
		for _, p := range cfg.RecentLayouts {
			path := p
			recentItems = append(recentItems, fyne.NewMenuItem(path, func() {
				openLayout(path)
			}))
		}
		recentMenu := fyne.NewMenuItem("Open Recent", nil)
		recentMenu.ChildMenu = fyne.NewMenu("Open Recent", recentItems...)
		fileItems = append(fileItems, recentMenu)
	}
	window.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("File", fileItems...)))

	window.Resize(fyne.NewSize(1000, 700))
	window.CenterOnScreen()

	if len(os.Args) > 1 {
		openLayout(os.Args[1])
	}

	window.ShowAndRun()
}

func buildFromLayout(path string, logger *zap.Logger) (*kernel.Face, *panel.BuildReport, kernel.Kernel, *project.LayoutRequest, error) {
	req, err := project.LoadLayout(path)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	placements, err := req.ToPlacements()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return nil, nil, nil, nil, err
	}
	dir := cfg.LibraryDir
	if dir == "" {
		if dir, err = library.DefaultDir(); err != nil {
			return nil, nil, nil, nil, err
		}
	}
	lib, err := library.Open(dir)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	k := kernel.NewPlanar()
	p := panel.New(req.Panel.Width, req.Panel.Height,
		panel.WithKernel(k), panel.WithLogger(logger))
	for _, pl := range placements {
		profilePath, err := lib.Resolve(pl.ProfileRef)
		if err != nil {
			p.AddFromFile(pl.ProfileRef, pl)
			continue
		}
		p.AddFromFile(profilePath, pl)
	}

	face, report, err := p.Build()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return face, report, k, req, nil
}
