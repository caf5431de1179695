// panelcut builds rectangular panels with profile cutouts from declarative
// layout files and exports the result for CAM and documentation.
//
// Build:
//
//	go build -o panelcut ./cmd/panelcut
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/piwi3910/panelcut/internal/export"
	"github.com/piwi3910/panelcut/internal/importer"
	"github.com/piwi3910/panelcut/internal/kernel"
	"github.com/piwi3910/panelcut/internal/library"
	"github.com/piwi3910/panelcut/internal/panel"
	"github.com/piwi3910/panelcut/internal/project"
)

var (
	verbose    bool
	libraryDir string
	outPath    string
	reportPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "panelcut",
	Short: "panelcut - panel cutout assembly and export",
	Long: `panelcut assembles rectangular panels from a shape library and a
layout file: edge-affecting profiles are subtracted from the panel
boundary in order, internal cutouts become holes. The finished face
exports to DXF, SVG, PDF cut sheets, or the native geometry format.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var buildCmd = &cobra.Command{
	Use:   "build [layout file]",
	Short: "Build a panel from a layout file and store the face",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		face, report, k, req, err := buildFromLayout(args[0])
		if err != nil {
			return err
		}
		out := outPath
		if out == "" {
			out = defaultOut(req.Name, ".pbrep")
		}
		if err := k.WriteBREP(face, out); err != nil {
			return err
		}
		if reportPath != "" {
			if err := writeReport(reportPath, report); err != nil {
				return err
			}
		}
		logger.Info("panel stored", zap.String("path", out),
			zap.Int("holes", report.Holes), zap.Int("diagnostics", len(report.Diagnostics)))
		fmt.Printf("Built %s: %d edge cuts, %d holes, %d diagnostics -> %s\n",
			req.Name, report.EdgeCuts, report.Holes, len(report.Diagnostics), out)
		return nil
	},
}

var dxfCmd = &cobra.Command{
	Use:   "dxf [layout file]",
	Short: "Build a panel and export it as DXF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		face, _, _, req, err := buildFromLayout(args[0])
		if err != nil {
			return err
		}
		out := outPath
		if out == "" {
			out = defaultOut(req.Name, ".dxf")
		}
		if err := export.ExportDXF(out, face); err != nil {
			return err
		}
		fmt.Printf("Exported %s\n", out)
		return nil
	},
}

var svgCmd = &cobra.Command{
	Use:   "svg [layout file]",
	Short: "Build a panel and export an SVG preview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		face, _, _, req, err := buildFromLayout(args[0])
		if err != nil {
			return err
		}
		out := outPath
		if out == "" {
			out = defaultOut(req.Name, ".svg")
		}
		if err := export.ExportSVG(out, face); err != nil {
			return err
		}
		fmt.Printf("Exported %s\n", out)
		return nil
	},
}

var pdfCmd = &cobra.Command{
	Use:   "pdf [layout file]",
	Short: "Build a panel and export a PDF cut sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		face, report, k, req, err := buildFromLayout(args[0])
		if err != nil {
			return err
		}
		out := outPath
		if out == "" {
			out = defaultOut(req.Name, ".pdf")
		}
		if err := export.ExportPDF(out, req.Name, face, k, report); err != nil {
			return err
		}
		fmt.Printf("Exported %s\n", out)
		return nil
	},
}

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the shape library",
}

var libraryAddCmd = &cobra.Command{
	Use:   "add [geometry or DXF file]",
	Short: "Canonicalize a profile and add it to the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		kind, _ := cmd.Flags().GetString("kind")
		if name == "" {
			base := filepath.Base(args[0])
			name = strings.TrimSuffix(base, filepath.Ext(base))
		}

		lib, k, err := openLibrary()
		if err != nil {
			return err
		}

		var entry *library.Entry
		if strings.HasSuffix(strings.ToLower(args[0]), ".dxf") {
			result := importer.ImportDXF(args[0])
			for _, w := range result.Warnings {
				logger.Warn("dxf import", zap.String("warning", w))
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("dxf import: %s", strings.Join(result.Errors, "; "))
			}
			entry, err = lib.IngestOutline(k, result.Outlines[0], name, kind)
		} else {
			entry, err = lib.Ingest(k, args[0], name, kind)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Added %s (%s): %.0f x %.0f mm, %.0f mm²\n",
			entry.Name, entry.ID, entry.BBoxW, entry.BBoxH, entry.Area)
		return nil
	},
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		entries := lib.List()
		if len(entries) == 0 {
			fmt.Println("Library is empty.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%-10s %-24s %-16s %8.0f x %-8.0f %10.0f mm²\n",
				e.ID, e.Name, e.Kind, e.BBoxW, e.BBoxH, e.Area)
		}
		return nil
	},
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "rm [id or name]",
	Short: "Remove a library entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		return lib.Remove(args[0])
	},
}

var importCmd = &cobra.Command{
	Use:   "import [CSV or Excel file]",
	Short: "Convert a placement list into a layout file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetFloat64("width")
		height, _ := cmd.Flags().GetFloat64("height")
		name, _ := cmd.Flags().GetString("name")

		cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
		if err != nil {
			return err
		}
		width, height = cfg.PanelSizeOrDefault(width, height)

		var result importer.ImportResult
		if strings.HasSuffix(strings.ToLower(args[0]), ".xlsx") {
			result = importer.ImportExcel(args[0])
		} else {
			result = importer.ImportCSV(args[0])
		}
		for _, w := range result.Warnings {
			logger.Warn("import", zap.String("warning", w))
		}
		for _, e := range result.Errors {
			logger.Error("import", zap.String("error", e))
		}
		if len(result.Placements) == 0 {
			return fmt.Errorf("no placements imported from %s", args[0])
		}

		req := &project.LayoutRequest{
			Name:  name,
			Panel: project.PanelSpec{Width: width, Height: height},
		}
		for _, pl := range result.Placements {
			req.Placements = append(req.Placements, project.PlacementSpec{
				Profile:  pl.ProfileRef,
				Kind:     pl.Kind.String(),
				X:        pl.X,
				Y:        pl.Y,
				Angle:    pl.AngleDeg,
				Edge:     pl.Edge.String(),
				Position: pl.Position,
			})
		}

		out := outPath
		if out == "" {
			out = defaultOut(name, ".yaml")
		}
		if err := project.SaveLayout(out, req); err != nil {
			return err
		}
		fmt.Printf("Imported %d placements (%d rows skipped) -> %s\n",
			len(result.Placements), len(result.Errors), out)
		return nil
	},
}

// buildFromLayout is the shared pipeline behind build and the exporters.
func buildFromLayout(path string) (face *kernel.Face, report *panel.BuildReport, k kernel.Kernel, req *project.LayoutRequest, err error) {
	req, err = project.LoadLayout(path)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	placements, err := req.ToPlacements()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	lib, k, err := openLibrary()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	p := panel.New(req.Panel.Width, req.Panel.Height,
		panel.WithKernel(k), panel.WithLogger(logger))
	for _, pl := range placements {
		profilePath, err := lib.Resolve(pl.ProfileRef)
		if err != nil {
			// Unresolvable profiles surface as load diagnostics.
			p.AddFromFile(pl.ProfileRef, pl)
			continue
		}
		p.AddFromFile(profilePath, pl)
	}

	face, report, err = p.Build()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("build %s: %w", req.Name, err)
	}
	return face, report, k, req, nil
}

func openLibrary() (*library.Library, kernel.Kernel, error) {
	dir := libraryDir
	if dir == "" {
		cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
		if err != nil {
			return nil, nil, err
		}
		dir = cfg.LibraryDir
	}
	if dir == "" {
		var err error
		dir, err = library.DefaultDir()
		if err != nil {
			return nil, nil, err
		}
	}
	lib, err := library.Open(dir)
	if err != nil {
		return nil, nil, err
	}
	return lib, kernel.NewPlanar(), nil
}

func defaultOut(name, ext string) string {
	if name == "" {
		name = "panel"
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "-") + ext
}

func writeReport(path string, report *panel.BuildReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&libraryDir, "library", "", "shape library directory (default: config)")
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "output file path")

	buildCmd.Flags().StringVar(&reportPath, "report", "", "write the build report as JSON")

	libraryAddCmd.Flags().String("name", "", "entry name (default: source file name)")
	libraryAddCmd.Flags().String("kind", "edge_affecting", "default placement kind for this shape")
	libraryCmd.AddCommand(libraryAddCmd, libraryListCmd, libraryRemoveCmd)

	importCmd.Flags().Float64("width", 0, "panel width in mm (default: configured)")
	importCmd.Flags().Float64("height", 0, "panel height in mm (default: configured)")
	importCmd.Flags().String("name", "imported", "layout name")

	rootCmd.AddCommand(buildCmd, dxfCmd, svgCmd, pdfCmd, libraryCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
