// Package importer provides CSV and Excel import of placement lists. It
// supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/panelcut/internal/panel"
)

// ImportResult holds the results of an import operation. Rows that cannot
// be parsed land in Errors; recoverable oddities land in Warnings.
type ImportResult struct {
	Placements []panel.Placement
	Errors     []string
	Warnings   []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Profile  int
	Kind     int
	X        int
	Y        int
	Angle    int
	Edge     int
	Position int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"profile":  {"profile", "shape", "ref", "profile ref", "name", "part"},
	"kind":     {"kind", "type", "mode"},
	"x":        {"x", "x pos", "xpos", "tx"},
	"y":        {"y", "y pos", "ypos", "ty"},
	"angle":    {"angle", "rotation", "rot", "deg", "degrees"},
	"edge":     {"edge", "side", "target edge"},
	"position": {"position", "pos", "offset", "along"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe; the delimiter
// that produces the most consistent multi-column row shape wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. Matching
// is case-insensitive against known aliases. Returns the mapping and true if
// a header was detected, or a default positional mapping and false if not.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Profile:  -1,
		Kind:     -1,
		X:        -1,
		Y:        -1,
		Angle:    -1,
		Edge:     -1,
		Position: -1,
	}

	set := func(target *int, i int) {
		if *target == -1 {
			*target = i
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "profile":
						set(&mapping.Profile, i)
					case "kind":
						set(&mapping.Kind, i)
					case "x":
						set(&mapping.X, i)
					case "y":
						set(&mapping.Y, i)
					case "angle":
						set(&mapping.Angle, i)
					case "edge":
						set(&mapping.Edge, i)
					case "position":
						set(&mapping.Position, i)
					}
				}
			}
		}
	}

	if !isHeader {
		// Positional fallback: Profile, Kind, X, Y, Angle, Edge, Position.
		return ColumnMapping{
			Profile:  0,
			Kind:     1,
			X:        2,
			Y:        3,
			Angle:    4,
			Edge:     5,
			Position: 6,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseOptionalFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// parseRow extracts a Placement from a row using the given column mapping.
// Returns the placement, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (panel.Placement, string, []string) {
	var warnings []string

	ref := getCell(row, mapping.Profile)
	if ref == "" {
		return panel.Placement{}, fmt.Sprintf("%s: Missing profile reference", rowLabel), nil
	}

	pl := panel.Placement{ProfileRef: ref}

	if kindStr := getCell(row, mapping.Kind); kindStr != "" {
		kind, err := panel.ParseKind(kindStr)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown kind '%s', defaulting to edge_affecting", rowLabel, kindStr))
		}
		pl.Kind = kind
	}

	var err error
	if pl.X, err = parseOptionalFloat(getCell(row, mapping.X)); err != nil {
		return panel.Placement{}, fmt.Sprintf("%s: Invalid x '%s'", rowLabel, getCell(row, mapping.X)), nil
	}
	if pl.Y, err = parseOptionalFloat(getCell(row, mapping.Y)); err != nil {
		return panel.Placement{}, fmt.Sprintf("%s: Invalid y '%s'", rowLabel, getCell(row, mapping.Y)), nil
	}
	if pl.AngleDeg, err = parseOptionalFloat(getCell(row, mapping.Angle)); err != nil {
		return panel.Placement{}, fmt.Sprintf("%s: Invalid angle '%s'", rowLabel, getCell(row, mapping.Angle)), nil
	}
	if pl.Position, err = parseOptionalFloat(getCell(row, mapping.Position)); err != nil {
		return panel.Placement{}, fmt.Sprintf("%s: Invalid position '%s'", rowLabel, getCell(row, mapping.Position)), nil
	}

	if edgeStr := getCell(row, mapping.Edge); edgeStr != "" {
		edge, err := panel.ParseEdge(edgeStr)
		if err != nil {
			return panel.Placement{}, fmt.Sprintf("%s: Unknown edge '%s'", rowLabel, edgeStr), warnings
		}
		pl.Edge = edge
	}

	if pl.Kind == panel.KindInternalCutout && pl.Edge != panel.EdgeNone {
		warnings = append(warnings, fmt.Sprintf("%s: Edge is ignored for internal cutouts", rowLabel))
		pl.Edge = panel.EdgeNone
	}

	return pl, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports placements from a CSV file. It automatically detects
// the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports placements from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports placements from an Excel (.xlsx) file. Reads the
// first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Profile == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: Profile")
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		pl, errMsg, warnings := parseRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)

		result.Placements = append(result.Placements, pl)
	}

	return result
}
