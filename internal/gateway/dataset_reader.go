// Package gateway reads uploaded tabular files into raw datasets.
package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"policy-reconciliation/internal/domain"
)

// FileDatasetRepository implements the DatasetRepository interface over
// local CSV and Excel files, dispatching on the file extension.
type FileDatasetRepository struct{}

// NewFileDatasetRepository creates a new repository instance.
func NewFileDatasetRepository() *FileDatasetRepository {
	return &FileDatasetRepository{}
}

// GetDataset reads and parses one tabular file. The first row is the
// header: names are whitespace-trimmed, blank headers become
// "Unnamed: <index>" and duplicates are mangled with ".1", ".2", ...
// suffixes so column names stay unique. Data rows are padded or truncated
// to the header width; cells stay opaque strings.
func (r *FileDatasetRepository) GetDataset(ctx context.Context, path string) (domain.RawDataset, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		records, err = readExcel(path)
	default:
		records, err = readCSV(path)
	}
	if err != nil {
		return domain.RawDataset{}, err
	}
	if len(records) == 0 {
		return domain.RawDataset{}, fmt.Errorf("failed to read header from %s: file is empty", path)
	}

	columns := cleanHeader(records[0])
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(columns))
		copy(row, rec)
		rows = append(rows, row)
	}
	return domain.RawDataset{Columns: columns, Rows: rows}, nil
}

// Preview returns the dataset truncated to its first maxRows data rows,
// for rendering upload previews.
func (r *FileDatasetRepository) Preview(ctx context.Context, path string, maxRows int) (domain.RawDataset, error) {
	ds, err := r.GetDataset(ctx, path)
	if err != nil {
		return domain.RawDataset{}, err
	}
	if maxRows >= 0 && len(ds.Rows) > maxRows {
		ds.Rows = ds.Rows[:maxRows]
	}
	return ds, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading records from %s: %w", path, err)
	}
	return records, nil
}

func readExcel(path string) ([][]string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q from %s: %w", sheets[0], path, err)
	}
	return rows, nil
}

func cleanHeader(header []string) []string {
	columns := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			columns[i] = fmt.Sprintf("%s.%d", name, n)
			continue
		}
		seen[name] = 1
		columns[i] = name
	}
	return columns
}
