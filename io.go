package sanice

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"github.com/go-sanice/sanice/lang"
	"github.com/go-sanice/sanice/pkg/errors"
)

// readFile loads a dataframe from disk, dispatching on the file
// extension.
func readFile(path string) (dataframe.DataFrame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".json":
		return readJSON(path)
	case ".xls", ".xlsx":
		return readExcel(path)
	case ".parquet":
		return readParquet(path)
	default:
		return dataframe.DataFrame{}, errors.NewValueError("load", "unsupported file format: "+filepath.Ext(path))
	}
}

func readCSV(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()

	df := dataframe.ReadCSV(f)
	return df, df.Err
}

func readJSON(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()

	df := dataframe.ReadJSON(f)
	return df, df.Err
}

// readExcel loads the first sheet of a workbook.
func readExcel(path string) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, errors.ErrEmptyData
	}

	// GetRows trims trailing empty cells; pad every row to the header
	// width so gota sees a rectangular table.
	width := len(rows[0])
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		}
		records = append(records, row[:width])
	}

	df := dataframe.LoadRecords(records)
	return df, df.Err
}

// readParquet loads a parquet file through the schema stored in the
// file itself, rebuilding the dataframe from generic map rows. A map
// row type carries no schema of its own, so the reader must be handed
// the file's.
func readParquet(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if pf.NumRows() == 0 {
		return dataframe.DataFrame{}, errors.ErrEmptyData
	}

	reader := parquet.NewGenericReader[map[string]any](pf, pf.Schema())
	defer reader.Close()

	maps := make([]map[string]interface{}, 0, pf.NumRows())
	for {
		buf := make([]map[string]any, 128)
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			maps = append(maps, buf[i])
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return dataframe.DataFrame{}, readErr
		}
	}

	df := dataframe.LoadMaps(maps)
	return df, df.Err
}

// writeFile persists a dataframe to disk, dispatching on the file
// extension.
func writeFile(df dataframe.DataFrame, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return writeCSV(df, path)
	case ".json":
		return writeJSON(df, path)
	case ".xls", ".xlsx":
		return writeExcel(df, path)
	case ".parquet":
		return writeParquet(df, path)
	default:
		return errors.NewValueError("save", "unsupported file format: "+filepath.Ext(path))
	}
}

func writeCSV(df dataframe.DataFrame, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return df.WriteCSV(f)
}

func writeJSON(df dataframe.DataFrame, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return df.WriteJSON(f)
}

// writeExcel renders the dataframe onto the first sheet of a new
// workbook.
func writeExcel(df dataframe.DataFrame, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, row := range df.Records() {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}

// writeParquet persists the dataframe with an optional leaf per
// column, typed after the gota series type. Null cells become null
// parquet values.
func writeParquet(df dataframe.DataFrame, path string) error {
	group := parquet.Group{}
	names := df.Names()
	types := df.Types()
	for i, name := range names {
		switch types[i] {
		case series.Float:
			group[name] = parquet.Optional(parquet.Leaf(parquet.DoubleType))
		case series.Int:
			group[name] = parquet.Optional(parquet.Leaf(parquet.Int64Type))
		case series.Bool:
			group[name] = parquet.Optional(parquet.Leaf(parquet.BooleanType))
		default:
			group[name] = parquet.Optional(parquet.String())
		}
	}
	schema := parquet.NewSchema("dataframe", group)

	rows := make([]map[string]any, df.Nrow())
	for i, m := range df.Maps() {
		row := make(map[string]any, len(m))
		for k, v := range m {
			// gota hands back int for Int series; the schema leaf is
			// int64.
			if n, ok := v.(int); ok {
				row[k] = int64(n)
				continue
			}
			row[k] = v
		}
		rows[i] = row
	}
	return parquet.WriteFile(path, rows, schema)
}

// Save persists the dataset, dispatching on the extension the same
// way New does (.csv, .json, .xls, .xlsx, .parquet).
func (p *Pipeline) Save(path string) *Pipeline {
	if !p.ready() {
		return p
	}

	if err := writeFile(p.df, path); err != nil {
		p.failErr(err)
		return p
	}

	p.logf("save", lang.Args{"path": path})
	return p
}
