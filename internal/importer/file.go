package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fipe-dev/fipe/internal/model"
	"github.com/fipe-dev/fipe/internal/pdftext"
)

// ErrUnsupportedFile is returned for extensions other than .pdf, .txt, .csv and .xlsx.
var ErrUnsupportedFile = errors.New("unsupported statement file")

// DetectFile reads a statement from disk and runs it through the registry.
// PDFs and plain-text dumps go through the extractor chain; CSV exports and
// .xlsx workbooks are read as spreadsheets and labelled CSV or XLSX.
func (r *Registry) DetectFile(path string) (model.Detection, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err := pdftext.ExtractText(path)
		if err != nil {
			return model.Detection{}, err
		}
		return r.Detect(text), nil

	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return model.Detection{}, fmt.Errorf("reading %s: %w", path, err)
		}
		return r.Detect(string(data)), nil

	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return model.Detection{}, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		txns, err := ParseSpreadsheet(f)
		if err != nil {
			return model.Detection{}, fmt.Errorf("%s: %w", path, err)
		}
		if txns == nil {
			txns = []model.ImportedTransaction{}
		}
		return model.Detection{Transactions: txns, Detected: model.LabelCSV}, nil

	case ".xlsx":
		f, err := os.Open(path)
		if err != nil {
			return model.Detection{}, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		txns, err := ParseWorkbook(f)
		if err != nil {
			return model.Detection{}, fmt.Errorf("%s: %w", path, err)
		}
		if txns == nil {
			txns = []model.ImportedTransaction{}
		}
		return model.Detection{Transactions: txns, Detected: model.LabelXLSX}, nil

	default:
		return model.Detection{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Base(path))
	}
}
