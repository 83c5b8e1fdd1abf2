package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fipe-dev/fipe/internal/model"
)

const (
	// DefaultMinTextLength is the collapsed-text length below which a
	// statement is treated as image-only.
	DefaultMinTextLength = 80
	// DefaultMaxTextBytes bounds the text handed to extractors.
	DefaultMaxTextBytes = 4 << 20
)

// Extractor turns statement text into transactions for one bank layout.
// Implementations must be stateless: the same text always yields the same rows.
type Extractor interface {
	Extract(text string) []model.ImportedTransaction
	Format() string
	Label() model.Label
}

// Registry holds named extractors in the order they are tried.
type Registry struct {
	parsers map[string]Extractor
	order   []Extractor

	// MinTextLength is the threshold Detect applies before trying extractors.
	MinTextLength int
	// MaxTextBytes cuts longer text before extraction. Zero disables the cut.
	MaxTextBytes int
}

// FileInfo describes a statement file waiting in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers:       make(map[string]Extractor),
		MinTextLength: DefaultMinTextLength,
		MaxTextBytes:  DefaultMaxTextBytes,
	}
}

// Register appends an extractor to the chain. Panics on duplicate format.
func (r *Registry) Register(e Extractor) {
	key := strings.ToLower(e.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate extractor format: " + key)
	}
	r.parsers[key] = e
	r.order = append(r.order, e)
}

// Get returns the extractor for format, or nil.
func (r *Registry) Get(format string) Extractor {
	return r.parsers[strings.ToLower(format)]
}

// Extractors returns the extractors in priority order.
func (r *Registry) Extractors() []Extractor {
	return append([]Extractor(nil), r.order...)
}

// Detect tries each extractor in registration order and returns the first
// non-empty result tagged with that extractor's label. Results are never
// merged across extractors.
func (r *Registry) Detect(text string) model.Detection {
	text = Clip(text, r.MaxTextBytes)
	if utf8.RuneCountInString(Collapse(text)) < r.MinTextLength {
		return model.Detection{Transactions: []model.ImportedTransaction{}, Detected: model.LabelNoText}
	}
	for _, e := range r.order {
		if txns := e.Extract(text); len(txns) > 0 {
			return model.Detection{Transactions: txns, Detected: e.Label()}
		}
	}
	return model.Detection{Transactions: []model.ImportedTransaction{}, Detected: model.LabelUnknown}
}

// Clip cuts text to at most max bytes without splitting a UTF-8 sequence.
// A max of zero or less returns text unchanged.
func Clip(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// DefaultRegistry returns a registry with all built-in extractors, Galicia
// first. cardholder is the BBVA "Consumos <Name>" header; it may be empty.
func DefaultRegistry(cardholder string) *Registry {
	r := NewRegistry()
	r.Register(&GaliciaExtractor{})
	r.Register(NewBBVAExtractor(cardholder))
	return r
}

var defaultRegistry = DefaultRegistry("")

// Detect runs text through the built-in extractors with default settings.
func Detect(text string) model.Detection {
	return defaultRegistry.Detect(text)
}

// importDir is the subdirectory scanned for statements.
const importDir = "import"

// processedDir receives statements once they are imported.
const processedDir = "import/processed"

// supportedExt lists the file types the import command understands.
var supportedExt = map[string]bool{".pdf": true, ".txt": true, ".csv": true, ".xlsx": true}

// Scan returns statement files in <repoRoot>/import/.
func Scan(repoRoot string) ([]FileInfo, error) {
	dir := filepath.Join(repoRoot, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !supportedExt[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(repoRoot, fileName string) error {
	src := filepath.Join(repoRoot, importDir, fileName)
	dstDir := filepath.Join(repoRoot, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
