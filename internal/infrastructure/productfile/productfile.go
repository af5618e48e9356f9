// Package productfile reads product lists and writes product groups as
// JSON or YAML files.
package productfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/prateleira/backend/internal/domain"
)

// Format selects the serialization used for product files
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// records share their "binding" tags with the HTTP layer
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

// FormatFromPath picks the format from the file extension. Anything that is
// not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DecodeProducts decodes a list of product records and checks that every
// record carries an id, a title and a supermarket.
func DecodeProducts(r io.Reader, format Format) ([]domain.Product, error) {
	var records []domain.ProductRecord

	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&records)
	default:
		err = json.NewDecoder(r).Decode(&records)
	}
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := ValidateRecords(records); err != nil {
		return nil, err
	}

	return domain.ToProducts(records), nil
}

// ValidateRecords reports the first record with a missing field
func ValidateRecords(records []domain.ProductRecord) error {
	for i, record := range records {
		if err := validate.Struct(record); err != nil {
			return fmt.Errorf("%w: record %d: %v", domain.ErrInvalidInput, i, err)
		}
	}
	return nil
}

// EncodeGroups writes groups in the given format. JSON output is indented
// with two spaces, leaves HTML characters and U+2028/U+2029 unescaped and has
// no trailing newline.
func EncodeGroups(w io.Writer, format Format, groups []domain.ProductGroup) error {
	if groups == nil {
		groups = []domain.ProductGroup{}
	}

	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(groups); err != nil {
			return fmt.Errorf("failed to encode groups: %w", err)
		}
		return enc.Close()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(groups); err != nil {
		return fmt.Errorf("failed to encode groups: %w", err)
	}

	_, err := w.Write(unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))))
	return err
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes written by
// encoding/json back into raw characters. Other escapes are copied as is,
// so an escaped backslash followed by "u2028" stays untouched.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}

	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 == len(b) {
			out = append(out, b[i])
			continue
		}

		switch rest := b[i:]; {
		case bytes.HasPrefix(rest, []byte(`\u2028`)):
			out = append(out, "\u2028"...)
			i += 5
		case bytes.HasPrefix(rest, []byte(`\u2029`)):
			out = append(out, "\u2029"...)
			i += 5
		default:
			out = append(out, b[i], b[i+1])
			i++
		}
	}
	return out
}

// ReadProducts reads a product list from path
func ReadProducts(path string) ([]domain.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open product file: %w", err)
	}
	defer f.Close()

	products, err := DecodeProducts(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return products, nil
}

// WriteGroups writes groups to path, replacing any existing file
func WriteGroups(path string, groups []domain.ProductGroup) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create group file: %w", err)
	}

	if err := EncodeGroups(f, FormatFromPath(path), groups); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}
