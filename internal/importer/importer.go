// Package importer loads customers from spreadsheet CSV exports.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/stefifm/dashboard/internal/form"
	"github.com/stefifm/dashboard/internal/invoice"
)

var ErrNoHeader = errors.New("no header row with name and email columns")

// columns are matched case-insensitively against the header row. image_url is optional.
var columns = []string{"name", "email", "image_url"}

type customerRow struct {
	Name     string `form:"name" validate:"required,max=255"`
	Email    string `form:"email" validate:"required,email,max=255"`
	ImageURL string `form:"image_url" validate:"max=255"`
}

var messages = form.Messages{
	"name": {
		"required": "Please enter a name",
		"max":      "Name is too long",
	},
	"email": {
		"required": "Please enter an email",
		"email":    "Please enter a valid email",
		"max":      "Email is too long",
	},
	"image_url": {
		"max": "Image URL is too long",
	},
}

// Row is a customer read from line Line of the input.
type Row struct {
	Line     int
	Customer invoice.Customer
}

// RowError reports why the customer on line Line was rejected.
type RowError struct {
	Line   int
	Errors form.FieldErrors
}

func (e RowError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for _, name := range columns {
		if msgs, ok := e.Errors[name]; ok {
			fields = append(fields, fmt.Sprintf("%s: %s", name, strings.Join(msgs, ", ")))
		}
	}

	return fmt.Sprintf("line %d: %s", e.Line, strings.Join(fields, "; "))
}

// Parser reads customer CSV files. The delimiter may be a comma or a semicolon and the
// header may be preceded by title rows.
type Parser struct {
	schema *form.Schema
}

func NewParser() *Parser {
	return &Parser{schema: form.NewSchema()}
}

// Parse returns the valid rows and the rejected ones. It fails only when the input cannot
// be read or has no recognizable header.
func (p *Parser) Parse(r io.Reader) ([]Row, []RowError, error) {
	utf8r, err := toUTF8(r)
	if err != nil {
		return nil, nil, fmt.Errorf("detecting encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading input: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		records [][]string
		lines   []int
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, nil, fmt.Errorf("reading csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}

	cols, headerIdx, ok := findHeader(records)
	if !ok {
		return nil, nil, ErrNoHeader
	}

	var (
		rows     []Row
		rejected []RowError
	)

	for i := headerIdx + 1; i < len(records); i++ {
		record, line := records[i], lines[i]

		if blank(record) {
			continue
		}

		in := customerRow{
			Name:     cell(record, cols, "name"),
			Email:    cell(record, cols, "email"),
			ImageURL: cell(record, cols, "image_url"),
		}

		if errs := p.schema.Validate(in, messages); errs != nil {
			rejected = append(rejected, RowError{Line: line, Errors: errs})
			continue
		}

		rows = append(rows, Row{
			Line: line,
			Customer: invoice.Customer{
				Name:     in.Name,
				Email:    strings.ToLower(in.Email),
				ImageURL: in.ImageURL,
			},
		})
	}

	return rows, rejected, nil
}

// delimiter picks ';' when the first line has more semicolons than commas.
func delimiter(data []byte) rune {
	first, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}

	return ','
}

// findHeader returns the column positions from the first row that names both name and email.
func findHeader(records [][]string) (map[string]int, int, bool) {
	for idx, record := range records {
		cols := make(map[string]int)

		for i, v := range record {
			name := strings.ToLower(strings.TrimSpace(v))
			for _, c := range columns {
				if name == c {
					cols[c] = i
				}
			}
		}

		_, hasName := cols["name"]
		_, hasEmail := cols["email"]

		if hasName && hasEmail {
			return cols, idx, true
		}
	}

	return nil, 0, false
}

func cell(record []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}

	return true
}
