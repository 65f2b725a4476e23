package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
	enc "github.com/MrJamesThe3rd/billkerfy/internal/encoding"
)

// Parser reads customer CSV files in any supported charset, separated by ';' or ','.
// The header row is matched against the known profiles; only the company name column is required.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader, organizationID uuid.UUID) ([]customer.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := detectProfile(rows)
	if !ok {
		return nil, fmt.Errorf("no matching customer format found: expected a company name column")
	}

	var params []customer.CreateParams

	for _, row := range rows[headerIdx+1:] {
		p := customer.CreateParams{
			OrganizationID: organizationID,
			CompanyName:    cellValue(row, cols.companyName),
			TaxID:          cellValue(row, cols.taxID),
			Address:        cellValue(row, cols.address),
			Email:          cellValue(row, cols.email),
			Phone:          cellValue(row, cols.phone),
		}

		if p == (customer.CreateParams{OrganizationID: organizationID}) {
			continue
		}

		params = append(params, p)
	}

	return params, nil
}

// detectDelimiter picks ';' or ',' by counting both in the first non-empty line.
func detectDelimiter(data []byte) rune {
	for line := range bytes.Lines(data) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
			return ';'
		}

		return ','
	}

	return ','
}

// columns holds the index of each field in a row, -1 when absent.
type columns struct {
	companyName, taxID, address, email, phone int
}

// detectProfile scans rows for a header that names a company column in one of the profiles.
func detectProfile(rows [][]string) (columns, int, bool) {
	for rowIdx, row := range rows {
		names := make(map[string]int)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if _, seen := names[name]; name != "" && !seen {
				names[name] = i
			}
		}

		for _, p := range profiles {
			cols := columns{
				companyName: lookup(names, p.CompanyName),
				taxID:       lookup(names, p.TaxID),
				address:     lookup(names, p.Address),
				email:       lookup(names, p.Email),
				phone:       lookup(names, p.Phone),
			}

			if cols.companyName >= 0 {
				return cols, rowIdx, true
			}
		}
	}

	return columns{}, 0, false
}

func lookup(names map[string]int, aliases []string) int {
	for _, alias := range aliases {
		if i, ok := names[strings.ToLower(alias)]; ok {
			return i
		}
	}

	return -1
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
