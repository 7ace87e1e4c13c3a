package core

import "strings"

// Table is a parsed dataset: the first non-blank line as Headers and every
// following non-blank line as a row, in file order.
//
// Rows are not checked against the header width. Short and long rows are
// returned exactly as parsed.
type Table struct {
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// EmptyTable returns a table with non-nil, zero-length headers and rows.
func EmptyTable() Table {
	return Table{Headers: []string{}, Rows: [][]string{}}
}

// lineState is the field splitter's mode.
type lineState int

const (
	stateUnquoted lineState = iota
	stateQuoted             // commas are literal
)

// ParseContent splits text on '\n' and parses every line that is not blank.
// Blank and whitespace-only lines are dropped entirely. It never fails:
// ragged rows, trailing commas and unbalanced quotes all produce best-effort
// output.
func ParseContent(text string) [][]string {
	records := [][]string{}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, ParseLine(line))
	}
	return records
}

// ParseLine splits one physical line into trimmed fields.
//
// A double quote toggles quoted mode and is never kept, so "" inside a
// quoted field is two toggles and yields nothing. A comma ends the field
// only outside quotes. Every other character, '\r' included, is kept as is.
// Quoted mode does not carry over to the next line.
func ParseLine(line string) []string {
	var (
		fields []string
		acc    strings.Builder
		state  = stateUnquoted
	)

	// Byte-wise is safe: both delimiters are ASCII and never occur inside a
	// multi-byte UTF-8 sequence.
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if state == stateUnquoted {
				state = stateQuoted
			} else {
				state = stateUnquoted
			}
		case c == ',' && state == stateUnquoted:
			fields = append(fields, strings.TrimSpace(acc.String()))
			acc.Reset()
		default:
			acc.WriteByte(c)
		}
	}

	return append(fields, strings.TrimSpace(acc.String()))
}

// SplitHeader turns parsed records into a Table. No records yields an empty
// table, never nil slices.
func SplitHeader(records [][]string) Table {
	if len(records) == 0 {
		return EmptyTable()
	}
	rows := make([][]string, 0, len(records)-1)
	rows = append(rows, records[1:]...)
	return Table{Headers: records[0], Rows: rows}
}

// Parse is ParseContent followed by SplitHeader.
func Parse(text string) Table {
	return SplitHeader(ParseContent(text))
}
