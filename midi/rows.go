package midi

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kondzio13/alis/model"
	"github.com/pkg/errors"
)

var ErrMalformedRow = errors.New("malformed row")

func isTextRow(rowType string) bool {
	return strings.HasSuffix(rowType, "_t")
}

// isQuoted reports whether value i of a row is written as a quoted string.
func isQuoted(rowType string, i int) bool {
	return isTextRow(rowType) || (rowType == model.RowKeySignature && i == 1)
}

// FormatRow renders a row as one line of the row format, without the
// trailing newline.
func FormatRow(r model.Row) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(r.Track))
	sb.WriteString(", ")
	sb.WriteString(strconv.FormatUint(uint64(r.Tick), 10))
	sb.WriteString(", ")
	sb.WriteString(r.Type)
	for i, v := range r.Values {
		sb.WriteString(", ")
		if isQuoted(r.Type, i) {
			v = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
		}
		sb.WriteString(v)
	}
	return sb.String()
}

func WriteRows(w io.Writer, rows []model.Row) error {
	for _, r := range rows {
		if _, err := io.WriteString(w, FormatRow(r)+"\n"); err != nil {
			return errors.Wrap(err, "could not write rows")
		}
	}
	return nil
}

func newRowReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.ReuseRecord = false
	return reader
}

func rowFromRecord(record []string) (model.Row, error) {
	var row model.Row
	if len(record) < 3 {
		return row, errors.Wrapf(ErrMalformedRow, "%v", record)
	}
	track, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return row, errors.Wrapf(ErrMalformedRow, "track %q", record[0])
	}
	tick, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 32)
	if err != nil {
		return row, errors.Wrapf(ErrMalformedRow, "tick %q", record[1])
	}
	row.Track = track
	row.Tick = uint32(tick)
	row.Type = strings.TrimSpace(record[2])
	for _, v := range record[3:] {
		row.Values = append(row.Values, strings.TrimSpace(v))
	}
	return row, nil
}

func ParseRow(line string) (model.Row, error) {
	record, err := newRowReader(strings.NewReader(line)).Read()
	if err != nil {
		return model.Row{}, errors.Wrapf(ErrMalformedRow, "%q: %v", line, err)
	}
	return rowFromRecord(record)
}

// ParseRows reads every non-blank line of r as a row.
func ParseRows(r io.Reader) ([]model.Row, error) {
	var rows []model.Row
	reader := newRowReader(r)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(ErrMalformedRow, err.Error())
		}
		row, err := rowFromRecord(record)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, errors.Wrapf(err, "line %d", line)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func ReadRowsFile(path string) ([]model.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open rows file")
	}
	defer f.Close()
	return ParseRows(f)
}

func IntValue(r model.Row, i int) (int, error) {
	if i >= len(r.Values) {
		return 0, errors.Wrapf(ErrMalformedRow, "%v has no value %d", r.Type, i)
	}
	v, err := strconv.Atoi(r.Values[i])
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedRow, "%v value %d: %q", r.Type, i, r.Values[i])
	}
	return v, nil
}
