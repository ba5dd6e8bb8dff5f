package midi

import (
	_ "embed"
	"strings"

	"github.com/kondzio13/alis/model"
	"github.com/pkg/errors"
)

// 960 ticks per quarter in 4/4, so one bar is 3840 ticks.
//
//go:embed preamble.csv
var defaultPreamble string

// LoadPreamble reads the header/settings rows placed before every generated
// solo. An empty path selects the built in preamble. Rows that cannot be
// written to a midi file fail here with ErrUnsupportedRow or
// ErrMalformedRow.
func LoadPreamble(path string) ([]model.Row, error) {
	var (
		rows []model.Row
		err  error
	)
	if path == "" {
		rows, err = ParseRows(strings.NewReader(defaultPreamble))
	} else {
		rows, err = ReadRowsFile(path)
	}
	if err != nil {
		return nil, err
	}
	if err := ValidateRows(rows); err != nil {
		return nil, errors.Wrapf(err, "preamble %v", path)
	}
	return rows, nil
}
