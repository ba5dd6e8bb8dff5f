package sample

import (
	"io"
	"os"
	"strings"

	"github.com/kondzio13/alis/constants"
	"github.com/pkg/errors"
)

var ErrNoSample = errors.New("no sample text")

// Read loads a model sample from a file, or from stdin when path is "-".
func Read(path string, stdin io.Reader) (string, error) {
	var (
		dat []byte
		err error
	)
	if path == "-" {
		dat, err = io.ReadAll(stdin)
	} else {
		dat, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errors.Wrapf(err, "could not read sample %v", path)
	}
	text := strings.TrimSpace(string(dat))
	if text == "" {
		return "", errors.Wrap(ErrNoSample, path)
	}
	return text, nil
}

// Solos splits a sample holding several solos into single-solo samples,
// each starting with the prime. Blank sections are dropped.
func Solos(text string) []string {
	var res []string
	for _, part := range strings.Split(text, constants.SoloBoundary) {
		part = strings.Trim(part, " \t\r\n")
		if part == "" {
			continue
		}
		res = append(res, constants.LeadingMarker+part+constants.NoteSeparator+constants.SoloBoundary)
	}
	return res
}

// IsPrimed reports whether text starts the way every generated sample does.
func IsPrimed(text string) bool {
	return strings.HasPrefix(text, constants.LeadingMarker)
}
