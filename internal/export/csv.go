package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/tempsynth/internal/record"
)

// Options control number formatting in text exports.
type Options struct {
	// DecimalSeparator replaces '.' in values; default ".".
	DecimalSeparator string
	// Comma is the CSV field separator; defaults to ';' when the decimal
	// separator is ',' and ',' otherwise.
	Comma rune
}

func (o Options) comma() rune {
	if o.Comma != 0 {
		return o.Comma
	}
	if o.DecimalSeparator == "," {
		return ';'
	}
	return ','
}

// FormatValue renders v with one decimal place and the configured separator.
func (o Options) FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	if o.DecimalSeparator != "" && o.DecimalSeparator != "." {
		s = strings.Replace(s, ".", o.DecimalSeparator, 1)
	}
	return s
}

func WriteCSV(w io.Writer, rec *record.Record, opts Options) error {
	cw := csv.NewWriter(w)
	cw.Comma = opts.comma()

	if err := cw.Write(rec.Headers); err != nil {
		return err
	}
	for _, row := range rec.Rows {
		line := make([]string, 0, len(row.Values)+1)
		line = append(line, row.Timestamp)
		for _, v := range row.Values {
			line = append(line, opts.FormatValue(v))
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
