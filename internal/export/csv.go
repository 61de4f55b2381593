package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"wbsplanner/internal/model"
)

func renderCSV(rows []model.ProjectReportRow, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header(opts.Locale)); err != nil {
		return nil, err
	}
	for _, r := range rows {
		vals := cells(opts.Locale, r)
		rec := make([]string, len(vals))
		for i, v := range vals {
			rec[i] = fmt.Sprint(v)
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
