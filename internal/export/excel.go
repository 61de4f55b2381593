package export

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
)

var sheetNames = map[i18n.Locale]string{
	i18n.Japanese: "プロジェクト一覧",
	i18n.English:  "Projects",
}

func renderExcel(rows []model.ProjectReportRow, opts Options) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet, ok := sheetNames[opts.Locale]
	if !ok {
		sheet = sheetNames[i18n.Japanese]
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	hdr := header(opts.Locale)
	widths := make([]int, len(hdr))
	write := func(rowIdx int, vals []any) error {
		for col, v := range vals {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
			if n := utf8.RuneCountInString(fmt.Sprint(v)); n > widths[col] {
				widths[col] = n
			}
		}
		return nil
	}

	head := make([]any, len(hdr))
	for i, h := range hdr {
		head[i] = h
	}
	if err := write(1, head); err != nil {
		return nil, err
	}
	for i, r := range rows {
		if err := write(i+2, cells(opts.Locale, r)); err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(hdr), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return nil, err
	}
	for col, w := range widths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheet, name, name, float64(min(w+2, 50))); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
