// Package export renders project report rows as CSV, Excel or PDF documents.
package export

import (
	"errors"
	"fmt"
	"math"
	"time"

	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
)

type Format string

const (
	CSV   Format = "csv"
	Excel Format = "excel"
	PDF   Format = "pdf"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case CSV, Excel, PDF:
		return f, nil
	case "":
		return CSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Document is a rendered export.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Options tune the rendered document.
type Options struct {
	Locale i18n.Locale
	Title  string
	Now    time.Time
}

var columns = map[i18n.Locale][]string{
	i18n.Japanese: {"プロジェクト名", "ステータス", "説明", "総タスク数", "完了タスク数", "進捗率(%)", "作成日", "更新日"},
	i18n.English:  {"Project", "Status", "Description", "Total tasks", "Completed tasks", "Progress (%)", "Created", "Updated"},
}

func header(l i18n.Locale) []string {
	if h, ok := columns[l]; ok {
		return h
	}
	return columns[i18n.Japanese]
}

// progress is completed/total as a percentage with one decimal.
func progress(r model.ProjectReportRow) float64 {
	if r.TotalTasks == 0 {
		return 0
	}
	return math.Round(float64(r.CompletedTasks)*1000/float64(r.TotalTasks)) / 10
}

func cells(l i18n.Locale, r model.ProjectReportRow) []any {
	return []any{
		r.Name,
		l.Label(string(r.Status)),
		r.Description,
		r.TotalTasks,
		r.CompletedTasks,
		progress(r),
		dateOnly(r.CreatedAt),
		dateOnly(r.UpdatedAt),
	}
}

func dateOnly(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.DateLayout)
}

// Render produces the document for format. rows must not be empty.
func Render(format Format, rows []model.ProjectReportRow, opts Options) (*Document, error) {
	if len(rows) == 0 {
		return nil, errors.New("nothing to export")
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	switch format {
	case CSV:
		body, err := renderCSV(rows, opts)
		return &Document{Filename: "projects_export.csv", ContentType: "text/csv; charset=utf-8", Body: body}, err
	case Excel:
		body, err := renderExcel(rows, opts)
		return &Document{
			Filename:    "projects_export.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Body:        body,
		}, err
	case PDF:
		body, err := renderPDF(rows, opts)
		return &Document{Filename: "projects_export.pdf", ContentType: "application/pdf", Body: body}, err
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
