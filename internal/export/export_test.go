package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
)

func sampleRows() []model.ProjectReportRow {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return []model.ProjectReportRow{
		{
			Project:        model.Project{ID: 1, Name: "基幹刷新", Status: model.ProjectActive, Description: "phase 1", CreatedAt: created, UpdatedAt: created},
			TotalTasks:     3,
			CompletedTasks: 1,
		},
		{
			Project: model.Project{ID: 2, Name: "Empty", Status: model.ProjectPlanning},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, CSV, f)

	f, err = ParseFormat("excel")
	require.NoError(t, err)
	assert.Equal(t, Excel, f)

	_, err = ParseFormat("docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRenderCSV(t *testing.T) {
	doc, err := Render(CSV, sampleRows(), Options{Locale: i18n.Japanese})
	require.NoError(t, err)
	assert.Equal(t, "projects_export.csv", doc.Filename)

	recs, err := csv.NewReader(bytes.NewReader(doc.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "プロジェクト名", recs[0][0])
	assert.Equal(t, []string{"基幹刷新", "進行中", "phase 1", "3", "1", "33.3", "2025-06-01", "2025-06-01"}, recs[1])
	assert.Equal(t, "0", recs[2][5])
	assert.Equal(t, "", recs[2][6])
}

func TestRenderExcel(t *testing.T) {
	doc, err := Render(Excel, sampleRows(), Options{Locale: i18n.English})
	require.NoError(t, err)
	assert.Equal(t, "projects_export.xlsx", doc.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(doc.Body))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Projects", "A2")
	require.NoError(t, err)
	assert.Equal(t, "基幹刷新", v)
	v, err = f.GetCellValue("Projects", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Active", v)
}

func TestRenderPDF(t *testing.T) {
	doc, err := Render(PDF, sampleRows(), Options{Title: "Project report"})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Body, []byte("%PDF-")))
}

func TestRenderEmpty(t *testing.T) {
	_, err := Render(CSV, nil, Options{})
	assert.Error(t, err)
}
