package client

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"
)

// Download is a file returned by the export endpoint.
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportProjects requests a csv, excel or pdf export. projectID nil exports every project.
func (c *Client) ExportProjects(ctx context.Context, format string, projectID *int) (*Download, error) {
	q := url.Values{}
	q.Set("format", format)
	if projectID != nil {
		q.Set("project_id", strconv.Itoa(*projectID))
	}

	resp, body, err := c.send(ctx, http.MethodGet, "/projects/export", q, nil)
	if err != nil {
		return nil, err
	}
	return &Download{
		Filename:    filenameOf(resp.Header.Get("Content-Disposition"), format),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func filenameOf(disposition, format string) string {
	if _, params, err := mime.ParseMediaType(disposition); err == nil {
		if name := path.Base(params["filename"]); name != "" && name != "." && name != "/" {
			return name
		}
	}
	ext := format
	if format == "excel" {
		ext = "xlsx"
	}
	return "projects_export." + ext
}
