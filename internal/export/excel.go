package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"greenleaf/internal/domain/job"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	jobsSheet    = "Jobs"
)

var jobHeaders = []string{"ID", "Company", "Title", "Location", "Status", "Green Score", "Created", "Expires", "Link"}

// Jobs renders postings into a workbook with a summary sheet and one row per job.
func Jobs(w io.Writer, jobs []job.Job, scope string, now time.Time) error {
	f, err := build(jobs, scope, now)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(w)
	return err
}

// JobsFile writes the workbook to path, adding the .xlsx extension when missing.
func JobsFile(path string, jobs []job.Job, scope string, now time.Time) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f, err := build(jobs, scope, now)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

func build(jobs []job.Job, scope string, now time.Time) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(jobsSheet); err != nil {
		f.Close()
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2E7D32"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := writeSummary(f, header, jobs, scope, now); err != nil {
		f.Close()
		return nil, fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeJobs(f, header, jobs); err != nil {
		f.Close()
		return nil, fmt.Errorf("jobs sheet: %w", err)
	}
	return f, nil
}

func writeSummary(f *excelize.File, header int, jobs []job.Job, scope string, now time.Time) error {
	if err := f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 40); err != nil {
		return err
	}

	if scope == "" {
		scope = "all companies"
	}
	counts := map[job.Status]int{}
	total := 0
	for _, j := range jobs {
		counts[j.Status]++
		total += j.GreenScore
	}
	avg := 0.0
	if len(jobs) > 0 {
		avg = float64(total) / float64(len(jobs))
	}

	rows := [][]any{
		{"Greenleaf job export"},
		{"Scope", scope},
		{"Generated", now.UTC().Format(time.RFC3339)},
		{"Jobs", len(jobs)},
		{"Active", counts[job.StatusActive]},
		{"Draft", counts[job.StatusDraft]},
		{"Filled", counts[job.StatusFilled]},
		{"Expired", counts[job.StatusExpired]},
		{"Average green score", fmt.Sprintf("%.2f", avg)},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &r); err != nil {
			return err
		}
	}
	if err := f.MergeCell(summarySheet, "A1", "B1"); err != nil {
		return err
	}
	return f.SetCellStyle(summarySheet, "A1", "B1", header)
}

func writeJobs(f *excelize.File, header int, jobs []job.Job) error {
	headers := make([]any, len(jobHeaders))
	for i, h := range jobHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(jobsSheet, "A1", &headers); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(jobHeaders), 1)
	if err := f.SetCellStyle(jobsSheet, "A1", last, header); err != nil {
		return err
	}
	if err := f.SetColWidth(jobsSheet, "A", "A", 38); err != nil {
		return err
	}
	if err := f.SetColWidth(jobsSheet, "B", "D", 28); err != nil {
		return err
	}

	for i, j := range jobs {
		expires := ""
		if j.ExpiredAt != nil {
			expires = j.ExpiredAt.UTC().Format("2006-01-02")
		}
		link := ""
		if j.Link != nil {
			link = *j.Link
		}
		row := []any{
			j.ID.String(), j.BusinessName, j.Title, j.Location, string(j.Status), j.GreenScore,
			j.CreatedAt.UTC().Format("2006-01-02"), expires, link,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(jobsSheet, cell, &row); err != nil {
			return err
		}
	}
	return f.AutoFilter(jobsSheet, "A1:"+last, nil)
}
