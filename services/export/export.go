// Package exportsvc turns a form's submissions into downloadable spreadsheets.
// Column layout is stable across formats: Submitted At, Name, Email, then one
// column per schema field in schema order.
package exportsvc

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/pkg/errors"

	"github.com/osatria/portal/core/form"
	"github.com/osatria/portal/core/submission"
)

const timestampLayout = "2006-01-02 15:04:05"

// Formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var ErrUnknownFormat = errors.New("unknown export format")

// ContentType returns the MIME type to serve an export under.
func ContentType(format string) string {
	switch format {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv"
	}
}

// Filename builds the download name for an export, e.g. "ospp-2026.csv".
func Filename(slug, format string) string {
	return slug + "." + format
}

// Export writes the submissions in the requested format.
func Export(w io.Writer, format string, frm form.Form, subs []submission.Submission) error {
	switch format {
	case FormatCSV:
		return CSV(w, frm, subs)
	case FormatXLSX:
		return XLSX(w, frm, subs)
	default:
		return ErrUnknownFormat
	}
}

func CSV(w io.Writer, frm form.Form, subs []submission.Submission) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers(frm)); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	for _, sub := range subs {
		if err := cw.Write(row(frm, sub)); err != nil {
			return errors.Wrap(err, "writing csv row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}

func XLSX(w io.Writer, frm form.Form, subs []submission.Submission) error {
	f := excelize.NewFile()
	sheet := "Submissions"
	f.SetSheetName(f.GetSheetName(0), sheet)

	writeRow := func(rowIdx int, values []string) error {
		for colIdx, val := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
			if err != nil {
				return err
			}
			if err = f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(1, headers(frm)); err != nil {
		return errors.Wrap(err, "writing xlsx header")
	}
	for i, sub := range subs {
		if err := writeRow(i+2, row(frm, sub)); err != nil {
			return errors.Wrap(err, "writing xlsx row")
		}
	}

	return errors.Wrap(f.Write(w), "writing xlsx")
}

func headers(frm form.Form) []string {
	hdrs := []string{"Submitted At", "Name", "Email"}
	for _, fld := range frm.Fields {
		hdrs = append(hdrs, fld.Label)
	}
	return hdrs
}

func row(frm form.Form, sub submission.Submission) []string {
	cells := []string{
		sub.SubmittedAt.UTC().Format(timestampLayout),
		sub.UserName,
		sub.UserEmail,
	}
	for _, fld := range frm.Fields {
		cells = append(cells, cellValue(sub.Responses[fld.ID]))
	}
	return cells
}

func cellValue(val submission.Value) string {
	switch val.Kind {
	case submission.KindText:
		return val.Text
	case submission.KindChoices:
		return strings.Join(val.Choices, "; ")
	case submission.KindFile:
		return val.File.URL
	}
	return ""
}
