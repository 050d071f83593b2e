// Package reports renders the librarian's xlsx exports.
package reports

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"it-library-portal/internal/models"
)

// Download file names, without the .xlsx extension.
const (
	BooksReportName   = "Available_Books_Report"
	BorrowsReportName = "Borrow_Records_Report"
	UsersReportName   = "Active_Users_Report"
)

const dateLayout = "02 Jan 2006"

// newSheet replaces the default Sheet1 with a named sheet and writes the
// header row.
func newSheet(name string, headers []string, widths []float64) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, err
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return nil, err
		}
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(name, col, col, w); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// BuildBooksReport lists the whole book catalog with copy counts.
func BuildBooksReport(books []*models.Book) (*excelize.File, error) {
	const sheet = "Books"
	f, err := newSheet(sheet,
		[]string{"Book ID", "Title", "Author", "Publisher", "Edition", "Total Copies", "Available Copies"},
		[]float64{24, 36, 24, 24, 12, 14, 16})
	if err != nil {
		return nil, err
	}

	for i, b := range books {
		err := setRow(f, sheet, i+2, []interface{}{
			b.ID, b.Title, b.Author, b.Publisher, b.Edition, b.TotalCopies, b.AvailableCopies,
		})
		if err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return f, nil
}

// BuildBorrowsReport lists the joined ledger. Status is Borrowed, Overdue,
// or Returned; overdue is derived at render time, never stored.
func BuildBorrowsReport(details []*models.BorrowDetails) (*excelize.File, error) {
	const sheet = "Borrows"
	f, err := newSheet(sheet,
		[]string{"User Name", "Roll No / Faculty ID", "User Role", "Book Title", "Book Code", "Issue Date", "Due Date", "Return Date", "Status"},
		[]float64{24, 20, 12, 36, 14, 14, 14, 14, 12})
	if err != nil {
		return nil, err
	}

	for i, d := range details {
		userName, identifier, role := "Unknown", "", ""
		if d.Profile != nil {
			userName = d.Profile.Name
			identifier = d.Profile.RollOrFacultyID
			role = string(d.Profile.Role)
		}
		title := "Unknown"
		if d.Book != nil {
			title = d.Book.Title
		}

		returnDate := ""
		if d.ReturnedAt != nil {
			returnDate = d.ReturnedAt.Format(dateLayout)
		}

		status := "Returned"
		if d.Status == models.BorrowStatusBorrowed {
			status = "Borrowed"
			if d.Overdue {
				status = "Overdue"
			}
		}

		err := setRow(f, sheet, i+2, []interface{}{
			userName, identifier, role, title, d.BookCode,
			d.BorrowDate.Format(dateLayout), d.DueDate.Format(dateLayout), returnDate, status,
		})
		if err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return f, nil
}

// BuildActiveUsersReport lists every approved member account.
func BuildActiveUsersReport(profiles []*models.Profile) (*excelize.File, error) {
	const sheet = "Users"
	f, err := newSheet(sheet,
		[]string{"User ID", "Name", "Roll No / Faculty ID", "Role", "Phone", "Account Status", "Registration Date"},
		[]float64{24, 24, 20, 12, 14, 14, 16})
	if err != nil {
		return nil, err
	}

	for i, p := range profiles {
		err := setRow(f, sheet, i+2, []interface{}{
			p.ID, p.Name, p.RollOrFacultyID, string(p.Role), p.Phone, string(p.Status),
			p.CreatedAt.Format(dateLayout),
		})
		if err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return f, nil
}

// FileName stamps a report name with the generation date, matching the
// downloads the librarian sees in the browser.
func FileName(base string, at time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", base, at.Format("2006-01-02"))
}
