package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"it-library-portal/internal/reports"
	"it-library-portal/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportsHandler serves the librarian's xlsx downloads.
type ReportsHandler struct {
	catalog   *service.Catalog
	ledger    *service.Ledger
	directory *service.Directory
}

// NewReportsHandler wires the report endpoints.
func NewReportsHandler(catalog *service.Catalog, ledger *service.Ledger, directory *service.Directory) *ReportsHandler {
	return &ReportsHandler{catalog: catalog, ledger: ledger, directory: directory}
}

func sendWorkbook(w http.ResponseWriter, f *excelize.File, baseName string) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", reports.FileName(baseName, time.Now())))
	if err := f.Write(w); err != nil {
		log.Printf("writing workbook: %v", err)
	}
}

// Books downloads the book catalog report.
func (h *ReportsHandler) Books(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.SearchBooks(r.Context(), "")
	if err != nil {
		fail(w, err)
		return
	}
	f, err := reports.BuildBooksReport(books)
	if err != nil {
		fail(w, err)
		return
	}
	sendWorkbook(w, f, reports.BooksReportName)
}

// Borrows downloads the joined ledger report.
func (h *ReportsHandler) Borrows(w http.ResponseWriter, r *http.Request) {
	details, err := h.ledger.ListDetails(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	f, err := reports.BuildBorrowsReport(details)
	if err != nil {
		fail(w, err)
		return
	}
	sendWorkbook(w, f, reports.BorrowsReportName)
}

// Users downloads the active member accounts report.
func (h *ReportsHandler) Users(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.directory.ListActive(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	f, err := reports.BuildActiveUsersReport(profiles)
	if err != nil {
		fail(w, err)
		return
	}
	sendWorkbook(w, f, reports.UsersReportName)
}
