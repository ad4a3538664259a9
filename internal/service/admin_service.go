package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/salon-booking/internal/domain"
	"github.com/spec-kit/salon-booking/internal/repository"
	apperrors "github.com/spec-kit/salon-booking/pkg/util"
)

// Export formats.
const (
	ExportCSV  = "csv"
	ExportXLSX = "xlsx"
)

// AdminService serves the management dashboard.
type AdminService struct {
	store *repository.Store
	clock Clock
}

// Stats are the dashboard counters.
type Stats struct {
	TotalUsers       int64
	TotalLogins      int64
	TotalBookings    int64
	BookingsByStatus map[domain.BookingStatus]int64
}

// Export is a rendered bookings file.
type Export struct {
	FileName    string
	ContentType string
	Body        []byte
}

// NewAdminService constructs the service.
func NewAdminService(store *repository.Store, clock Clock) *AdminService {
	if clock == nil {
		clock = time.Now
	}
	return &AdminService{store: store, clock: clock}
}

// Stats counts users, logins and bookings. Every status appears in
// BookingsByStatus, with zero when no booking has it.
func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	users, err := s.store.Users.Count(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	logins, err := s.store.LoginEvents.Count(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	counts, err := s.store.Bookings.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}

	stats := &Stats{
		TotalUsers:       users,
		TotalLogins:      logins,
		BookingsByStatus: make(map[domain.BookingStatus]int64, len(domain.BookingStatuses)),
	}
	for _, status := range domain.BookingStatuses {
		stats.BookingsByStatus[status] = counts[status]
	}
	for _, n := range counts {
		stats.TotalBookings += n
	}
	return stats, nil
}

var exportHeader = []string{
	"ID", "Customer", "Email", "Phone", "Service", "Date", "Time", "Status", "Notes", "Created At", "Updated At",
}

// ExportBookings renders every booking, most recent first, as csv or xlsx.
func (s *AdminService) ExportBookings(ctx context.Context, format string) (*Export, error) {
	format = strings.ToLower(trim(format))
	if format == "" {
		format = ExportCSV
	}
	if format != ExportCSV && format != ExportXLSX {
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidPayload, "export format must be csv or xlsx",
			map[string]any{"format": format})
	}

	bookings, err := s.store.Bookings.List(ctx, repository.BookingFilter{})
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	rows := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, exportRow(b))
	}

	name := fmt.Sprintf("bookings-%s.%s", s.clock().Format("20060102-150405"), format)
	if format == ExportXLSX {
		body, err := renderXLSX(rows)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		return &Export{
			FileName:    name,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Body:        body,
		}, nil
	}

	body, err := renderCSV(rows)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Export{FileName: name, ContentType: "text/csv; charset=utf-8", Body: body}, nil
}

func exportRow(b domain.Booking) []string {
	updated := ""
	if b.UpdatedAt != nil {
		updated = b.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return []string{
		strconv.FormatInt(b.ID, 10),
		b.CustomerName,
		b.Email,
		b.Phone,
		b.Service,
		b.Date,
		b.Time,
		string(b.Status),
		b.Notes,
		b.CreatedAt.UTC().Format(time.RFC3339),
		updated,
	}
}

func renderCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bookings"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
