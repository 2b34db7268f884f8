package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"tripdesk/internal/models"
)

// Exporter renders reservation reports as Excel workbooks.
type Exporter struct {
	path   string
	logger *zerolog.Logger
}

func NewExporter(path string, logger *zerolog.Logger) *Exporter {
	return &Exporter{path: path, logger: logger}
}

var reportHeaders = []string{
	"ID", "Hotel", "Room Type", "Guest", "Company",
	"Check-in", "Check-out", "Nights", "Guests",
	"Price/Night", "Total", "Service Fee", "Grand Total",
	"Status", "Created",
}

// BuildWorkbook renders the reservations into a single-sheet workbook.
// The caller owns the returned file and must Close it.
func BuildWorkbook(reservations []*models.ReservationView) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Reservations"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for col, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, r := range reservations {
		row := i + 2
		values := []any{
			r.ID, r.HotelName, r.RoomTypeName, r.UserName, r.CompanyName,
			r.CheckInDate.String(), r.CheckOutDate.String(), r.Nights, r.Guests,
			r.PricePerNight.String(), r.TotalPrice.String(), r.ServiceFee.String(), r.GrandTotal.String(),
			string(r.Status), r.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 36)
	_ = f.SetColWidth(sheetName, "B", "E", 24)
	_ = f.SetColWidth(sheetName, "F", "O", 14)

	return f, nil
}

// Save writes a reservations workbook under the export directory and
// returns the file path.
func (e *Exporter) Save(reservations []*models.ReservationView) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	f, err := BuildWorkbook(reservations)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fileName := fmt.Sprintf("reservations_%s.xlsx", time.Now().Format("2006-01-02_150405"))
	filePath := filepath.Join(e.path, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("rows", len(reservations)).Msg("Excel file created")
	return filePath, nil
}
