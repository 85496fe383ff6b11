package exporters

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Antho1426/vcf-parser/internal/entities"
)

const defaultWorksheetName = "Sheet1"

// ExcelExporter writes the contacts into a spreadsheet: one row per
// contact, the shared column order, a worksheet table over the data range,
// and the decoded contact pictures embedded as thumbnails in the picture
// column.
type ExcelExporter struct {
	OutputPath    string
	WorksheetName string
	PictureColumn string
}

func NewExcelExporter(outputPath, pictureColumn string) *ExcelExporter {
	return &ExcelExporter{
		OutputPath:    outputPath,
		WorksheetName: defaultWorksheetName,
		PictureColumn: pictureColumn,
	}
}

func (e *ExcelExporter) Export(contacts []entities.Contact) (ExportResult, error) {
	result := ExportResult{}

	workbook := excelize.NewFile()
	defer workbook.Close()

	sheet := e.WorksheetName
	if sheet == "" {
		sheet = defaultWorksheetName
	}
	if sheet != defaultWorksheetName {
		if err := workbook.SetSheetName(defaultWorksheetName, sheet); err != nil {
			return result, fmt.Errorf("failed to rename worksheet: %w", err)
		}
	}

	columns := ColumnOrder(contacts)

	if err := e.writeHeader(workbook, sheet, columns); err != nil {
		return result, err
	}

	pictureCol := 0
	for i, column := range columns {
		if column == e.PictureColumn {
			pictureCol = i + 2 // 1-based, after the Index column
		}
	}

	for row, contact := range contacts {
		if err := e.writeContactRow(workbook, sheet, columns, row+2, contact, pictureCol); err != nil {
			log.Printf("Failed to write contact %d to spreadsheet: %v", contact.ImportPosition, err)
			result.ContactsFailed++
			continue
		}
		result.ContactsProcessed++
		result.FieldsProcessed += len(contact.Fields)
	}

	if len(contacts) > 0 {
		lastCell, err := excelize.CoordinatesToCellName(len(columns)+1, len(contacts)+1)
		if err != nil {
			return result, fmt.Errorf("failed to compute table range: %w", err)
		}
		err = workbook.AddTable(sheet, &excelize.Table{Range: "A1:" + lastCell})
		if err != nil {
			return result, fmt.Errorf("failed to add worksheet table: %w", err)
		}
	} else {
		log.Printf("WARNING - no contacts to export, skipping worksheet table")
	}

	if dir := filepath.Dir(e.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return result, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := workbook.SaveAs(e.OutputPath); err != nil {
		return result, fmt.Errorf("failed to save workbook: %w", err)
	}

	return result, nil
}

func (e *ExcelExporter) writeHeader(workbook *excelize.File, sheet string, columns []string) error {
	if err := workbook.SetCellValue(sheet, "A1", "Index"); err != nil {
		return err
	}
	for i, column := range columns {
		cell, err := excelize.CoordinatesToCellName(i+2, 1)
		if err != nil {
			return err
		}
		if err := workbook.SetCellValue(sheet, cell, column); err != nil {
			return err
		}
	}
	return nil
}

func (e *ExcelExporter) writeContactRow(workbook *excelize.File, sheet string, columns []string, row int, contact entities.Contact, pictureCol int) error {
	indexCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := workbook.SetCellValue(sheet, indexCell, contact.ImportPosition); err != nil {
		return err
	}

	values := make(map[string]string, len(contact.Fields))
	for _, field := range contact.Fields {
		values[field.Name] = field.Value
	}

	for i, column := range columns {
		value, ok := values[column]
		if !ok {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+2, row)
		if err != nil {
			return err
		}

		if pictureCol == i+2 {
			if err := e.embedPicture(workbook, sheet, cell, contact, value); err != nil {
				log.Printf("Failed to embed picture for contact %d: %v", contact.ImportPosition, err)
			}
			continue
		}

		if err := workbook.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

// embedPicture decodes the base64 payload and places a thumbnail in the
// cell instead of the raw text. An undecodable payload is skipped, not a
// hard failure.
func (e *ExcelExporter) embedPicture(workbook *excelize.File, sheet, cell string, contact entities.Contact, payload string) error {
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("invalid base64 payload: %w", err)
	}

	return workbook.AddPictureFromBytes(sheet, cell, &excelize.Picture{
		Extension: ".png",
		File:      decoded,
		Format:    &excelize.GraphicOptions{ScaleX: 0.1, ScaleY: 0.1},
	})
}
