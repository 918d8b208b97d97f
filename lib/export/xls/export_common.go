package xlsexport

import "github.com/xuri/excelize/v2"

const (
	columnWidth = 30
	fontFamily  = "Times New Roman"
	fontSize    = 11
	// встроенный формат "#,##0.00"
	moneyNumFmt = 4
)

type sheetStyles struct {
	header int
	text   int
	money  int
	total  int
}

func newSheetStyles(f *excelize.File) (styles sheetStyles, err error) {
	font := func(bold bool) *excelize.Font {
		return &excelize.Font{Bold: bold, Family: fontFamily, Size: fontSize}
	}
	styles.header, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true},
		Font:      font(true),
	})
	if err != nil {
		return styles, err
	}
	styles.text, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Font:      font(false),
	})
	if err != nil {
		return styles, err
	}
	styles.money, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Font:      font(false),
		NumFmt:    moneyNumFmt,
	})
	if err != nil {
		return styles, err
	}
	styles.total, err = f.NewStyle(&excelize.Style{
		Font:   font(true),
		NumFmt: moneyNumFmt,
	})
	return styles, err
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for idx, value := range values {
		if value == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(idx+1, row)
		if err != nil {
			return err
		}
		if err = f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func setStyle(f *excelize.File, sheet string, style, colFrom, rowFrom, colTo, rowTo int) error {
	cellFirst, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellFirst, cellLast, style)
}

func writeHeader(f *excelize.File, sheet string, styles sheetStyles, headers []string) error {
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err = f.SetColWidth(sheet, "A", lastCol, columnWidth); err != nil {
		return err
	}
	values := make([]interface{}, 0, len(headers))
	for _, header := range headers {
		values = append(values, header)
	}
	if err = writeRow(f, sheet, 1, values); err != nil {
		return err
	}
	return setStyle(f, sheet, styles.header, 1, 1, len(headers), 1)
}
