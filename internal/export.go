package internal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/pharmamed/orders/internal/model"
)

const (
	detailSheet  = "Orders"
	summarySheet = "Summary"

	exportDateLayout = "02/01/2006 15:04"
)

type ExportGenerator struct {
	logger *zap.SugaredLogger
}

func NewExportGenerator(logger *zap.SugaredLogger) *ExportGenerator {
	return &ExportGenerator{logger: logger}
}

type productGroup struct {
	name   string
	orders []model.Order
}

// groupByProduct groups orders by product name, keeping both group
// order and in-group order as they appear in the input.
func groupByProduct(orders []model.Order) []productGroup {
	idx := make(map[string]int)
	var groups []productGroup
	for _, o := range orders {
		i, ok := idx[o.ProductName]
		if !ok {
			i = len(groups)
			idx[o.ProductName] = i
			groups = append(groups, productGroup{name: o.ProductName})
		}
		groups[i].orders = append(groups[i].orders, o)
	}
	return groups
}

// Generate builds the two-sheet workbook for an already filtered order
// list: a detail sheet with one row per product and repeating
// (pharmacy, quantity) column pairs sized to the largest group, and a
// condensed summary sheet with per-product totals.
func (g *ExportGenerator) Generate(orders []model.Order, selection string) (*model.Export, error) {
	if len(orders) == 0 {
		return nil, ErrEmptyExport
	}

	groups := groupByProduct(orders)
	maxPharmacies := 0
	for _, gr := range groups {
		if len(gr.orders) > maxPharmacies {
			maxPharmacies = len(gr.orders)
		}
	}

	headers := []string{"Product Name"}
	for i := 0; i < maxPharmacies; i++ {
		headers = append(headers, "Pharmacy Name", "Quantity")
	}
	headers = append(headers, "Total Quantity", "Urgency", "Date Ordered", "Status")

	// fixed column positions after the repeating pairs
	totalCol := 2*maxPharmacies + 2
	urgencyCol := totalCol + 1
	dateCol := totalCol + 2
	statusCol := totalCol + 3
	numCols := statusCol

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", detailSheet)
	f.NewSheet(summarySheet)
	f.SetActiveSheet(f.GetSheetIndex(detailSheet))

	styles, err := newExportStyles(f)
	if err != nil {
		return nil, err
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(detailSheet, cell, h)
	}
	lastHeader, err := excelize.CoordinatesToCellName(numCols, 1)
	if err != nil {
		return nil, err
	}
	f.SetCellStyle(detailSheet, "A1", lastHeader, styles.header)

	for i, gr := range groups {
		row := i + 2
		first := gr.orders[0]

		totalQty := 0
		for _, o := range gr.orders {
			totalQty += o.Quantity
		}

		setCell(f, detailSheet, 1, row, gr.name)
		for j, o := range gr.orders {
			setCell(f, detailSheet, 2+2*j, row, o.PharmacyName)
			setCell(f, detailSheet, 3+2*j, row, o.Quantity)
		}
		setCell(f, detailSheet, totalCol, row, totalQty)
		setCell(f, detailSheet, urgencyCol, row, first.Urgency)
		setCell(f, detailSheet, dateCol, row, first.CreatedAt.In(gulfZone).Format(exportDateLayout))
		setCell(f, detailSheet, statusCol, row, first.Status)

		styleDetailRow(f, styles, row, maxPharmacies, totalCol, numCols)
	}

	lastCell, err := excelize.CoordinatesToCellName(numCols, len(groups)+1)
	if err != nil {
		return nil, err
	}
	f.AutoFilter(detailSheet, "A1", lastCell, "")

	setDetailColWidths(f, maxPharmacies, totalCol)

	f.SetCellValue(summarySheet, "A1", "Product Name")
	f.SetCellValue(summarySheet, "B1", "Total Quantity")
	f.SetCellStyle(summarySheet, "A1", "B1", styles.header)
	for i, gr := range groups {
		totalQty := 0
		for _, o := range gr.orders {
			totalQty += o.Quantity
		}
		setCell(f, summarySheet, 1, i+2, gr.name)
		setCell(f, summarySheet, 2, i+2, totalQty)
		f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", i+2), fmt.Sprintf("A%d", i+2), styles.left)
		f.SetCellStyle(summarySheet, fmt.Sprintf("B%d", i+2), fmt.Sprintf("B%d", i+2), styles.total)
	}
	f.SetColWidth(summarySheet, "A", "A", 25)
	f.SetColWidth(summarySheet, "B", "B", 15)

	id := uuid.NewString()
	f.SetDocProps(&excelize.DocProperties{
		Title:      "Pharmacy Orders",
		Identifier: id,
	})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	label := selection
	if selection == SelectionAll {
		label = AllDatesLabel
	}
	filename := fmt.Sprintf("pharmacy-orders-%s-%s.xlsx", label, time.Now().In(gulfZone).Format(bucketLayout))

	g.logger.Infof("generated export %s: %d orders, %d products, file %s", id, len(orders), len(groups), filename)

	return &model.Export{ID: id, Filename: filename, Content: buf.Bytes()}, nil
}

type exportStyles struct {
	header    int
	left      int
	center    int
	leftZebra int
	centerZeb int
	total     int
}

func thinBorders() []excelize.Border {
	var borders []excelize.Border
	for _, side := range []string{"left", "right", "top", "bottom"} {
		borders = append(borders, excelize.Border{Type: side, Color: "000000", Style: 1})
	}
	return borders
}

func newExportStyles(f *excelize.File) (exportStyles, error) {
	var s exportStyles
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return s, err
	}

	s.left, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return s, err
	}

	s.center, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return s, err
	}

	s.leftZebra, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F2F2F2"}},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return s, err
	}

	s.centerZeb, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F2F2F2"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return s, err
	}

	s.total, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6F3FF"}},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	return s, err
}

// styleDetailRow mirrors the original sheet: even rows shaded, product
// and quantity columns centered, pharmacy names left aligned, total
// quantity bold on its own highlight.
func styleDetailRow(f *excelize.File, styles exportStyles, row, maxPharmacies, totalCol, numCols int) {
	zebra := row%2 == 0
	for col := 1; col <= numCols; col++ {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			continue
		}

		style := styles.left
		switch {
		case col == totalCol:
			style = styles.total
		case col == 1 || col > totalCol || isQuantityColumn(col, maxPharmacies):
			style = styles.center
			if zebra {
				style = styles.centerZeb
			}
		default:
			if zebra {
				style = styles.leftZebra
			}
		}
		f.SetCellStyle(detailSheet, cell, cell, style)
	}
}

// isQuantityColumn reports whether col is the quantity half of a
// (pharmacy, quantity) pair.
func isQuantityColumn(col, maxPharmacies int) bool {
	return col > 1 && col <= 2*maxPharmacies+1 && col%2 == 1
}

func setDetailColWidths(f *excelize.File, maxPharmacies, totalCol int) {
	f.SetColWidth(detailSheet, "A", "A", 25)
	for i := 0; i < maxPharmacies; i++ {
		pharmacy, err := excelize.ColumnNumberToName(2 + 2*i)
		if err != nil {
			continue
		}
		qty, err := excelize.ColumnNumberToName(3 + 2*i)
		if err != nil {
			continue
		}
		f.SetColWidth(detailSheet, pharmacy, pharmacy, 20)
		f.SetColWidth(detailSheet, qty, qty, 10)
	}
	for i, width := range []float64{15, 12, 18, 12} {
		name, err := excelize.ColumnNumberToName(totalCol + i)
		if err != nil {
			continue
		}
		f.SetColWidth(detailSheet, name, name, width)
	}
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return
	}
	f.SetCellValue(sheet, cell, value)
}
