package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/h2316307-design/adhub-pro-sub002/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(contract *model.Contract) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, contract); err != nil {
		return nil, err
	}

	unitsSheet := "Billboards"
	file.NewSheet(unitsSheet)
	if err := g.writeUnits(file, unitsSheet, contract); err != nil {
		return nil, err
	}

	installmentsSheet := "Installments"
	file.NewSheet(installmentsSheet)
	if err := g.writeInstallments(file, installmentsSheet, contract); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func FileName(contract *model.Contract) string {
	return fmt.Sprintf("contract-%d.xlsx", contract.Number)
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, contract *model.Contract) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Contract number")
	set("B1", contract.Number)
	set("A2", "Customer")
	set("B2", contract.CustomerName)
	set("A3", "Ad category")
	set("B3", contract.Category)
	set("A4", "Period start")
	set("B4", formatDate(contract.StartAt))
	set("A5", "Period end")
	set("B5", formatDate(contract.EndAt))
	set("A6", "Billboards")
	set("B6", len(contract.Units))

	totals := contract.Totals
	rows := []struct {
		label string
		value float64
	}{
		{"Rental before discount", totals.BaseTotal},
		{"Discount", totals.DiscountAmount},
		{"Rental after discount", totals.RentalAfterDiscount},
		{"Installation cost", totals.InstallationCost},
		{"Print cost", totals.PrintCost},
		{"Final total", totals.FinalTotal},
		{"Operating fee (regular)", totals.FeeBreakdown.Regular},
		{"Operating fee (partnership)", totals.FeeBreakdown.Partnership},
		{"Operating fee (friend companies)", totals.FeeBreakdown.Friend},
		{"Operating fee (included services)", totals.FeeBreakdown.IncludedServices},
		{"Operating fee total", totals.FeeBreakdown.Total()},
	}
	start := 8
	for i, row := range rows {
		set(fmt.Sprintf("A%d", start+i), row.label)
		set(fmt.Sprintf("B%d", start+i), formatMoney(row.value))
	}

	_ = file.SetColWidth(sheet, "A", "A", 36)
	_ = file.SetColWidth(sheet, "B", "B", 20)
	return nil
}

func (g *Generator) writeUnits(file *excelize.File, sheet string, contract *model.Contract) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Billboard",
		"Base price",
		"Installation",
		"Print",
		"Extra charged",
		"Discount share",
		"Final price",
		"Price missing",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, unit := range contract.Units {
		row := i + 2
		set(fmt.Sprintf("A%d", row), unit.BillboardName)
		set(fmt.Sprintf("B%d", row), formatMoney(unit.BasePrice))
		set(fmt.Sprintf("C%d", row), formatMoney(unit.InstallationCost))
		set(fmt.Sprintf("D%d", row), formatMoney(unit.PrintCost))
		set(fmt.Sprintf("E%d", row), formatMoney(unit.ExtraCharged))
		set(fmt.Sprintf("F%d", row), formatMoney(unit.DiscountShare))
		set(fmt.Sprintf("G%d", row), formatMoney(unit.FinalPrice))
		if unit.PriceMissing {
			set(fmt.Sprintf("H%d", row), "yes")
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 32)
	_ = file.SetColWidth(sheet, "B", "G", 15)
	_ = file.SetColWidth(sheet, "H", "H", 13)
	return nil
}

func (g *Generator) writeInstallments(file *excelize.File, sheet string, contract *model.Contract) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"#", "Amount", "Payment type", "Due date"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	total := 0.0
	for i, inst := range contract.Installments {
		row := i + 2
		set(fmt.Sprintf("A%d", row), i+1)
		set(fmt.Sprintf("B%d", row), formatMoney(inst.Amount))
		set(fmt.Sprintf("C%d", row), inst.PaymentType)
		set(fmt.Sprintf("D%d", row), formatDate(inst.DueDate))
		total += inst.Amount
	}

	totalRow := len(contract.Installments) + 3
	set(fmt.Sprintf("A%d", totalRow), "Total")
	set(fmt.Sprintf("B%d", totalRow), formatMoney(total))

	_ = file.SetColWidth(sheet, "A", "A", 6)
	_ = file.SetColWidth(sheet, "B", "B", 15)
	_ = file.SetColWidth(sheet, "C", "C", 20)
	_ = file.SetColWidth(sheet, "D", "D", 14)
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatMoney(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
