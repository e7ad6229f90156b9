package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const SheetName = "End of Day"

var headers = []string{
	"Date", "Orders", "Transactions", "Sales", "Discount", "Tax", "Cash", "Card",
}

// ExportXLSX writes reports as one row per day followed by a totals row.
func ExportXLSX(w io.Writer, reports ...Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetName, cell, h)
		f.SetCellStyle(SheetName, cell, cell, headerStyle)
	}

	var (
		orders, txs                      int
		sales, discount, tax, cash, card decimal.Decimal
	)
	row := 2
	for _, r := range reports {
		values := []any{
			label(r), r.TotalOrders, r.TotalTransactions,
			r.TotalSales.InexactFloat64(), r.TotalDiscount.InexactFloat64(), r.TotalTax.InexactFloat64(),
			r.CashTotal.InexactFloat64(), r.CardTotal.InexactFloat64(),
		}
		if err := setRow(f, row, values); err != nil {
			return err
		}
		orders += r.TotalOrders
		txs += r.TotalTransactions
		sales = sales.Add(r.TotalSales.Decimal)
		discount = discount.Add(r.TotalDiscount.Decimal)
		tax = tax.Add(r.TotalTax.Decimal)
		cash = cash.Add(r.CashTotal.Decimal)
		card = card.Add(r.CardTotal.Decimal)
		row++
	}
	totals := []any{
		"TOTAL", orders, txs,
		sales.InexactFloat64(), discount.InexactFloat64(), tax.InexactFloat64(),
		cash.InexactFloat64(), card.InexactFloat64(),
	}
	if err := setRow(f, row, totals); err != nil {
		return err
	}
	f.SetCellStyle(SheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), headerStyle)

	f.AutoFilter(SheetName, "A1:H1", []excelize.AutoFilterOptions{})
	f.SetPanes(SheetName, &excelize.Panes{Freeze: true, Split: true, YSplit: 1})
	f.SetActiveSheet(0)
	return f.Write(w)
}

func setRow(f *excelize.File, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func label(r Report) string {
	switch {
	case r.Date != "":
		return r.Date
	case r.StartDate != "" || r.EndDate != "":
		return r.StartDate + " - " + r.EndDate
	default:
		return "-"
	}
}
