package controllers

import (
	"fmt"
	"net/http"
	"time"

	"go-inventory-sales/models"
	"go-inventory-sales/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func writeXLSX(c *gin.Context, f *excelize.File, name string) {
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"%s_%s.xlsx\"", name, time.Now().Format("20060102")))
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ExportProductStock streams the filtered stock report as a spreadsheet.
// Same filters as the JSON endpoint, no pagination.
func (ctl *ReportsController) ExportProductStock(c *gin.Context) {
	var rows []models.ProductStock
	if err := ctl.productStockQuery(c).Order("name").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	f := excelize.NewFile()
	sheet := "Product Stock"
	index, err := f.NewSheet(sheet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Product ID", "Name", "Price", "Reorder Level", "Stock On Hand", "Needs Restock"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, h)
	}

	for idx, r := range rows {
		row := idx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ProductID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Price)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.ReorderLevel)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.StockOnHand)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.NeedsRestock)
	}

	f.SetColWidth(sheet, "B", "B", 30)

	writeXLSX(c, f, "product_stock")
}

// ExportProfitability streams the filtered profitability report as a
// spreadsheet. Same filters as the JSON endpoint, no pagination.
func (ctl *ReportsController) ExportProfitability(c *gin.Context) {
	q, ok := ctl.profitabilityQuery(c)
	if !ok {
		return
	}

	var rows []models.ProfitabilityReport
	if err := q.Order("sale_datetime DESC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	f := excelize.NewFile()
	sheet := "Profitability"
	index, err := f.NewSheet(sheet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Sale Item ID", "Sale ID", "Sale Datetime", "Product", "Quantity",
		"Unit Price", "Discount", "Revenue", "Avg Cost At Sale", "COGS", "Gross Profit",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for idx, r := range rows {
		row := idx + 2
		values := []interface{}{
			r.SaleItemID, r.SaleID, r.SaleDatetime.Format(utils.DateLayout + " 15:04:05"),
			r.ProductName, r.Quantity, r.UnitPrice, r.Discount,
			r.TotalRevenue, r.AverageCostAtSale, r.TotalCOGS, r.GrossProfit,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "C", "D", 22)

	writeXLSX(c, f, "profitability")
}
