package delivery

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AmrElsaadany/Jojo-Stock/internal/domain"
)

const (
	csvContentType = "text/csv; charset=utf-8"
	csvStampLayout = "20060102_150405"
	timeLayout     = "2006-01-02 15:04:05"
)

// writeCSVAttachment renders header+records as a CSV download named
// <prefix>_<timestamp>.csv.
func writeCSVAttachment(c *gin.Context, prefix string, header []string, records [][]string) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(header); err == nil {
		writer.WriteAll(records)
	}
	if err := writer.Error(); err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to render CSV: "+err.Error())
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", prefix, time.Now().Format(csvStampLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, csvContentType, buf.Bytes())
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func salesSummaryCSV(rows []domain.SalesSummaryRow) ([]string, [][]string) {
	header := []string{"id", "name", "category", "price", "total_sales", "total_quantity_sold", "total_revenue"}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			strconv.Itoa(row.ProductID),
			row.Name,
			row.Category,
			money(row.Price),
			strconv.Itoa(row.TotalSales),
			strconv.Itoa(row.TotalQuantity),
			money(row.TotalRevenue),
		})
	}
	return header, records
}

func highValueProductsCSV(products []domain.HighValueProduct) ([]string, [][]string) {
	header := []string{"id", "name", "category", "price", "rounded_price", "stock"}
	records := make([][]string, 0, len(products))
	for _, p := range products {
		records = append(records, []string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Category,
			money(p.Price),
			money(p.RoundedPrice),
			strconv.Itoa(p.Stock),
		})
	}
	return header, records
}

func productListingCSV(products []domain.Product) ([]string, [][]string) {
	header := []string{"id", "name", "price", "category", "stock"}
	records := make([][]string, 0, len(products))
	for _, p := range products {
		records = append(records, []string{
			strconv.Itoa(p.ID),
			p.Name,
			money(p.Price),
			p.Category,
			strconv.Itoa(p.Stock),
		})
	}
	return header, records
}

func scanSessionCSV(session *domain.StocktakeSession) ([]string, [][]string) {
	header := []string{"timestamp", "barcode", "product_name", "old_qty", "new_qty", "action"}
	records := make([][]string, 0, len(session.Items))
	for _, r := range session.Items {
		records = append(records, []string{
			r.Timestamp.Format(timeLayout),
			r.Barcode,
			r.Name,
			strconv.Itoa(r.OldQty),
			strconv.Itoa(r.NewQty),
			r.Action,
		})
	}
	return header, records
}
