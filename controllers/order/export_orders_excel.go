package orderControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/innomatricstech/Sadhana-Cart-ecom/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /orders/export — back-office Excel dump of all orders.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{
			"OrderRef", "UserID", "Status", "PaymentMethod", "PaymentID",
			"TotalAmount", "Phone", "FullName", "Address", "City", "PostalCode",
			"Items", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, o := range orders {
			row := sheet.AddRow()

			row.AddCell().SetValue(o.OrderRef)
			row.AddCell().SetValue(o.UserID)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(o.PaymentMethod)
			row.AddCell().SetValue(o.PaymentID)
			row.AddCell().SetValue(o.TotalAmount)
			row.AddCell().SetValue(o.PhoneNumber)
			row.AddCell().SetValue(o.AddressDetails.FullName)
			row.AddCell().SetValue(o.AddressDetails.AddressLine1)
			row.AddCell().SetValue(o.AddressDetails.City)
			row.AddCell().SetValue(o.AddressDetails.PostalCode)

			var lines []string
			for _, item := range o.Items {
				lines = append(lines, item.Name+" x"+strconv.Itoa(item.Quantity))
			}
			row.AddCell().SetValue(strings.Join(lines, ", "))

			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
