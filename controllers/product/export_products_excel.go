package productcontroller

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/sunrise-cafe/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// Inventory is everything the export workbook shows.
type Inventory struct {
	Products []models.Product
	Orders   []models.Order
}

// LoadInventory reads the catalog and every order with its items and customer.
func LoadInventory(ctx context.Context, db *gorm.DB) (Inventory, error) {
	var inv Inventory
	products, err := ListProducts(ctx, db)
	if err != nil {
		return inv, fmt.Errorf("failed to fetch products: %w", err)
	}
	inv.Products = products
	if err := db.WithContext(ctx).Preload("Items").Preload("User").Order("id").Find(&inv.Orders).Error; err != nil {
		return inv, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return inv, nil
}

func addHeader(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetValue(h)
	}
}

// BuildInventoryWorkbook lays out a Products sheet and an Orders sheet.
func BuildInventoryWorkbook(inv Inventory) (*xlsx.File, error) {
	file := xlsx.NewFile()

	products, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}
	addHeader(products, "ID", "Name", "Price", "Stock", "Image")
	for _, p := range inv.Products {
		row := products.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Price.StringFixed(2))
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.ImageURL)
	}

	orders, err := file.AddSheet("Orders")
	if err != nil {
		return nil, err
	}
	addHeader(orders, "ID", "Reference", "Date", "Customer", "Total", "Items")
	for _, o := range inv.Orders {
		customer := models.GuestOrdersTitle
		if o.User != nil {
			customer = o.User.Username
		}
		items := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, fmt.Sprintf("%d x %s", item.Quantity, item.ItemName))
		}

		row := orders.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.Reference)
		row.AddCell().SetValue(o.OrderDate.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(customer)
		row.AddCell().SetValue(o.TotalPrice.StringFixed(2))
		row.AddCell().SetValue(strings.Join(items, ", "))
	}
	return file, nil
}

func ExportInventory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		inv, err := LoadInventory(c.Request.Context(), db)
		if err != nil {
			slog.Error("Failed to load inventory", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to export inventory"})
			return
		}

		file, err := BuildInventoryWorkbook(inv)
		if err != nil {
			slog.Error("Failed to build inventory workbook", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to export inventory"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=inventory.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			slog.Error("Failed to write inventory workbook", "err", err)
		}
	}
}
