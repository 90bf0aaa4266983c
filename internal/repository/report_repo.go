package repository

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AmrElsaadany/Jojo-Stock/internal/domain"
)

type postgresReportRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresReportRepository(db *sql.DB, logger *logrus.Logger) domain.ReportRepository {
	return &postgresReportRepository{
		db:  db,
		log: logger,
	}
}

// SalesSummary returns one row per product with its aggregated sales.
// The left join keeps products that never sold; their quantity and revenue
// come back NULL and are mapped to zero. NULLS LAST keeps those rows at the
// bottom so revenue stays non-increasing from the first row to the last.
func (r *postgresReportRepository) SalesSummary() ([]domain.SalesSummaryRow, error) {
	query := `
        SELECT p.id, p.name, p.category, p.price,
               COUNT(s.id) AS total_sales,
               SUM(s.quantity) AS total_quantity_sold,
               ROUND(p.price * SUM(s.quantity), 2) AS total_revenue
        FROM products p
        LEFT JOIN sales s ON s.product_id = p.id
        GROUP BY p.id, p.name, p.category, p.price
        ORDER BY total_revenue DESC NULLS LAST, p.id`
	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Failed to run sales summary report: %v", err)
		return nil, fmt.Errorf("could not run sales summary report: %w", err)
	}
	defer rows.Close()

	summary := []domain.SalesSummaryRow{}
	for rows.Next() {
		var row domain.SalesSummaryRow
		var category sql.NullString
		var price sql.NullFloat64
		var totalQuantity sql.NullInt64
		var totalRevenue sql.NullFloat64
		if err := rows.Scan(&row.ProductID, &row.Name, &category, &price, &row.TotalSales, &totalQuantity, &totalRevenue); err != nil {
			r.log.Errorf("Failed to scan sales summary row: %v", err)
			return nil, fmt.Errorf("error scanning sales summary data: %w", err)
		}
		row.Category = category.String
		row.Price = price.Float64
		if totalQuantity.Valid {
			row.TotalQuantity = int(totalQuantity.Int64)
		}
		if totalRevenue.Valid {
			row.TotalRevenue = totalRevenue.Float64
		}
		summary = append(summary, row)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during sales summary iteration: %v", err)
		return nil, fmt.Errorf("error iterating sales summary rows: %w", err)
	}
	r.log.Infof("Sales summary report produced %d rows", len(summary))
	return summary, nil
}

// HighValueProducts returns the products priced strictly above the average
// price. On an empty products table AVG(price) is NULL, the comparison never
// holds and the result is empty without any special casing.
func (r *postgresReportRepository) HighValueProducts() ([]domain.HighValueProduct, error) {
	query := `
        SELECT id, name, category, price, ROUND(price, 2) AS rounded_price, stock
        FROM products
        WHERE price > (SELECT AVG(price) FROM products)
        ORDER BY price DESC, id`
	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Failed to run high-value products report: %v", err)
		return nil, fmt.Errorf("could not run high-value products report: %w", err)
	}
	defer rows.Close()

	products := []domain.HighValueProduct{}
	for rows.Next() {
		var product domain.HighValueProduct
		var category sql.NullString
		var price, roundedPrice sql.NullFloat64
		var stock sql.NullInt64
		if err := rows.Scan(&product.ID, &product.Name, &category, &price, &roundedPrice, &stock); err != nil {
			r.log.Errorf("Failed to scan high-value product row: %v", err)
			return nil, fmt.Errorf("error scanning high-value product data: %w", err)
		}
		product.Category = category.String
		product.Price = price.Float64
		product.RoundedPrice = roundedPrice.Float64
		if stock.Valid {
			product.Stock = int(stock.Int64)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during high-value products iteration: %v", err)
		return nil, fmt.Errorf("error iterating high-value products: %w", err)
	}
	r.log.Infof("High-value products report produced %d rows", len(products))
	return products, nil
}

// ListProducts returns every product ordered alphabetically by name.
func (r *postgresReportRepository) ListProducts() ([]domain.Product, error) {
	query := `
        SELECT id, name, price, category, stock
        FROM products
        ORDER BY name, id`
	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		var price sql.NullFloat64
		var category sql.NullString
		var stock sql.NullInt64
		if err := rows.Scan(&product.ID, &product.Name, &price, &category, &stock); err != nil {
			r.log.Errorf("Failed to scan product row: %v", err)
			return nil, fmt.Errorf("error scanning product data: %w", err)
		}
		product.Price = price.Float64
		product.Category = category.String
		if stock.Valid {
			product.Stock = int(stock.Int64)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during product list iteration: %v", err)
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	r.log.Infof("Product listing produced %d rows", len(products))
	return products, nil
}
