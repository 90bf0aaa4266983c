package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AmrElsaadany/Jojo-Stock/internal/domain"
)

var sampleProducts = []domain.Product{
	{ID: 1, Name: "Laptop", Price: 999.99, Category: "Electronics", Stock: 15},
	{ID: 2, Name: "Mouse", Price: 29.99, Category: "Electronics", Stock: 50},
	{ID: 3, Name: "Keyboard", Price: 79.99, Category: "Electronics", Stock: 30},
	{ID: 4, Name: "Monitor", Price: 299.99, Category: "Electronics", Stock: 20},
	{ID: 5, Name: "Desk", Price: 199.99, Category: "Furniture", Stock: 10},
}

var sampleSales = []domain.Sale{
	{ID: 1, ProductID: 1, Quantity: 2, SaleDate: time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC)},
	{ID: 2, ProductID: 2, Quantity: 5, SaleDate: time.Date(2025, time.November, 16, 0, 0, 0, 0, time.UTC)},
	{ID: 3, ProductID: 3, Quantity: 3, SaleDate: time.Date(2025, time.November, 17, 0, 0, 0, 0, time.UTC)},
	{ID: 4, ProductID: 1, Quantity: 1, SaleDate: time.Date(2025, time.November, 18, 0, 0, 0, 0, time.UTC)},
	{ID: 5, ProductID: 4, Quantity: 2, SaleDate: time.Date(2025, time.November, 18, 0, 0, 0, 0, time.UTC)},
}

var sampleTableStmts = []string{
	`CREATE TABLE IF NOT EXISTS products (
        id INTEGER PRIMARY KEY,
        name TEXT NOT NULL,
        price NUMERIC(10,2),
        category TEXT,
        stock INTEGER
    )`,
	`CREATE TABLE IF NOT EXISTS sales (
        id INTEGER PRIMARY KEY,
        product_id INTEGER REFERENCES products(id),
        quantity INTEGER,
        sale_date DATE
    )`,
}

type postgresSampleDataRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresSampleDataRepository(db *sql.DB, logger *logrus.Logger) domain.SampleDataRepository {
	return &postgresSampleDataRepository{
		db:  db,
		log: logger,
	}
}

// CreateSampleData creates the products and sales tables if needed and
// replaces their contents with the fixed demo rows, all in one transaction.
// Sales rows go away before product rows because of the foreign key.
func (r *postgresSampleDataRepository) CreateSampleData() (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		r.log.Errorf("Failed to begin sample data transaction: %v", err)
		return fmt.Errorf("could not start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			r.log.Error("Recovered from panic, rolling back sample data transaction")
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			r.log.Warnf("Rolling back sample data transaction due to error: %v", err)
			if rbErr := tx.Rollback(); rbErr != nil {
				r.log.Errorf("Failed to rollback sample data transaction: %v", rbErr)
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				r.log.Errorf("Failed to commit sample data transaction: %v", cErr)
				err = fmt.Errorf("failed to commit transaction: %w", cErr)
			}
		}
	}()

	for _, stmt := range sampleTableStmts {
		if _, err = tx.Exec(stmt); err != nil {
			r.log.Errorf("Failed to create sample table: %v", err)
			return fmt.Errorf("could not create sample tables: %w", err)
		}
	}

	if _, err = tx.Exec(`DELETE FROM sales`); err != nil {
		r.log.Errorf("Failed to clear sales table: %v", err)
		return fmt.Errorf("could not clear sales table: %w", err)
	}
	if _, err = tx.Exec(`DELETE FROM products`); err != nil {
		r.log.Errorf("Failed to clear products table: %v", err)
		return fmt.Errorf("could not clear products table: %w", err)
	}

	productStmt, err := tx.Prepare(`
        INSERT INTO products (id, name, price, category, stock)
        VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		r.log.Errorf("Failed to prepare sample product statement: %v", err)
		return fmt.Errorf("could not prepare product statement: %w", err)
	}
	defer productStmt.Close()

	for _, product := range sampleProducts {
		if _, err = productStmt.Exec(product.ID, product.Name, product.Price, product.Category, product.Stock); err != nil {
			r.log.Errorf("Failed to insert sample product %q: %v", product.Name, err)
			return fmt.Errorf("could not insert sample product %q: %w", product.Name, err)
		}
	}

	saleStmt, err := tx.Prepare(`
        INSERT INTO sales (id, product_id, quantity, sale_date)
        VALUES ($1, $2, $3, $4)`)
	if err != nil {
		r.log.Errorf("Failed to prepare sample sale statement: %v", err)
		return fmt.Errorf("could not prepare sale statement: %w", err)
	}
	defer saleStmt.Close()

	for _, sale := range sampleSales {
		if _, err = saleStmt.Exec(sale.ID, sale.ProductID, sale.Quantity, sale.SaleDate); err != nil {
			r.log.Errorf("Failed to insert sample sale %d: %v", sale.ID, err)
			return fmt.Errorf("could not insert sample sale %d: %w", sale.ID, err)
		}
	}

	r.log.Infof("Sample data created: %d products, %d sales", len(sampleProducts), len(sampleSales))
	return nil
}
