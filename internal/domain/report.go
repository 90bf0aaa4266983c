package domain

// SalesSummaryRow is one row of the sales summary report: a product joined
// against its sales with aggregated totals. Products that never sold keep
// zero totals (the underlying query is an outer join).
type SalesSummaryRow struct {
	ProductID     int     `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	TotalSales    int     `json:"total_sales"`
	TotalQuantity int     `json:"total_quantity_sold"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// HighValueProduct is one row of the above-average-price report. RoundedPrice
// carries the report's redundant two-decimal price column.
type HighValueProduct struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	RoundedPrice float64 `json:"rounded_price"`
	Stock        int     `json:"stock"`
}

type ReportRepository interface {
	SalesSummary() ([]SalesSummaryRow, error)
	HighValueProducts() ([]HighValueProduct, error)
	ListProducts() ([]Product, error)
}

// SampleDataRepository bootstraps the demo products/sales tables so that the
// reports have something to read. It is not a migration layer.
type SampleDataRepository interface {
	CreateSampleData() error
}
