package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/AmrElsaadany/Jojo-Stock/config"
	"github.com/AmrElsaadany/Jojo-Stock/internal/delivery"
	"github.com/AmrElsaadany/Jojo-Stock/internal/repository"
	"github.com/AmrElsaadany/Jojo-Stock/internal/usecase"
	"github.com/AmrElsaadany/Jojo-Stock/pkg/db"
)

// HTML content for the test page
const htmlTestPageContent = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Jojo-Stock API Test Page</title>
    <style>
        body { font-family: Helvetica, Arial, sans-serif; line-height: 1.6; padding: 20px; background-color: #f9f9f9; color: #333; }
        h1, h2 { border-bottom: 1px solid #ccc; padding-bottom: 5px; }
        ul { list-style: none; padding-left: 0; }
        li { margin-bottom: 15px; background-color: #fff; padding: 10px; border: 1px solid #eee; border-radius: 4px; }
        code { background-color: #e8e8e8; padding: 3px 6px; border-radius: 3px; font-family: Consolas, Monaco, monospace; }
        .method { font-weight: bold; display: inline-block; width: 60px; }
        .method-post { color: #49cc90; }
        .method-get { color: #61affe; }
        .method-put { color: #fca130; }
        a { color: #007bff; text-decoration: none; }
        a:hover { text-decoration: underline; }
        p > code { font-size: 0.9em; }
    </style>
</head>
<body>
    <h1>Jojo-Stock API Endpoints</h1>
    <p>Base URL: <code>http://localhost:8081</code></p>

    <h2>Reports API</h2>
    <ul>
        <li><span class="method method-get">GET</span> <code><a href="/reports/sales-summary">/reports/sales-summary</a></code> - Per-product sales count, quantity sold and revenue, ordered by revenue. Add <code>?format=csv</code> to download (e.g., <a href="/reports/sales-summary?format=csv">/reports/sales-summary?format=csv</a>).</li>
        <li><span class="method method-get">GET</span> <code><a href="/reports/high-value-products">/reports/high-value-products</a></code> - Products priced above the average price, most expensive first.</li>
        <li><span class="method method-get">GET</span> <code><a href="/reports/products">/reports/products</a></code> - Alphabetical product listing.</li>
    </ul>

    <h2>SQL Scripts API</h2>
    <ul>
        <li><span class="method method-get">GET</span> <code><a href="/scripts">/scripts</a></code> - List the .sql scripts available in the scripts directory.</li>
        <li><span class="method method-get">GET</span> <code>/scripts/{name}</code> - Show a script's SQL (e.g., <a href="/scripts/sales_summary.sql">/scripts/sales_summary.sql</a>).</li>
        <li><span class="method method-post">POST</span> <code>/scripts/{name}/run</code> - Execute a script and return its result set. Supports <code>?format=csv</code>.</li>
        <li><span class="method method-post">POST</span> <code>/query</code> - Execute an ad-hoc read-only query. Requires JSON body: <code>{"sql": "SELECT ..."}</code></li>
        <li><span class="method method-get">GET</span> <code><a href="/scripts/stats">/scripts/stats</a></code> - Latency percentiles per executed script.</li>
    </ul>

    <h2>Stocktake API</h2>
    <ul>
        <li><span class="method method-post">POST</span> <code>/stocktake/scan</code> - Scan a barcode, incrementing its counted quantity. Requires JSON body: <code>{"barcode": "string"}</code></li>
        <li><span class="method method-put">PUT</span> <code>/stocktake/items/{barcode}</code> - Set the counted quantity for a barcode. Requires JSON body: <code>{"counted": int}</code></li>
        <li><span class="method method-get">GET</span> <code><a href="/stocktake/session">/stocktake/session</a></code> - Current session log and totals.</li>
        <li><span class="method method-post">POST</span> <code>/stocktake/session/reset</code> - Start a fresh counting session.</li>
        <li><span class="method method-get">GET</span> <code><a href="/stocktake/session/export">/stocktake/session/export</a></code> - Download the session log as CSV.</li>
        <li><span class="method method-get">GET</span> <code><a href="/stocktake/overview">/stocktake/overview</a></code> - Counting progress and inventory items. Supports <code>?search=</code> by name or barcode.</li>
    </ul>

    <h2>Admin &amp; Ops</h2>
    <ul>
        <li><span class="method method-post">POST</span> <code>/admin/sample-data</code> - Create and seed the sample products and sales tables.</li>
        <li><span class="method method-post">POST</span> <code>/admin/sample-inventory</code> - Write a sample Arabic inventory CSV.</li>
        <li><span class="method method-get">GET</span> <code><a href="/health">/health</a></code> - Dependency health and uptime.</li>
        <li><span class="method method-get">GET</span> <code><a href="/metrics">/metrics</a></code> - Prometheus metrics.</li>
    </ul>

</body>
</html>
`

func serveTestPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(htmlTestPageContent))
}

func main() {
	//  Configuration and Logging Setup
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", cfg.LogLevel, logLevel.String())
	}
	logger.SetLevel(logLevel)

	logger.Info("Starting Jojo-Stock Service...")

	// --- Database Connection ---
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("FATAL: Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connection established.")

	// --- Dependency Injection ---
	// Repository Layer
	reportRepo := repository.NewPostgresReportRepository(database, logger)
	sampleRepo := repository.NewPostgresSampleDataRepository(database, logger)
	queryRunner := repository.NewPostgresQueryRunner(database, logger)
	scriptStore := repository.NewFSScriptStore(cfg.ScriptsDir, logger)
	inventoryRepo := repository.NewCSVInventoryRepository(cfg.InventoryFile, logger)
	logger.Info("Repositories initialized.")

	// Usecase Layer
	reportUseCase := usecase.NewReportUseCase(reportRepo, logger)
	scriptUseCase := usecase.NewScriptUseCase(scriptStore, queryRunner, cfg.QueryTimeout, cfg.QueryMaxRate, logger)
	stocktakeUseCase := usecase.NewStocktakeUseCase(inventoryRepo, logger)
	sampleUseCase := usecase.NewSampleDataUseCase(sampleRepo, inventoryRepo, logger)
	logger.Info("Use cases initialized.")

	reportHandler := delivery.NewReportHandler(reportUseCase, logger)
	scriptHandler := delivery.NewScriptHandler(scriptUseCase, logger)
	stocktakeHandler := delivery.NewStocktakeHandler(stocktakeUseCase, logger)
	adminHandler := delivery.NewAdminHandler(sampleUseCase, logger)
	healthHandler := delivery.NewHealthHandler(database, cfg.ScriptsDir, cfg.InventoryFile)
	logger.Info("Handlers initialized.")

	router := gin.Default()

	router.Use(gin.Recovery())
	router.Use(delivery.Metrics())

	router.Use(func(c *gin.Context) {
		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Request received")
		c.Next()
		logger.WithFields(logrus.Fields{
			"status": c.Writer.Status(),
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Info("Request completed")
	})

	//Route Registration

	router.GET("/", serveTestPage)
	logger.Info("Registered HTML test page route at /")

	reportHandler.RegisterRoutes(router)
	scriptHandler.RegisterRoutes(router)
	stocktakeHandler.RegisterRoutes(router)
	adminHandler.RegisterRoutes(router)
	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	logger.Info("API Routes registered.")

	//  Start Server
	port := cfg.HTTPPort
	logger.Infof("Starting server on port %s", port)
	if err := router.Run(port); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
