package delivery

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AmrElsaadany/Jojo-Stock/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type testEnvelope struct {
	Status  string          `json:"Status"`
	Message string          `json:"Message"`
	Data    json.RawMessage `json:"Data"`
}

func decodeEnvelope(t *testing.T, body []byte) testEnvelope {
	t.Helper()
	var envelope testEnvelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}

type MockReportUseCase struct {
	mock.Mock
}

func (m *MockReportUseCase) SalesSummary() ([]domain.SalesSummaryRow, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesSummaryRow), args.Error(1)
}

func (m *MockReportUseCase) HighValueProducts() ([]domain.HighValueProduct, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HighValueProduct), args.Error(1)
}

func (m *MockReportUseCase) ProductListing() ([]domain.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func setupReportRouter(uc *MockReportUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewReportHandler(uc, testLogger()).RegisterRoutes(router)
	return router
}

func TestSalesSummaryEndpointJSON(t *testing.T) {
	mockUC := new(MockReportUseCase)
	mockUC.On("SalesSummary").Return([]domain.SalesSummaryRow{
		{ProductID: 1, Name: "Laptop", Category: "Electronics", Price: 999.99, TotalSales: 2, TotalQuantity: 3, TotalRevenue: 2999.97},
		{ProductID: 5, Name: "Desk", Category: "Furniture", Price: 199.99, TotalSales: 0, TotalQuantity: 0, TotalRevenue: 0},
	}, nil)

	router := setupReportRouter(mockUC)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/sales-summary", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "Success", envelope.Status)
	assert.Equal(t, "Sales summary generated successfully", envelope.Message)

	var rows []domain.SalesSummaryRow
	require.NoError(t, json.Unmarshal(envelope.Data, &rows))
	require.Len(t, rows, 2)
	assert.GreaterOrEqual(t, rows[0].TotalRevenue, rows[1].TotalRevenue)
	assert.Equal(t, 0, rows[1].TotalSales)
}

func TestSalesSummaryEndpointCSV(t *testing.T) {
	mockUC := new(MockReportUseCase)
	mockUC.On("SalesSummary").Return([]domain.SalesSummaryRow{
		{ProductID: 1, Name: "Laptop", Category: "Electronics", Price: 999.99, TotalSales: 2, TotalQuantity: 3, TotalRevenue: 2999.97},
	}, nil)

	router := setupReportRouter(mockUC)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/sales-summary?format=csv", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	disposition := w.Header().Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, `attachment; filename="sales_summary_`), disposition)
	assert.True(t, strings.HasSuffix(disposition, `.csv"`), disposition)

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,name,category,price,total_sales,total_quantity_sold,total_revenue", lines[0])
	assert.Equal(t, "1,Laptop,Electronics,999.99,2,3,2999.97", lines[1])
}

func TestHighValueProductsEndpointJSON(t *testing.T) {
	mockUC := new(MockReportUseCase)
	mockUC.On("HighValueProducts").Return([]domain.HighValueProduct{
		{ID: 1, Name: "Laptop", Category: "Electronics", Price: 999.99, RoundedPrice: 999.99, Stock: 15},
		{ID: 4, Name: "Monitor", Category: "Electronics", Price: 299.99, RoundedPrice: 299.99, Stock: 20},
	}, nil)

	router := setupReportRouter(mockUC)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/high-value-products", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "Success", envelope.Status)

	var products []domain.HighValueProduct
	require.NoError(t, json.Unmarshal(envelope.Data, &products))
	require.Len(t, products, 2)
	assert.GreaterOrEqual(t, products[0].Price, products[1].Price)
}

func TestProductListingEndpointCSV(t *testing.T) {
	mockUC := new(MockReportUseCase)
	mockUC.On("ProductListing").Return([]domain.Product{
		{ID: 5, Name: "Desk", Price: 199.99, Category: "Furniture", Stock: 10},
	}, nil)

	router := setupReportRouter(mockUC)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/products?format=csv", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,name,price,category,stock", lines[0])
	assert.Equal(t, "5,Desk,199.99,Furniture,10", lines[1])
}

func TestReportEndpointDatabaseError(t *testing.T) {
	mockUC := new(MockReportUseCase)
	mockUC.On("SalesSummary").Return(nil, errors.New("could not run sales summary report: connection refused"))

	router := setupReportRouter(mockUC)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/sales-summary", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	envelope := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "Fail", envelope.Status)
	assert.Contains(t, envelope.Message, "Failed to generate sales summary")
}
