package delivery

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/AmrElsaadany/Jojo-Stock/internal/usecase"
)

type MockSampleDataUseCase struct {
	mock.Mock
}

func (m *MockSampleDataUseCase) CreateSampleDatabase() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSampleDataUseCase) CreateSampleInventory() error {
	args := m.Called()
	return args.Error(0)
}

func setupAdminRouter(uc usecase.SampleDataUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAdminHandler(uc, testLogger()).RegisterRoutes(router)
	return router
}

func TestCreateSampleDatabaseEndpoint(t *testing.T) {
	mockUC := new(MockSampleDataUseCase)
	mockUC.On("CreateSampleDatabase").Return(nil)
	router := setupAdminRouter(mockUC)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/admin/sample-data", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "Success", resp.Status)
	assert.Equal(t, "Sample database created successfully", resp.Message)
	mockUC.AssertExpectations(t)
}

func TestCreateSampleInventoryEndpoint(t *testing.T) {
	mockUC := new(MockSampleDataUseCase)
	mockUC.On("CreateSampleInventory").Return(nil)
	router := setupAdminRouter(mockUC)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/admin/sample-inventory", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "Success", resp.Status)
	mockUC.AssertExpectations(t)
}

func TestCreateSampleDatabaseEndpointError(t *testing.T) {
	mockUC := new(MockSampleDataUseCase)
	mockUC.On("CreateSampleDatabase").Return(errors.New("could not create sample data: connection refused"))
	router := setupAdminRouter(mockUC)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/admin/sample-data", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "Fail", resp.Status)
	assert.Contains(t, resp.Message, "Failed to create sample database")
}
