package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/retailpulse/backend/internal/api/handlers"
	"github.com/retailpulse/backend/internal/application/services"
	"github.com/retailpulse/backend/internal/domain/entities"
	"github.com/retailpulse/backend/internal/query"
	apperrors "github.com/retailpulse/backend/pkg/errors"
)

type MockSalesBrowser struct {
	mock.Mock
}

func (m *MockSalesBrowser) Search(ctx context.Context, f query.Filter) (*services.SearchResult, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SearchResult), args.Error(1)
}

func (m *MockSalesBrowser) FacetOptions(ctx context.Context) (*entities.FacetOptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FacetOptions), args.Error(1)
}

func (m *MockSalesBrowser) Summary(ctx context.Context) (*entities.SalesSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SalesSummary), args.Error(1)
}

func TestGetSales_PassesNormalizedFilterToService(t *testing.T) {
	browser := new(MockSalesBrowser)
	handler := handlers.NewSalesHandler(browser)

	result := &services.SearchResult{
		Sales: []*entities.Sale{{TransactionID: "TXN-1", CustomerName: "Adaeze Obi"}},
		Pagination: query.Pagination{
			CurrentPage: 2, TotalPages: 5, TotalRecords: 120,
			RecordsPerPage: 25, HasNextPage: true, HasPreviousPage: true,
		},
	}

	browser.On("Search", mock.Anything, mock.MatchedBy(func(f query.Filter) bool {
		return f.SearchTerm == "Adaeze" &&
			len(f.Gender) == 1 && f.Gender[0] == "Female" &&
			f.SortBy == query.FieldTotalAmount &&
			f.SortOrder == query.SortAsc &&
			f.Page == 2 &&
			f.Limit == 25
	})).Return(result, nil)

	req := httptest.NewRequest("GET", "/api/sales?searchTerm=Adaeze&gender=Female&sortBy=totalAmount&sortOrder=asc&page=2&limit=25", nil)
	w := httptest.NewRecorder()

	handler.GetSales(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response struct {
		Sales      []map[string]interface{} `json:"sales"`
		Pagination query.Pagination         `json:"pagination"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response.Sales, 1)
	assert.Equal(t, "TXN-1", response.Sales[0]["transactionId"])
	assert.Equal(t, result.Pagination, response.Pagination)

	browser.AssertExpectations(t)
}

func TestGetSales_EmptyPageStillReturnsEnvelope(t *testing.T) {
	browser := new(MockSalesBrowser)
	handler := handlers.NewSalesHandler(browser)

	browser.On("Search", mock.Anything, mock.Anything).Return(&services.SearchResult{
		Sales: []*entities.Sale{},
		Pagination: query.Pagination{
			CurrentPage: 1, TotalPages: 0, TotalRecords: 0, RecordsPerPage: 10,
		},
	}, nil)

	req := httptest.NewRequest("GET", "/api/sales", nil)
	w := httptest.NewRecorder()

	handler.GetSales(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	// An empty page serializes as [], not null.
	assert.JSONEq(t, "[]", string(response["sales"]))
}

func TestGetSales_ValidationErrorIs400(t *testing.T) {
	browser := new(MockSalesBrowser)
	handler := handlers.NewSalesHandler(browser)

	browser.On("Search", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationError("invalid sort field"))

	req := httptest.NewRequest("GET", "/api/sales", nil)
	w := httptest.NewRecorder()

	handler.GetSales(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "invalid sort field", body["error"])
}

func TestGetSales_StoreFailureIsOpaque500(t *testing.T) {
	browser := new(MockSalesBrowser)
	handler := handlers.NewSalesHandler(browser)

	browser.On("Search", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused: mongodb://localhost:27017"))

	req := httptest.NewRequest("GET", "/api/sales", nil)
	w := httptest.NewRecorder()

	handler.GetSales(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	// Backend details never leak to the client.
	assert.Equal(t, "failed to fetch sales", body["error"])
	assert.NotContains(t, body["error"], "mongodb")
}

func TestGetFilterOptions(t *testing.T) {
	browser := new(MockSalesBrowser)
	handler := handlers.NewSalesHandler(browser)

	browser.On("FacetOptions", mock.Anything).Return(&entities.FacetOptions{
		CustomerRegion:  []string{"East", "North"},
		Gender:          []string{"Female", "Male"},
		ProductCategory: []string{"Electronics"},
		PaymentMethod:   []string{"Card", "Cash"},
		Tags:            []string{"new", "vip"},
	}, nil)

	req := httptest.NewRequest("GET", "/api/sales/filter-options", nil)
	w := httptest.NewRecorder()

	handler.GetFilterOptions(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var options entities.FacetOptions
	require.NoError(t, json.NewDecoder(w.Body).Decode(&options))
	assert.Equal(t, []string{"East", "North"}, options.CustomerRegion)
	assert.Equal(t, []string{"new", "vip"}, options.Tags)
}

func TestGetFilterOptions_Failure(t *testing.T) {
	browser := new(MockSalesBrowser)
	handler := handlers.NewSalesHandler(browser)

	browser.On("FacetOptions", mock.Anything).Return(nil, errors.New("distinct failed"))

	req := httptest.NewRequest("GET", "/api/sales/filter-options", nil)
	w := httptest.NewRecorder()

	handler.GetFilterOptions(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetSummary(t *testing.T) {
	browser := new(MockSalesBrowser)
	handler := handlers.NewSalesHandler(browser)

	browser.On("Summary", mock.Anything).Return(&entities.SalesSummary{
		TotalUnits:   4200,
		TotalAmount:  1250000.50,
		TotalRecords: 1500,
	}, nil)

	req := httptest.NewRequest("GET", "/api/sales/summary", nil)
	w := httptest.NewRecorder()

	handler.GetSummary(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var summary entities.SalesSummary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))
	assert.Equal(t, int64(4200), summary.TotalUnits)
	assert.Equal(t, 1250000.50, summary.TotalAmount)
	assert.Equal(t, int64(1500), summary.TotalRecords)
}
