package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/MaxTecnology/rede-trade-back/internal/apperrors"
	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	portssvc "github.com/MaxTecnology/rede-trade-back/internal/core/ports/services"
	"github.com/MaxTecnology/rede-trade-back/internal/dto"
	"github.com/MaxTecnology/rede-trade-back/internal/handlers"
	"github.com/MaxTecnology/rede-trade-back/internal/middleware"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByCode(ctx context.Context, code string) (*domain.Transaction, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(*string), args.Error(2)
}

func (m *MockTransactionService) ListReversalQueue(ctx context.Context, status domain.TransactionStatus, headquartersID *string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, status, headquartersID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(*string), args.Error(2)
}

func (m *MockTransactionService) Execute(ctx context.Context, req dto.ExecuteTransactionRequest, actorUserID string) (*dto.TransactionResult, error) {
	args := m.Called(ctx, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResult), args.Error(1)
}

func (m *MockTransactionService) RequestReversal(ctx context.Context, transactionID string, actorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ForwardReversalToHeadquarters(ctx context.Context, transactionID string, actorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ExecuteReversal(ctx context.Context, transactionID string, actorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransactionService
	jwtSecret   string
}

func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "rede-trade-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockTransactionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterTransactionRoutes(v1, suite.mockService)
}

func (suite *TransactionHandlerTestSuite) doJSON(method, url string, body any, userID string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) TestExecuteTransaction_Success() {
	actorUserID := uuid.NewString()
	reqBody := dto.ExecuteTransactionRequest{
		BuyerAccountID:   uuid.NewString(),
		SellerAccountID:  uuid.NewString(),
		Amount:           decimal.NewFromInt(500),
		InstallmentCount: 2,
	}
	result := &dto.TransactionResult{
		Transaction: dto.TransactionResponse{
			TransactionID:    uuid.NewString(),
			Code:             "TRD45678",
			BuyerAccountID:   reqBody.BuyerAccountID,
			SellerAccountID:  reqBody.SellerAccountID,
			Amount:           reqBody.Amount,
			InstallmentCount: 2,
			Status:           domain.TxCompleted,
		},
		NotificationsSent: true,
	}

	suite.mockService.On("Execute",
		mock.Anything,
		mock.MatchedBy(func(r dto.ExecuteTransactionRequest) bool {
			return r.BuyerAccountID == reqBody.BuyerAccountID && r.Amount.Equal(reqBody.Amount)
		}),
		actorUserID,
	).Return(result, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", reqBody, actorUserID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(result.Transaction.Code, resp.Transaction.Code)
	suite.True(resp.NotificationsSent)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestExecuteTransaction_InsufficientFundsIsHTTP200() {
	actorUserID := uuid.NewString()
	reqBody := dto.ExecuteTransactionRequest{
		BuyerAccountID:   uuid.NewString(),
		SellerAccountID:  uuid.NewString(),
		Amount:           decimal.NewFromInt(10000),
		InstallmentCount: 1,
	}

	suite.mockService.On("Execute", mock.Anything, mock.Anything, actorUserID).
		Return(nil, fmt.Errorf("account has too little: %w", apperrors.ErrInsufficientFunds)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", reqBody, actorUserID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.InsufficientFundsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("INSUFFICIENT_FUNDS", resp.Status)
}

func (suite *TransactionHandlerTestSuite) TestExecuteTransaction_CapExceededIs422() {
	actorUserID := uuid.NewString()
	reqBody := dto.ExecuteTransactionRequest{
		BuyerAccountID:   uuid.NewString(),
		SellerAccountID:  uuid.NewString(),
		Amount:           decimal.NewFromInt(100),
		InstallmentCount: 1,
	}

	suite.mockService.On("Execute", mock.Anything, mock.Anything, actorUserID).
		Return(nil, fmt.Errorf("company cap: %w", apperrors.ErrCapExceeded)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", reqBody, actorUserID)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestExecuteTransaction_MissingInstallmentsIs400() {
	actorUserID := uuid.NewString()
	reqBody := map[string]any{
		"buyerAccountID":  uuid.NewString(),
		"sellerAccountID": uuid.NewString(),
		"amount":          "100",
	}

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions", reqBody, actorUserID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "Execute")
}

func (suite *TransactionHandlerTestSuite) TestExecuteReversal_AlreadyReversedIs409() {
	actorUserID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockService.On("ExecuteReversal", mock.Anything, transactionID, actorUserID).
		Return(nil, fmt.Errorf("already reversed: %w", apperrors.ErrInvalidStateTransition)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions/"+transactionID+"/reverse", nil, actorUserID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestGetTransactionByCode() {
	actorUserID := uuid.NewString()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Code:          "TRDQ2WX9",
		Amount:        decimal.NewFromInt(250),
		Status:        domain.TxCompleted,
	}

	suite.mockService.On("GetTransactionByCode", mock.Anything, txn.Code).Return(txn, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions?code="+txn.Code, nil, actorUserID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(txn.TransactionID, resp.TransactionID)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFoundIs404() {
	actorUserID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockService.On("GetTransactionByID", mock.Anything, transactionID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions/"+transactionID, nil, actorUserID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestMissingTokenIs401() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "GetTransactionByID")
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
