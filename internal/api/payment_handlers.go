package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"uybor/internal/core/domain"
)

// Click.uz webhook error codes.
const (
	clickOK               = 0
	clickSystemError      = -1
	clickInvalidAmount    = -2
	clickAlreadyProcessed = -4
	clickNotFound         = -5
)

// Payme.uz JSON-RPC error codes.
const (
	paymeInvalidAmount    = -31001
	paymeTxNotFound       = -31003
	paymeCannotPerform    = -31008
	paymeOrderNotFound    = -31050
	paymeBadRequest       = -32400
	paymeInsufficientAuth = -32504
	paymeMethodNotFound   = -32601
)

type createPaymentRequest struct {
	TelegramID int64  `json:"telegram_id"`
	Amount     int64  `json:"amount"`
	Method     string `json:"method"`
	Service    string `json:"service"`
	ListingID  *int64 `json:"listing_id"`
}

// createPayment serves POST /api/payments: records a pending payment and
// returns the gateway checkout URL.
func (s *Server) createPayment(c echo.Context) error {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
	}
	if req.TelegramID == 0 || req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "telegram_id and a positive amount are required"})
	}
	method := domain.PaymentMethod(req.Method)
	if method != domain.MethodClick && method != domain.MethodPayme {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "method must be click or payme"})
	}
	service := domain.ServiceType(req.Service)
	if service != domain.ServicePremium && service != domain.ServiceTopUp {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "service must be premium or top_up"})
	}
	if service == domain.ServicePremium && req.ListingID == nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "listing_id is required for premium"})
	}

	ctx := c.Request().Context()
	user, err := s.users.GetByTelegramID(ctx, req.TelegramID)
	if err != nil {
		return s.httpError(c, err)
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
	}

	payment := &domain.Payment{
		UserID:    user.ID,
		Amount:    req.Amount,
		Method:    method,
		Service:   service,
		ListingID: req.ListingID,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return s.httpError(c, err)
	}

	var paymentURL string
	if method == domain.MethodClick {
		paymentURL = fmt.Sprintf("https://my.click.uz/services/pay?merchant_trans_id=%s&amount=%d", payment.ID, payment.Amount)
	} else {
		paymentURL = fmt.Sprintf("https://checkout.paycom.uz/%s", payment.ID)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"payment_id":  payment.ID,
		"payment_url": paymentURL,
		"status":      payment.Status,
	})
}

// paymentStatus serves GET /api/payments/:id.
func (s *Server) paymentStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payment id"})
	}

	payment, err := s.payments.GetByID(c.Request().Context(), id)
	if err != nil {
		return s.httpError(c, err)
	}
	if payment == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "payment not found"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"payment_id": payment.ID,
		"status":     payment.Status,
		"amount":     payment.Amount,
		"created_at": payment.CreatedAt,
	})
}

// --- Click.uz ---

type clickRequest struct {
	ClickTransID    int64  `json:"click_trans_id"`
	MerchantTransID string `json:"merchant_trans_id"`
	Amount          int64  `json:"amount"`
	Error           int    `json:"error"`
}

func clickResponse(c echo.Context, req *clickRequest, code int, note string) error {
	return c.JSON(http.StatusOK, map[string]any{
		"click_trans_id":    req.ClickTransID,
		"merchant_trans_id": req.MerchantTransID,
		"error":             code,
		"error_note":        note,
	})
}

// clickPrepare validates the payment before the gateway charges.
func (s *Server) clickPrepare(c echo.Context) error {
	if s.cfg.Payments.ClickSecretKey == "" {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "click is not configured"})
	}
	var req clickRequest
	if err := c.Bind(&req); err != nil {
		return clickResponse(c, &req, clickSystemError, "System error")
	}

	payment, err := s.lookupClickPayment(c, req.MerchantTransID)
	if err != nil {
		return clickResponse(c, &req, clickSystemError, "System error")
	}
	if payment == nil {
		return clickResponse(c, &req, clickNotFound, "Payment not found")
	}
	if payment.Status != domain.PaymentPending {
		return clickResponse(c, &req, clickAlreadyProcessed, "Payment already processed")
	}
	if payment.Amount != req.Amount {
		return clickResponse(c, &req, clickInvalidAmount, "Invalid amount")
	}
	return clickResponse(c, &req, clickOK, "Success")
}

// clickComplete settles the payment. error 0 completes it and applies the
// side effect; anything else closes it as failed.
func (s *Server) clickComplete(c echo.Context) error {
	if s.cfg.Payments.ClickSecretKey == "" {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "click is not configured"})
	}
	var req clickRequest
	if err := c.Bind(&req); err != nil {
		return clickResponse(c, &req, clickSystemError, "System error")
	}

	paymentID, err := uuid.Parse(req.MerchantTransID)
	if err != nil {
		return clickResponse(c, &req, clickNotFound, "Payment not found")
	}

	ctx := c.Request().Context()
	if req.Error != 0 {
		if err := s.payments.Close(ctx, paymentID, domain.PaymentFailed); err != nil && !errors.Is(err, domain.ErrAlreadyProcessed) {
			if errors.Is(err, domain.ErrNotFound) {
				return clickResponse(c, &req, clickNotFound, "Payment not found")
			}
			return clickResponse(c, &req, clickSystemError, "System error")
		}
		return clickResponse(c, &req, clickOK, "Success")
	}

	transactionID := fmt.Sprintf("%d", req.ClickTransID)
	switch err := s.payments.Complete(ctx, paymentID, transactionID, time.Now()); {
	case errors.Is(err, domain.ErrAlreadyProcessed):
		return clickResponse(c, &req, clickAlreadyProcessed, "Payment already processed")
	case errors.Is(err, domain.ErrNotFound):
		return clickResponse(c, &req, clickNotFound, "Payment not found")
	case err != nil:
		s.log.Error().Err(err).Str("payment_id", paymentID.String()).Msg("Click complete failed")
		return clickResponse(c, &req, clickSystemError, "System error")
	}

	s.log.Info().Str("payment_id", paymentID.String()).Str("transaction_id", transactionID).Msg("Click payment completed")
	return clickResponse(c, &req, clickOK, "Success")
}

func (s *Server) lookupClickPayment(c echo.Context, merchantTransID string) (*domain.Payment, error) {
	id, err := uuid.Parse(merchantTransID)
	if err != nil {
		return nil, nil
	}
	return s.payments.GetByID(c.Request().Context(), id)
}

// --- Payme.uz ---

type paymeRequest struct {
	ID     any            `json:"id"`
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
}

func paymeError(c echo.Context, requestID any, code int, message string) error {
	return c.JSON(http.StatusOK, map[string]any{
		"id": requestID,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}

func paymeResult(c echo.Context, requestID any, result map[string]any) error {
	return c.JSON(http.StatusOK, map[string]any{
		"id":     requestID,
		"result": result,
	})
}

// paymeWebhook is the Payme JSON-RPC endpoint. Cryptographic verification
// is out of scope; only Basic-auth presence is checked.
func (s *Server) paymeWebhook(c echo.Context) error {
	if s.cfg.Payments.PaymeMerchantKey == "" {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "payme is not configured"})
	}
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Basic ") {
		return paymeError(c, nil, paymeInsufficientAuth, "Insufficient privileges")
	}

	var req paymeRequest
	if err := c.Bind(&req); err != nil {
		return paymeError(c, nil, paymeBadRequest, "Bad request")
	}

	switch req.Method {
	case "CheckPerformTransaction":
		return s.paymeCheckPerform(c, &req)
	case "CreateTransaction":
		return s.paymeCreate(c, &req)
	case "PerformTransaction":
		return s.paymePerform(c, &req)
	case "CancelTransaction":
		return s.paymeCancel(c, &req)
	case "CheckTransaction":
		return s.paymeCheck(c, &req)
	default:
		return paymeError(c, req.ID, paymeMethodNotFound, "Method not found")
	}
}

// paymeOrderPayment resolves params.account.order_id to a payment.
func (s *Server) paymeOrderPayment(c echo.Context, req *paymeRequest) (*domain.Payment, error) {
	account, _ := req.Params["account"].(map[string]any)
	orderID, _ := account["order_id"].(string)
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, nil
	}
	return s.payments.GetByID(c.Request().Context(), id)
}

// paymeAmount converts the tiyin amount in params to so'm.
func paymeAmount(req *paymeRequest) int64 {
	amount, _ := req.Params["amount"].(float64)
	return int64(amount) / 100
}

func paymeTransactionID(req *paymeRequest) string {
	id, _ := req.Params["id"].(string)
	return id
}

func (s *Server) paymeCheckPerform(c echo.Context, req *paymeRequest) error {
	payment, err := s.paymeOrderPayment(c, req)
	if err != nil {
		return paymeError(c, req.ID, paymeBadRequest, "Bad request")
	}
	if payment == nil {
		return paymeError(c, req.ID, paymeOrderNotFound, "Payment not found")
	}
	if payment.Status != domain.PaymentPending {
		return paymeError(c, req.ID, paymeCannotPerform, "Payment already processed")
	}
	if payment.Amount != paymeAmount(req) {
		return paymeError(c, req.ID, paymeInvalidAmount, "Invalid amount")
	}
	return paymeResult(c, req.ID, map[string]any{"allow": true})
}

func (s *Server) paymeCreate(c echo.Context, req *paymeRequest) error {
	payment, err := s.paymeOrderPayment(c, req)
	if err != nil {
		return paymeError(c, req.ID, paymeBadRequest, "Bad request")
	}
	if payment == nil {
		return paymeError(c, req.ID, paymeOrderNotFound, "Payment not found")
	}
	txID := paymeTransactionID(req)
	if txID == "" {
		return paymeError(c, req.ID, paymeBadRequest, "Bad request")
	}

	// Re-sent creates for the same transaction are acknowledged idempotently.
	s.paymeMu.Lock()
	s.paymeTxs[txID] = payment.ID
	s.paymeMu.Unlock()

	return paymeResult(c, req.ID, map[string]any{
		"create_time": time.Now().UnixMilli(),
		"transaction": payment.ID.String(),
		"state":       1,
	})
}

func (s *Server) paymePerform(c echo.Context, req *paymeRequest) error {
	txID := paymeTransactionID(req)
	s.paymeMu.Lock()
	paymentID, ok := s.paymeTxs[txID]
	s.paymeMu.Unlock()
	if !ok {
		return paymeError(c, req.ID, paymeTxNotFound, "Transaction not found")
	}

	err := s.payments.Complete(c.Request().Context(), paymentID, txID, time.Now())
	switch {
	case errors.Is(err, domain.ErrAlreadyProcessed):
		// Perform is idempotent from the gateway's point of view.
	case errors.Is(err, domain.ErrNotFound):
		return paymeError(c, req.ID, paymeTxNotFound, "Transaction not found")
	case err != nil:
		s.log.Error().Err(err).Str("payment_id", paymentID.String()).Msg("Payme perform failed")
		return paymeError(c, req.ID, paymeBadRequest, "Bad request")
	default:
		s.log.Info().Str("payment_id", paymentID.String()).Str("transaction_id", txID).Msg("Payme payment completed")
	}

	return paymeResult(c, req.ID, map[string]any{
		"transaction":  paymentID.String(),
		"perform_time": time.Now().UnixMilli(),
		"state":        2,
	})
}

func (s *Server) paymeCancel(c echo.Context, req *paymeRequest) error {
	txID := paymeTransactionID(req)
	s.paymeMu.Lock()
	paymentID, ok := s.paymeTxs[txID]
	s.paymeMu.Unlock()
	if !ok {
		return paymeError(c, req.ID, paymeTxNotFound, "Transaction not found")
	}

	if err := s.payments.Close(c.Request().Context(), paymentID, domain.PaymentCancelled); err != nil &&
		!errors.Is(err, domain.ErrAlreadyProcessed) {
		if errors.Is(err, domain.ErrNotFound) {
			return paymeError(c, req.ID, paymeTxNotFound, "Transaction not found")
		}
		return paymeError(c, req.ID, paymeBadRequest, "Bad request")
	}

	return paymeResult(c, req.ID, map[string]any{
		"transaction": paymentID.String(),
		"cancel_time": time.Now().UnixMilli(),
		"state":       -1,
	})
}

func (s *Server) paymeCheck(c echo.Context, req *paymeRequest) error {
	txID := paymeTransactionID(req)
	s.paymeMu.Lock()
	paymentID, ok := s.paymeTxs[txID]
	s.paymeMu.Unlock()
	if !ok {
		return paymeError(c, req.ID, paymeTxNotFound, "Transaction not found")
	}

	payment, err := s.payments.GetByID(c.Request().Context(), paymentID)
	if err != nil {
		return paymeError(c, req.ID, paymeBadRequest, "Bad request")
	}
	if payment == nil {
		return paymeError(c, req.ID, paymeTxNotFound, "Transaction not found")
	}

	state := 1
	switch payment.Status {
	case domain.PaymentCompleted:
		state = 2
	case domain.PaymentCancelled, domain.PaymentFailed:
		state = -1
	}
	return paymeResult(c, req.ID, map[string]any{
		"transaction": payment.ID.String(),
		"state":       state,
	})
}
