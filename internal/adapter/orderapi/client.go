package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/opticart/checkout/internal/domain/model"
)

// Client exposes the backend order endpoints consumed by the orchestrator.
type Client interface {
	CreateOrder(ctx context.Context, req model.OrderCreationRequest, idempotencyKey string) (*model.OrderCreationResult, error)
	VerifyPayment(ctx context.Context, assertion model.PaymentAssertion) (*model.VerificationResult, error)
}

// HTTPClient implements Client via the backend HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type orderUser struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

type orderItem struct {
	ProductID  string `json:"productId"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Quantity   int64  `json:"quantity"`
	AddOnName  string `json:"addOnName,omitempty"`
	AddOnPrice int64  `json:"addOnPrice,omitempty"`
}

type createOrderRequest struct {
	Total         int64       `json:"total"`
	Items         []orderItem `json:"items"`
	PaymentMethod string      `json:"paymentMethod"`
	User          orderUser   `json:"user"`
}

type createOrderResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message,omitempty"`
	InternalOrderID string `json:"internal_order_id,omitempty"`
	OrderID         string `json:"order_id,omitempty"`
	Amount          int64  `json:"amount,omitempty"`
	Currency        string `json:"currency,omitempty"`
	KeyID           string `json:"key_id,omitempty"`
}

type verifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type verifyResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewHTTPClient creates a backend order client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse order api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("order api url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// CreateOrder posts the order-creation payload. A backend-reported failure
// (success:false) is returned in the result, not as an error; errors mean the
// backend was unreachable or answered outside its contract.
func (c *HTTPClient) CreateOrder(ctx context.Context, req model.OrderCreationRequest, idempotencyKey string) (*model.OrderCreationResult, error) {
	payload := createOrderRequest{
		Total:         req.Total,
		Items:         make([]orderItem, 0, len(req.Items)),
		PaymentMethod: string(req.Method),
		User: orderUser{
			Name:    req.Customer.FullName(),
			Email:   req.Customer.Email,
			Phone:   req.Customer.Phone,
			Address: req.Customer.Address,
			City:    req.Customer.City,
			State:   req.Customer.State,
			Zip:     req.Customer.PostalCode,
		},
	}
	for _, item := range req.Items {
		out := orderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.UnitPrice,
			Quantity:  item.Quantity,
		}
		if item.AddOn != nil {
			out.AddOnName = item.AddOn.Name
			out.AddOnPrice = item.AddOn.Price
		}
		payload.Items = append(payload.Items, out)
	}

	var data createOrderResponse
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}
	if err := c.post(ctx, "/api/payment/create-order", payload, headers, &data); err != nil {
		return nil, err
	}

	return &model.OrderCreationResult{
		Success:         data.Success,
		Message:         data.Message,
		InternalOrderID: data.InternalOrderID,
		GatewayOrderID:  data.OrderID,
		Amount:          data.Amount,
		Currency:        data.Currency,
		KeyID:           data.KeyID,
	}, nil
}

// VerifyPayment posts the gateway assertion for server-side signature
// verification.
func (c *HTTPClient) VerifyPayment(ctx context.Context, assertion model.PaymentAssertion) (*model.VerificationResult, error) {
	payload := verifyRequest{
		RazorpayOrderID:   assertion.OrderID,
		RazorpayPaymentID: assertion.PaymentID,
		RazorpaySignature: assertion.Signature,
	}

	var data verifyResponse
	if err := c.post(ctx, "/api/payment/verify", payload, nil, &data); err != nil {
		return nil, err
	}

	return &model.VerificationResult{
		Success: data.Success,
		OrderID: data.OrderID,
		Message: data.Message,
	}, nil
}

func (c *HTTPClient) post(ctx context.Context, endpoint string, payload any, headers map[string]string, out any) error {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	// The backend reports business failures with success:false on 200 and on
	// 4xx alike, so any body that parses is a valid answer.
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Error("order api request failed",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)),
		)
		return fmt.Errorf("order api error: %s", resp.Status)
	}
	return nil
}
