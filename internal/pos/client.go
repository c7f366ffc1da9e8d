package pos

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"kassa/internal/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var (
	ErrMissingToken = errors.New("pos token is required")
	ErrUnauthorized = errors.New("pos unauthorized")
)

// APIError is any non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("pos api error: %s", e.Status)
	}
	return fmt.Sprintf("pos api error: %s: %s", e.Status, e.Body)
}

// ValidationError is a server-rejected payload (400/422).
type ValidationError struct {
	APIError
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.APIError.Error()
}

// Client issues authenticated calls against the POS backend. The bearer
// token is mutable: the session layer sets it after login and clears it on
// logout.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(cfg config.Config, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &Client{
		http:   httpClient,
		logger: logger.Named("pos"),
	}
}

// SetToken installs the bearer credential used on every subsequent call.
func (c *Client) SetToken(token string) {
	c.http.SetAuthScheme("Bearer")
	c.http.SetAuthToken(strings.TrimSpace(token))
}

func (c *Client) ClearToken() {
	c.http.SetAuthToken("")
}

func (c *Client) HasToken() bool {
	return strings.TrimSpace(c.http.Token) != ""
}

// Login exchanges a PIN for a bearer token. It does not install the token;
// that is the session manager's decision.
func (c *Client) Login(ctx context.Context, pin string) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login/", loginRequest{PIN: pin}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// FetchInitial returns the full domain snapshot: all collections + settings.
func (c *Client) FetchInitial(ctx context.Context) (InitialData, error) {
	if !c.HasToken() {
		return InitialData{}, ErrMissingToken
	}
	var data InitialData
	if err := c.do(ctx, http.MethodGet, "/data/initial/", nil, &data); err != nil {
		return InitialData{}, err
	}
	return data, nil
}

// Me resolves the employee behind the current token, role included.
func (c *Client) Me(ctx context.Context) (Employee, error) {
	if !c.HasToken() {
		return Employee{}, ErrMissingToken
	}
	var me Employee
	if err := c.do(ctx, http.MethodGet, "/auth/me/", nil, &me); err != nil {
		return Employee{}, err
	}
	return me, nil
}

func (c *Client) CreateSale(ctx context.Context, sale NewSale) (Sale, error) {
	var created Sale
	if err := c.do(ctx, http.MethodPost, "/sales/", sale, &created); err != nil {
		return Sale{}, err
	}
	return created, nil
}

func (c *Client) CreateGoodsReceipt(ctx context.Context, receipt NewGoodsReceipt) (GoodsReceipt, error) {
	var created GoodsReceipt
	if err := c.do(ctx, http.MethodPost, "/goods-receipts/", receipt, &created); err != nil {
		return GoodsReceipt{}, err
	}
	return created, nil
}

func (c *Client) RecordDebtPayment(ctx context.Context, customerID string, amount float64, paymentType PaymentType) error {
	body := debtPaymentRequest{CustomerID: customerID, Amount: amount, PaymentType: paymentType}
	return c.do(ctx, http.MethodPost, "/debt-payments/", body, nil)
}

// UpdateSettings sends a partial update of the settings singleton and
// returns the merged result as the server reports it.
func (c *Client) UpdateSettings(ctx context.Context, patch map[string]any) (StoreSettings, error) {
	var updated StoreSettings
	if err := c.do(ctx, http.MethodPut, "/settings/", patch, &updated); err != nil {
		return StoreSettings{}, err
	}
	return updated, nil
}

// Create issues POST /{collection}/ and decodes the server's record into out.
func (c *Client) Create(ctx context.Context, collection string, payload, out any) error {
	return c.do(ctx, http.MethodPost, "/"+collection+"/", payload, out)
}

// Update issues PUT /{collection}/{id}/ and decodes the result into out.
func (c *Client) Update(ctx context.Context, collection, id string, payload, out any) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/%s/%s/", collection, id), payload, out)
}

// Delete issues DELETE /{collection}/{id}/.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/%s/%s/", collection, id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("pos request: %w", err)
	}
	if resp.IsError() {
		err := apiErrorFromResponse(resp)
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func apiErrorFromResponse(resp *resty.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Body:       strings.TrimSpace(resp.String()),
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Error())
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ValidationError{APIError: *apiErr}
	default:
		return apiErr
	}
}
