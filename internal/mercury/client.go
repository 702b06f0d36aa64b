package mercury

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mercury-tools/mercury-export/internal/model"
)

// DefaultBaseURL is the production Mercury API root.
const DefaultBaseURL = "https://api.mercury.com/api/v1"

// DefaultPageSize is the maximum page size the transactions endpoint allows.
const DefaultPageSize = 500

// Client talks to the Mercury REST API. It holds its own logger rather than
// relying on any process-global state.
type Client struct {
	baseURL  string
	http     *resty.Client
	log      *zap.Logger
	pageSize int
}

// Option configures a Client.
type Option func(*Client)

// WithPageSize overrides the pagination page size.
func WithPageSize(n int) Option {
	return func(c *Client) { c.pageSize = n }
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// NewClient creates a Client authenticating with the given bearer token.
func NewClient(baseURL, apiKey string, log *zap.Logger, opts ...Option) *Client {
	httpClient := resty.New().
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")

	c := &Client{
		baseURL:  baseURL,
		http:     httpClient,
		log:      log,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues an authenticated GET and decodes the JSON body into out.
// Non-2xx responses become a *RequestError carrying status and body.
func (c *Client) get(ctx context.Context, url string, query map[string]string, out any) error {
	requestID := uuid.NewString()

	c.log.Debug("sending api request",
		zap.String("url", url),
		zap.String("requestId", requestID),
		zap.Any("query", query))

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader("X-Request-Id", requestID).
		SetQueryParams(query).
		Get(url)
	if err != nil {
		return fmt.Errorf("failed send request: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		reqErr := &RequestError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
		c.log.Error("api request failed",
			zap.String("url", url),
			zap.String("requestId", requestID),
			zap.Int("status", resp.StatusCode()))
		return reqErr
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// GetAccounts fetches all accounts visible to the API key.
func (c *Client) GetAccounts(ctx context.Context) ([]model.Account, error) {
	c.log.Info("fetching accounts")

	var res struct {
		Accounts []model.Account `json:"accounts"`
	}
	if err := c.get(ctx, fmt.Sprintf("%s/accounts", c.baseURL), nil, &res); err != nil {
		return nil, err
	}

	c.log.Info("retrieved accounts", zap.Int("count", len(res.Accounts)))
	return res.Accounts, nil
}

// TransactionQuery selects one page of an account's transactions. StartDate
// and EndDate use the YYYY-MM-DD wire format and are omitted when empty.
type TransactionQuery struct {
	AccountID string
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
	Order     string
}

// TransactionPage is one decoded page. Total is the server-reported overall
// count; the pagination loop deliberately does not use it for termination.
type TransactionPage struct {
	Total        int
	Transactions []model.Transaction
}

// GetTransactions fetches a single page of transactions.
func (c *Client) GetTransactions(ctx context.Context, q TransactionQuery) (TransactionPage, error) {
	if q.AccountID == "" {
		c.log.Error("account id is required for fetching transactions")
		return TransactionPage{}, &ValidationError{Field: "accountId", Reason: "required"}
	}

	c.log.Info("fetching transactions",
		zap.Int("limit", q.Limit),
		zap.Int("offset", q.Offset),
		zap.String("order", q.Order))
	c.log.Debug("transaction filters",
		zap.String("accountId", q.AccountID),
		zap.String("startDate", q.StartDate),
		zap.String("endDate", q.EndDate))

	query := map[string]string{
		"limit":  fmt.Sprintf("%d", q.Limit),
		"offset": fmt.Sprintf("%d", q.Offset),
		"order":  q.Order,
	}
	if q.StartDate != "" {
		query["start_date"] = q.StartDate
	}
	if q.EndDate != "" {
		query["end_date"] = q.EndDate
	}

	var res struct {
		Total        int                 `json:"total"`
		Transactions []TransactionRecord `json:"transactions"`
	}
	url := fmt.Sprintf("%s/account/%s/transactions", c.baseURL, q.AccountID)
	if err := c.get(ctx, url, query, &res); err != nil {
		return TransactionPage{}, err
	}

	page := TransactionPage{Total: res.Total}
	for i, rec := range res.Transactions {
		txn, err := MapTransaction(rec)
		if err != nil {
			return TransactionPage{}, fmt.Errorf("record %d (offset %d): %w", i, q.Offset, err)
		}
		page.Transactions = append(page.Transactions, txn)
	}
	return page, nil
}

// FetchAll walks every page of an account's transactions and concatenates
// them in the order received. The loop stops when a page comes back shorter
// than the page size; a full final page costs one extra (empty) request.
func (c *Client) FetchAll(ctx context.Context, accountID, startDate, endDate string) ([]model.Transaction, error) {
	if accountID == "" {
		c.log.Error("account id is required for fetching transactions")
		return nil, &ValidationError{Field: "accountId", Reason: "required"}
	}

	c.log.Info("fetching all transactions", zap.String("accountId", accountID))

	var all []model.Transaction
	offset := 0
	for {
		c.log.Debug("fetching page", zap.Int("offset", offset))

		page, err := c.GetTransactions(ctx, TransactionQuery{
			AccountID: accountID,
			StartDate: startDate,
			EndDate:   endDate,
			Limit:     c.pageSize,
			Offset:    offset,
			Order:     "desc",
		})
		if err != nil {
			return nil, err
		}

		all = append(all, page.Transactions...)
		if len(page.Transactions) < c.pageSize {
			break
		}
		offset += c.pageSize
	}

	c.log.Info("retrieved all transactions", zap.Int("count", len(all)))
	return all, nil
}
