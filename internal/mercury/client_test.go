package mercury

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeMercury serves the two endpoints the client uses, paginating a fixed
// transaction list the way the real API does.
type fakeMercury struct {
	accounts     []map[string]string
	transactions []map[string]any

	txnRequests int
	lastAuth    string
	lastQuery   map[string]string
}

func (f *fakeMercury) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"accounts": f.accounts})
	})

	mux.HandleFunc("/account/", func(w http.ResponseWriter, r *http.Request) {
		f.txnRequests++
		f.lastAuth = r.Header.Get("Authorization")

		q := r.URL.Query()
		f.lastQuery = map[string]string{}
		for k := range q {
			f.lastQuery[k] = q.Get(k)
		}

		limit, _ := strconv.Atoi(q.Get("limit"))
		offset, _ := strconv.Atoi(q.Get("offset"))

		page := []map[string]any{}
		for i := offset; i < len(f.transactions) && i < offset+limit; i++ {
			page = append(page, f.transactions[i])
		}

		json.NewEncoder(w).Encode(map[string]any{
			"total":        len(f.transactions),
			"transactions": page,
		})
	})

	return mux
}

func makeTransactions(n int) []map[string]any {
	txns := make([]map[string]any, n)
	for i := range txns {
		txns[i] = map[string]any{
			"id":     fmt.Sprintf("txn_%04d", i),
			"amount": float64(i) + 0.25,
			"kind":   "externalTransfer",
			"status": "sent",
		}
	}
	return txns
}

func newTestClient(t *testing.T, fake *fakeMercury, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", zap.NewNop(), opts...)
}

func TestGetAccounts(t *testing.T) {
	fake := &fakeMercury{accounts: []map[string]string{
		{"id": "acc_1", "name": "Checking"},
		{"id": "acc_2", "name": "Savings"},
	}}
	client := newTestClient(t, fake)

	accounts, err := client.GetAccounts(context.Background())
	require.NoError(t, err)

	require.Len(t, accounts, 2)
	assert.Equal(t, "acc_1", accounts[0].ID)
	assert.Equal(t, "Checking", accounts[0].Name)
	assert.Equal(t, "Bearer test-key", fake.lastAuth)
}

func TestGetTransactions_RequiresAccountID(t *testing.T) {
	fake := &fakeMercury{}
	client := newTestClient(t, fake)

	_, err := client.GetTransactions(context.Background(), TransactionQuery{Limit: 500})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "accountId", verr.Field)
	assert.Zero(t, fake.txnRequests, "no request should be issued")
}

func TestGetTransactions_QueryParams(t *testing.T) {
	fake := &fakeMercury{transactions: makeTransactions(1)}
	client := newTestClient(t, fake)

	_, err := client.GetTransactions(context.Background(), TransactionQuery{
		AccountID: "acc_1",
		StartDate: "2025-05-01",
		EndDate:   "2025-06-01",
		Limit:     500,
		Offset:    1000,
		Order:     "desc",
	})
	require.NoError(t, err)

	assert.Equal(t, "500", fake.lastQuery["limit"])
	assert.Equal(t, "1000", fake.lastQuery["offset"])
	assert.Equal(t, "desc", fake.lastQuery["order"])
	assert.Equal(t, "2025-05-01", fake.lastQuery["start_date"])
	assert.Equal(t, "2025-06-01", fake.lastQuery["end_date"])
}

func TestGetTransactions_OmitsEmptyDates(t *testing.T) {
	fake := &fakeMercury{}
	client := newTestClient(t, fake)

	_, err := client.GetTransactions(context.Background(), TransactionQuery{
		AccountID: "acc_1",
		Limit:     500,
		Order:     "desc",
	})
	require.NoError(t, err)

	assert.NotContains(t, fake.lastQuery, "start_date")
	assert.NotContains(t, fake.lastQuery, "end_date")
}

func TestGetTransactions_RequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": "invalid token"}`)
	}))
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, "bad-key", zap.NewNop())

	_, err := client.GetTransactions(context.Background(), TransactionQuery{AccountID: "acc_1", Limit: 500})

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
	assert.Contains(t, reqErr.Body, "invalid token")
}

func TestFetchAll_RequiresAccountID(t *testing.T) {
	fake := &fakeMercury{}
	client := newTestClient(t, fake)

	_, err := client.FetchAll(context.Background(), "", "", "")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, fake.txnRequests)
}

func TestFetchAll_MultiplePages(t *testing.T) {
	fake := &fakeMercury{transactions: makeTransactions(5)}
	client := newTestClient(t, fake, WithPageSize(2))

	txns, err := client.FetchAll(context.Background(), "acc_1", "", "")
	require.NoError(t, err)

	// ceil(5/2) pages; the short third page ends the loop.
	assert.Equal(t, 3, fake.txnRequests)
	require.Len(t, txns, 5)
	for i, txn := range txns {
		assert.Equal(t, fmt.Sprintf("txn_%04d", i), txn.ID, "page order must be preserved")
	}
}

func TestFetchAll_FullPageBoundary(t *testing.T) {
	// Exactly one full page: the loop cannot tell it is done until the
	// follow-up request comes back empty.
	fake := &fakeMercury{transactions: makeTransactions(500)}
	client := newTestClient(t, fake)

	txns, err := client.FetchAll(context.Background(), "acc_1", "", "")
	require.NoError(t, err)

	assert.Equal(t, 2, fake.txnRequests)
	assert.Len(t, txns, 500)
}

func TestFetchAll_EmptyAccount(t *testing.T) {
	fake := &fakeMercury{}
	client := newTestClient(t, fake)

	txns, err := client.FetchAll(context.Background(), "acc_1", "", "")
	require.NoError(t, err)

	assert.Equal(t, 1, fake.txnRequests)
	assert.Empty(t, txns)
}

func TestFetchAll_NoDuplicates(t *testing.T) {
	fake := &fakeMercury{transactions: makeTransactions(7)}
	client := newTestClient(t, fake, WithPageSize(3))

	txns, err := client.FetchAll(context.Background(), "acc_1", "", "")
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, txn := range txns {
		assert.False(t, seen[txn.ID], "duplicate transaction %s", txn.ID)
		seen[txn.ID] = true
	}
	assert.Len(t, seen, 7)
}

func TestFetchAll_MappingFailure(t *testing.T) {
	fake := &fakeMercury{transactions: []map[string]any{
		{"id": "txn_1", "amount": 1.0, "kind": "bogusType"},
	}}
	client := newTestClient(t, fake)

	_, err := client.FetchAll(context.Background(), "acc_1", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bogusType"`)
}
