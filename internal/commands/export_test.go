package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercury-tools/mercury-export/internal/config"
)

// newFakeAPI serves one account with n transactions.
func newFakeAPI(t *testing.T, n int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"accounts": []map[string]string{{"id": "acc_1", "name": "Checking"}},
		})
	})
	mux.HandleFunc("/account/acc_1/transactions", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		page := []map[string]any{}
		for i := offset; i < n && i < offset+limit; i++ {
			page = append(page, map[string]any{
				"id":     fmt.Sprintf("txn_%03d", i),
				"amount": 10.5,
				"kind":   "debitCardTransaction",
				"status": "sent",
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"total": n, "transactions": page})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// writeTestConfig points the client at the fake server and the log at a
// temp file.
func writeTestConfig(t *testing.T, baseURL string) string {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.API.BaseURL = baseURL
	cfg.Log.File = filepath.Join(dir, "mercury_api.log")

	path := filepath.Join(dir, "mercury.yaml")
	require.NoError(t, config.Save(path, cfg))
	return path
}

func TestExportCommand_NonInteractive(t *testing.T) {
	srv := newFakeAPI(t, 3)
	cfgPath := writeTestConfig(t, srv.URL)
	outPath := filepath.Join(t.TempDir(), "out.csv")
	t.Setenv("MERCURY_API_KEY", "test-key")

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{"export",
		"--config", cfgPath,
		"--account", "acc_1",
		"--start", "2025-05-01",
		"--end", "2025-06-01",
		"--output", outPath,
		"--no-input",
	})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Found 3 transactions")
	assert.Contains(t, out.String(), "Total amount: $31.50")
	assert.Contains(t, out.String(), "  - sent: 3 (100.0%)")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "txn_000")
	assert.Contains(t, string(data), "debitCardTransaction")
}

func TestExportCommand_InteractiveSession(t *testing.T) {
	srv := newFakeAPI(t, 2)
	cfgPath := writeTestConfig(t, srv.URL)
	outPath := filepath.Join(t.TempDir(), "session.csv")
	t.Setenv("MERCURY_API_KEY", "test-key")

	// Account 1, default dates, save, explicit filename.
	input := "1\n\n\ny\n" + outPath + "\n"

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs([]string{"export", "--config", cfgPath})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "1. Checking (ID: acc_1)")
	assert.Contains(t, out.String(), "Selected account: Checking")
	assert.Contains(t, out.String(), "Found 2 transactions")
	assert.Contains(t, out.String(), "Saved 2 transactions to "+outPath)

	_, err := os.Stat(outPath)
	require.NoError(t, err)
}

func TestExportCommand_EmptyAccount(t *testing.T) {
	srv := newFakeAPI(t, 0)
	cfgPath := writeTestConfig(t, srv.URL)
	t.Setenv("MERCURY_API_KEY", "test-key")

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{"export",
		"--config", cfgPath,
		"--account", "acc_1",
		"--no-input",
	})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "No transactions found.")
}

func TestExportCommand_MissingAccount(t *testing.T) {
	srv := newFakeAPI(t, 0)
	cfgPath := writeTestConfig(t, srv.URL)
	t.Setenv("MERCURY_API_KEY", "test-key")

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{"export", "--config", cfgPath, "--no-input"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accountId")
}

func TestAccountsCommand(t *testing.T) {
	srv := newFakeAPI(t, 0)
	cfgPath := writeTestConfig(t, srv.URL)
	t.Setenv("MERCURY_API_KEY", "test-key")

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{"accounts", "--config", cfgPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Found 1 accounts")
	assert.Contains(t, out.String(), "1. Checking (ID: acc_1)")
}
