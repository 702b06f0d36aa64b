package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mercury-tools/mercury-export/internal/model"
)

// Header is the CSV header for an exported transactions file.
const Header = "id,amount,bank_description,counterparty_id,counterparty_name,counterparty_nickname,created_at,posted_at,failed_at,estimated_delivery_date,dashboard_link,kind,status,note,external_memo,reason_for_failure,fee_id,details,currency_exchange_info,compliant_with_receipt_policy,has_generated_receipt,credit_account_period_id,mercury_category,general_ledger_code_name,attachments,related_transactions"

const (
	numFields      = 26
	colID          = 0
	colAmount      = 1
	colBankDesc    = 2
	colCpartyID    = 3
	colCpartyName  = 4
	colCpartyNick  = 5
	colCreatedAt   = 6
	colPostedAt    = 7
	colFailedAt    = 8
	colEstDelivery = 9
	colDashboard   = 10
	colKind        = 11
	colStatus      = 12
	colNote        = 13
	colExtMemo     = 14
	colFailReason  = 15
	colFeeID       = 16
	colDetails     = 17
	colFXInfo      = 18
	colCompliant   = 19
	colHasReceipt  = 20
	colCreditPd    = 21
	colCategory    = 22
	colGLCode      = 23
	colAttachments = 24
	colRelated     = 25
)

// WriteTransactions writes a header plus one row per transaction.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		row, err := MarshalTransaction(txn)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ReadTransactions reads back a file produced by WriteTransactions.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteFile exports transactions to a CSV file at path.
func WriteFile(path string, txns []model.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := WriteTransactions(f, txns); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// MarshalTransaction converts a Transaction to a CSV row. Timestamps use
// RFC3339, enums their wire string, nested structures compact JSON.
func MarshalTransaction(txn model.Transaction) ([]string, error) {
	row := make([]string, numFields)
	row[colID] = txn.ID
	row[colAmount] = txn.Amount.String()
	row[colBankDesc] = txn.BankDescription
	row[colCpartyID] = txn.CounterpartyID
	row[colCpartyName] = txn.CounterpartyName
	row[colCpartyNick] = txn.CounterpartyNickname
	row[colCreatedAt] = formatTime(txn.CreatedAt)
	row[colPostedAt] = formatTime(txn.PostedAt)
	row[colFailedAt] = formatTime(txn.FailedAt)
	row[colEstDelivery] = formatTime(txn.EstimatedDeliveryDate)
	row[colDashboard] = txn.DashboardLink
	row[colKind] = string(txn.Kind)
	row[colStatus] = string(txn.Status)
	row[colNote] = txn.Note
	row[colExtMemo] = txn.ExternalMemo
	row[colFailReason] = txn.ReasonForFailure
	row[colFeeID] = txn.FeeID
	row[colCompliant] = formatBool(txn.CompliantWithReceiptPolicy)
	row[colHasReceipt] = formatBool(txn.HasGeneratedReceipt)
	row[colCreditPd] = txn.CreditAccountPeriodID
	row[colCategory] = txn.MercuryCategory
	row[colGLCode] = txn.GeneralLedgerCodeName
	row[colRelated] = strings.Join(txn.RelatedTransactions, ";")

	if txn.Details != nil {
		data, err := json.Marshal(txn.Details)
		if err != nil {
			return nil, fmt.Errorf("marshaling details: %w", err)
		}
		row[colDetails] = string(data)
	}
	if txn.CurrencyExchangeInfo != nil {
		data, err := json.Marshal(txn.CurrencyExchangeInfo)
		if err != nil {
			return nil, fmt.Errorf("marshaling currency exchange info: %w", err)
		}
		row[colFXInfo] = string(data)
	}
	if len(txn.Attachments) > 0 {
		data, err := json.Marshal(txn.Attachments)
		if err != nil {
			return nil, fmt.Errorf("marshaling attachments: %w", err)
		}
		row[colAttachments] = string(data)
	}

	return row, nil
}

// UnmarshalTransaction converts a CSV row back to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	txn := model.Transaction{
		ID:                    record[colID],
		Amount:                amount,
		BankDescription:       record[colBankDesc],
		CounterpartyID:        record[colCpartyID],
		CounterpartyName:      record[colCpartyName],
		CounterpartyNickname:  record[colCpartyNick],
		DashboardLink:         record[colDashboard],
		Note:                  record[colNote],
		ExternalMemo:          record[colExtMemo],
		ReasonForFailure:      record[colFailReason],
		FeeID:                 record[colFeeID],
		CreditAccountPeriodID: record[colCreditPd],
		MercuryCategory:       record[colCategory],
		GeneralLedgerCodeName: record[colGLCode],
	}

	if txn.CreatedAt, err = parseTime("created_at", record[colCreatedAt]); err != nil {
		return model.Transaction{}, err
	}
	if txn.PostedAt, err = parseTime("posted_at", record[colPostedAt]); err != nil {
		return model.Transaction{}, err
	}
	if txn.FailedAt, err = parseTime("failed_at", record[colFailedAt]); err != nil {
		return model.Transaction{}, err
	}
	if txn.EstimatedDeliveryDate, err = parseTime("estimated_delivery_date", record[colEstDelivery]); err != nil {
		return model.Transaction{}, err
	}

	if record[colKind] != "" {
		if txn.Kind, err = model.ParseKind(record[colKind]); err != nil {
			return model.Transaction{}, err
		}
	}
	if record[colStatus] != "" {
		if txn.Status, err = model.ParseStatus(record[colStatus]); err != nil {
			return model.Transaction{}, err
		}
	}

	if txn.CompliantWithReceiptPolicy, err = parseBool("compliant_with_receipt_policy", record[colCompliant]); err != nil {
		return model.Transaction{}, err
	}
	if txn.HasGeneratedReceipt, err = parseBool("has_generated_receipt", record[colHasReceipt]); err != nil {
		return model.Transaction{}, err
	}

	if record[colDetails] != "" {
		txn.Details = &model.TransactionDetails{}
		if err := json.Unmarshal([]byte(record[colDetails]), txn.Details); err != nil {
			return model.Transaction{}, fmt.Errorf("parsing details: %w", err)
		}
	}
	if record[colFXInfo] != "" {
		txn.CurrencyExchangeInfo = &model.CurrencyExchangeInfo{}
		if err := json.Unmarshal([]byte(record[colFXInfo]), txn.CurrencyExchangeInfo); err != nil {
			return model.Transaction{}, fmt.Errorf("parsing currency exchange info: %w", err)
		}
	}
	if record[colAttachments] != "" {
		if err := json.Unmarshal([]byte(record[colAttachments]), &txn.Attachments); err != nil {
			return model.Transaction{}, fmt.Errorf("parsing attachments: %w", err)
		}
	}
	if record[colRelated] != "" {
		txn.RelatedTransactions = strings.Split(record[colRelated], ";")
	}

	return txn, nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func parseTime(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return &t, nil
}

func formatBool(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func parseBool(field, s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return &b, nil
}
