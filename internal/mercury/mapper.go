package mercury

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mercury-tools/mercury-export/internal/model"
)

// TransactionRecord is the wire shape of one transaction as the API returns
// it. Timestamps and enums stay raw strings here; MapTransaction converts
// them. Passthrough structures decode straight into their model types.
type TransactionRecord struct {
	ID                         string                      `json:"id"`
	Amount                     decimal.Decimal             `json:"amount"`
	BankDescription            string                      `json:"bankDescription"`
	CounterpartyID             string                      `json:"counterpartyId"`
	CounterpartyName           string                      `json:"counterpartyName"`
	CounterpartyNickname       string                      `json:"counterpartyNickname"`
	CreatedAt                  string                      `json:"createdAt"`
	PostedAt                   string                      `json:"postedAt"`
	FailedAt                   string                      `json:"failedAt"`
	EstimatedDeliveryDate      string                      `json:"estimatedDeliveryDate"`
	DashboardLink              string                      `json:"dashboardLink"`
	Kind                       string                      `json:"kind"`
	Status                     string                      `json:"status"`
	Note                       string                      `json:"note"`
	ExternalMemo               string                      `json:"externalMemo"`
	ReasonForFailure           string                      `json:"reasonForFailure"`
	FeeID                      string                      `json:"feeId"`
	Details                    *model.TransactionDetails   `json:"details"`
	CurrencyExchangeInfo       *model.CurrencyExchangeInfo `json:"currencyExchangeInfo"`
	CompliantWithReceiptPolicy *bool                       `json:"compliantWithReceiptPolicy"`
	HasGeneratedReceipt        *bool                       `json:"hasGeneratedReceipt"`
	CreditAccountPeriodID      string                      `json:"creditAccountPeriodId"`
	MercuryCategory            string                      `json:"mercuryCategory"`
	GeneralLedgerCodeName      string                      `json:"generalLedgerCodeName"`
	Attachments                []AttachmentRecord          `json:"attachments"`
	RelatedTransactions        []string                    `json:"relatedTransactions"`
}

// AttachmentRecord is the wire shape of one attachment.
type AttachmentRecord struct {
	FileName       string `json:"fileName"`
	URL            string `json:"url"`
	AttachmentType string `json:"attachmentType"`
}

// MapTransaction converts a wire record into a domain Transaction. It is a
// pure function: no I/O, no mutation of the input. Unknown kind, status, or
// attachmentType values fail with a *model.MappingError; malformed
// timestamps fail with a wrapped parse error. Absent fields stay unset.
func MapTransaction(rec TransactionRecord) (model.Transaction, error) {
	txn := model.Transaction{
		ID:                         rec.ID,
		Amount:                     rec.Amount,
		BankDescription:            rec.BankDescription,
		CounterpartyID:             rec.CounterpartyID,
		CounterpartyName:           rec.CounterpartyName,
		CounterpartyNickname:       rec.CounterpartyNickname,
		DashboardLink:              rec.DashboardLink,
		Note:                       rec.Note,
		ExternalMemo:               rec.ExternalMemo,
		ReasonForFailure:           rec.ReasonForFailure,
		FeeID:                      rec.FeeID,
		Details:                    rec.Details,
		CurrencyExchangeInfo:       rec.CurrencyExchangeInfo,
		CompliantWithReceiptPolicy: rec.CompliantWithReceiptPolicy,
		HasGeneratedReceipt:        rec.HasGeneratedReceipt,
		CreditAccountPeriodID:      rec.CreditAccountPeriodID,
		MercuryCategory:            rec.MercuryCategory,
		GeneralLedgerCodeName:      rec.GeneralLedgerCodeName,
		RelatedTransactions:        rec.RelatedTransactions,
	}

	var err error
	if txn.CreatedAt, err = parseTimestamp("createdAt", rec.CreatedAt); err != nil {
		return model.Transaction{}, err
	}
	if txn.PostedAt, err = parseTimestamp("postedAt", rec.PostedAt); err != nil {
		return model.Transaction{}, err
	}
	if txn.FailedAt, err = parseTimestamp("failedAt", rec.FailedAt); err != nil {
		return model.Transaction{}, err
	}
	if txn.EstimatedDeliveryDate, err = parseTimestamp("estimatedDeliveryDate", rec.EstimatedDeliveryDate); err != nil {
		return model.Transaction{}, err
	}

	if rec.Kind != "" {
		if txn.Kind, err = model.ParseKind(rec.Kind); err != nil {
			return model.Transaction{}, err
		}
	}
	if rec.Status != "" {
		if txn.Status, err = model.ParseStatus(rec.Status); err != nil {
			return model.Transaction{}, err
		}
	}

	for _, a := range rec.Attachments {
		at, err := model.ParseAttachmentType(a.AttachmentType)
		if err != nil {
			return model.Transaction{}, err
		}
		txn.Attachments = append(txn.Attachments, model.Attachment{
			FileName:       a.FileName,
			URL:            a.URL,
			AttachmentType: at,
		})
	}

	return txn, nil
}

// parseTimestamp parses an ISO-8601 timestamp, treating a trailing Z as UTC.
// Empty input means the field was absent and maps to nil.
func parseTimestamp(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return &t, nil
}
