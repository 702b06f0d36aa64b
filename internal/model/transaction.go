package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one Mercury bank transaction. Optional timestamps stay nil
// when the API omits them; they are never defaulted.
type Transaction struct {
	ID                         string
	Amount                     decimal.Decimal // negative = money out
	BankDescription            string
	CounterpartyID             string
	CounterpartyName           string
	CounterpartyNickname       string
	CreatedAt                  *time.Time
	PostedAt                   *time.Time
	FailedAt                   *time.Time
	EstimatedDeliveryDate      *time.Time
	DashboardLink              string
	Kind                       Kind
	Status                     Status
	Note                       string
	ExternalMemo               string
	ReasonForFailure           string
	FeeID                      string
	Details                    *TransactionDetails
	CurrencyExchangeInfo       *CurrencyExchangeInfo
	CompliantWithReceiptPolicy *bool
	HasGeneratedReceipt        *bool
	CreditAccountPeriodID      string
	MercuryCategory            string
	GeneralLedgerCodeName      string
	Attachments                []Attachment
	RelatedTransactions        []string
}

// TransactionDetails carries counterparty routing data. Which branch is set
// depends on the transaction kind; all branches are passed through untouched.
type TransactionDetails struct {
	Address                      *Address                      `json:"address,omitempty"`
	DomesticWireRoutingInfo      *DomesticWireRoutingInfo      `json:"domesticWireRoutingInfo,omitempty"`
	ElectronicRoutingInfo        *ElectronicRoutingInfo        `json:"electronicRoutingInfo,omitempty"`
	InternationalWireRoutingInfo *InternationalWireRoutingInfo `json:"internationalWireRoutingInfo,omitempty"`
	DebitCardInfo                *CardInfo                     `json:"debitCardInfo,omitempty"`
	CreditCardInfo               *CardInfo                     `json:"creditCardInfo,omitempty"`
}

type Address struct {
	Address1   string `json:"address1,omitempty"`
	Address2   string `json:"address2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

type DomesticWireRoutingInfo struct {
	BankName      string   `json:"bankName,omitempty"`
	AccountNumber string   `json:"accountNumber,omitempty"`
	RoutingNumber string   `json:"routingNumber,omitempty"`
	Address       *Address `json:"address,omitempty"`
}

type ElectronicRoutingInfo struct {
	AccountNumber string `json:"accountNumber,omitempty"`
	RoutingNumber string `json:"routingNumber,omitempty"`
	BankName      string `json:"bankName,omitempty"`
}

type InternationalWireRoutingInfo struct {
	IBAN              string               `json:"iban,omitempty"`
	SwiftCode         string               `json:"swiftCode,omitempty"`
	CorrespondentInfo *CorrespondentInfo   `json:"correspondentInfo,omitempty"`
	BankDetails       *BankDetails         `json:"bankDetails,omitempty"`
	Address           *Address             `json:"address,omitempty"`
	PhoneNumber       string               `json:"phoneNumber,omitempty"`
	CountrySpecific   *CountrySpecificData `json:"countrySpecific,omitempty"`
}

type CorrespondentInfo struct {
	RoutingNumber string `json:"routingNumber,omitempty"`
	SwiftCode     string `json:"swiftCode,omitempty"`
	BankName      string `json:"bankName,omitempty"`
}

type BankDetails struct {
	BankName  string `json:"bankName,omitempty"`
	CityState string `json:"cityState,omitempty"`
	Country   string `json:"country,omitempty"`
}

// CountrySpecificData holds per-country wire fields as opaque key/value maps.
type CountrySpecificData struct {
	Canada      map[string]string `json:"countrySpecificDataCanada,omitempty"`
	Australia   map[string]string `json:"countrySpecificDataAustralia,omitempty"`
	India       map[string]string `json:"countrySpecificDataIndia,omitempty"`
	Russia      map[string]string `json:"countrySpecificDataRussia,omitempty"`
	Philippines map[string]string `json:"countrySpecificDataPhilippines,omitempty"`
	SouthAfrica map[string]string `json:"countrySpecificDataSouthAfrica,omitempty"`
}

type CardInfo struct {
	ID string `json:"id,omitempty"`
}

// CurrencyExchangeInfo describes the FX leg of a converted transaction.
// Amounts and rates are passed through without cross-field checks.
type CurrencyExchangeInfo struct {
	ConvertedFromCurrency string          `json:"convertedFromCurrency"`
	ConvertedToCurrency   string          `json:"convertedToCurrency"`
	ConvertedFromAmount   decimal.Decimal `json:"convertedFromAmount"`
	ConvertedToAmount     decimal.Decimal `json:"convertedToAmount"`
	FeeAmount             decimal.Decimal `json:"feeAmount"`
	FeePercentage         decimal.Decimal `json:"feePercentage"`
	ExchangeRate          decimal.Decimal `json:"exchangeRate"`
	FeeTransactionID      string          `json:"feeTransactionId"`
}

// Attachment is a file attached to a transaction (check image, receipt).
type Attachment struct {
	FileName       string         `json:"fileName"`
	URL            string         `json:"url"`
	AttachmentType AttachmentType `json:"attachmentType"`
}
