package model

import "fmt"

// MappingError reports an API value that has no matching closed-enum variant.
type MappingError struct {
	Field string
	Value string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mapping %s: unknown value %q", e.Field, e.Value)
}

// Kind classifies a transaction by transfer/payment type.
type Kind string

const (
	KindExternalTransfer                Kind = "externalTransfer"
	KindInternalTransfer                Kind = "internalTransfer"
	KindOutgoingPayment                 Kind = "outgoingPayment"
	KindCreditCardCredit                Kind = "creditCardCredit"
	KindCreditCardTransaction           Kind = "creditCardTransaction"
	KindDebitCardTransaction            Kind = "debitCardTransaction"
	KindIncomingDomesticWire            Kind = "incomingDomesticWire"
	KindCheckDeposit                    Kind = "checkDeposit"
	KindIncomingInternationalWire       Kind = "incomingInternationalWire"
	KindTreasuryTransfer                Kind = "treasuryTransfer"
	KindWireFee                         Kind = "wireFee"
	KindCardInternationalTransactionFee Kind = "cardInternationalTransactionFee"
	KindOther                           Kind = "other"
)

var kinds = map[Kind]struct{}{
	KindExternalTransfer:                {},
	KindInternalTransfer:                {},
	KindOutgoingPayment:                 {},
	KindCreditCardCredit:                {},
	KindCreditCardTransaction:           {},
	KindDebitCardTransaction:            {},
	KindIncomingDomesticWire:            {},
	KindCheckDeposit:                    {},
	KindIncomingInternationalWire:       {},
	KindTreasuryTransfer:                {},
	KindWireFee:                         {},
	KindCardInternationalTransactionFee: {},
	KindOther:                           {},
}

// ParseKind converts an API kind string to a Kind. Unknown values fail;
// there is no catch-all bucket.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := kinds[k]; !ok {
		return "", &MappingError{Field: "kind", Value: s}
	}
	return k, nil
}

// Status is the lifecycle stage of a transaction.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSent      Status = "sent"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

var statuses = map[Status]struct{}{
	StatusPending:   {},
	StatusSent:      {},
	StatusCancelled: {},
	StatusFailed:    {},
}

// ParseStatus converts an API status string to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statuses[st]; !ok {
		return "", &MappingError{Field: "status", Value: s}
	}
	return st, nil
}

// AttachmentType classifies a transaction attachment.
type AttachmentType string

const (
	AttachmentCheckImage AttachmentType = "checkImage"
	AttachmentReceipt    AttachmentType = "receipt"
	AttachmentOther      AttachmentType = "other"
)

var attachmentTypes = map[AttachmentType]struct{}{
	AttachmentCheckImage: {},
	AttachmentReceipt:    {},
	AttachmentOther:      {},
}

// ParseAttachmentType converts an API attachmentType string to an AttachmentType.
func ParseAttachmentType(s string) (AttachmentType, error) {
	at := AttachmentType(s)
	if _, ok := attachmentTypes[at]; !ok {
		return "", &MappingError{Field: "attachmentType", Value: s}
	}
	return at, nil
}
