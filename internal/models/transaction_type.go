package models

// TransactionType is the HR event driving a seat occupancy change. It is not
// persisted here; the approval workflow that produces it lives elsewhere.
type TransactionType string

const (
	TransactionHire        TransactionType = "HIRE"
	TransactionActing      TransactionType = "ACTING"
	TransactionPromotion   TransactionType = "PROMOTION"
	TransactionTransfer    TransactionType = "TRANSFER"
	TransactionSecondment  TransactionType = "SECONDMENT"
	TransactionTermination TransactionType = "TERMINATION"
)

// ValidTransactionTypes is the set of transaction types the orchestrator
// accepts.
var ValidTransactionTypes = []TransactionType{
	TransactionHire,
	TransactionActing,
	TransactionPromotion,
	TransactionTransfer,
	TransactionSecondment,
	TransactionTermination,
}

// Valid returns true if t is one of the supported transaction types.
func (t TransactionType) Valid() bool {
	for _, v := range ValidTransactionTypes {
		if v == t {
			return true
		}
	}
	return false
}
