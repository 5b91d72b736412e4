package model

import (
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
)

// TransactionSource provides an ordered, FIFO-drainable sequence of
// transactions for block proposal.
type TransactionSource interface {
	// DrawTransactions removes and returns the oldest transactions whose
	// count does not exceed maxCount and whose combined canonical size
	// does not exceed maxBytes. FIFO order is preserved.
	DrawTransactions(maxCount uint64, maxBytes uint64) ([]*externalapi.DomainTransaction, error)

	// RequeueTransactions returns previously drawn transactions to the
	// front of the source, preserving their order.
	RequeueTransactions(transactions []*externalapi.DomainTransaction)
}
