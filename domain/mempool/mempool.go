package mempool

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/wmchain/wmchaind/domain/consensus/model/externalapi"
	"github.com/wmchain/wmchaind/domain/consensus/utils/consensusserialization"
)

// Mempool is a FIFO transaction pool. Transactions leave in submission
// order, and a requeued draw returns to the front so the order survives a
// rejected proposal. It implements model.TransactionSource.
type Mempool struct {
	mtx          sync.Mutex
	transactions []*externalapi.DomainTransaction
}

// New creates an empty mempool.
func New() *Mempool {
	return &Mempool{}
}

// SubmitTransaction appends a transaction to the back of the pool. The
// transaction must carry the payload matching its type tag.
func (mp *Mempool) SubmitTransaction(transaction *externalapi.DomainTransaction) error {
	err := checkPayload(transaction)
	if err != nil {
		return err
	}

	mp.mtx.Lock()
	defer mp.mtx.Unlock()
	mp.transactions = append(mp.transactions, transaction)
	log.Tracef("Accepted %s transaction, pool size is now %d",
		transaction.Type, len(mp.transactions))
	return nil
}

// DrawTransactions removes and returns transactions from the front of the
// pool, stopping before the first transaction that would exceed either
// limit. A transaction too large to ever fit maxBytes stays at the front
// and blocks the draw, which surfaces the misconfiguration instead of
// silently reordering.
func (mp *Mempool) DrawTransactions(maxCount uint64, maxBytes uint64) (
	[]*externalapi.DomainTransaction, error) {

	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	var drawn []*externalapi.DomainTransaction
	var drawnBytes uint64
	for len(mp.transactions) > 0 && uint64(len(drawn)) < maxCount {
		next := mp.transactions[0]
		size, err := consensusserialization.TransactionSize(next)
		if err != nil {
			return nil, err
		}
		if drawnBytes+size > maxBytes {
			break
		}
		drawn = append(drawn, next)
		drawnBytes += size
		mp.transactions = mp.transactions[1:]
	}
	return drawn, nil
}

// RequeueTransactions returns a drawn batch to the front of the pool,
// preserving its internal order.
func (mp *Mempool) RequeueTransactions(transactions []*externalapi.DomainTransaction) {
	if len(transactions) == 0 {
		return
	}

	mp.mtx.Lock()
	defer mp.mtx.Unlock()
	mp.transactions = append(transactions, mp.transactions...)
	log.Debugf("Requeued %d transactions, pool size is now %d",
		len(transactions), len(mp.transactions))
}

// Len returns the number of pooled transactions.
func (mp *Mempool) Len() int {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()
	return len(mp.transactions)
}

func checkPayload(transaction *externalapi.DomainTransaction) error {
	switch transaction.Type {
	case externalapi.TransactionTypeRegisterModel:
		if transaction.RegisterModel == nil {
			return errors.Errorf("RegisterModel transaction carries no payload")
		}
	case externalapi.TransactionTypeUseModel:
		if transaction.UseModel == nil {
			return errors.Errorf("UseModel transaction carries no payload")
		}
	case externalapi.TransactionTypeTransfer:
		if transaction.Transfer == nil {
			return errors.Errorf("Transfer transaction carries no payload")
		}
	default:
		return errors.Errorf("unknown transaction type %d", transaction.Type)
	}
	return nil
}
