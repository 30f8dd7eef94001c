package flow

import (
	"errors"
	"fmt"
)

var ErrNoSigner = errors.New("no transaction signer configured")

// TxError reports a transaction that was submitted but failed on chain.
type TxError struct {
	TxId    string
	Message string
}

func (e *TxError) Error() string {
	return fmt.Sprintf("transaction %s failed: %s", e.TxId, e.Message)
}
