package types

import (
	"strings"

	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
)

// TransactionType is the direction of a money movement
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func (t TransactionType) String() string {
	return string(t)
}

func (t TransactionType) Validate() error {
	if t != TransactionTypeIncome && t != TransactionTypeExpense {
		return ierr.NewErrorf("invalid transaction type: %s", t).
			WithHint("Transaction type must be income or expense").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ParseTransactionType canonicalises a client supplied type.
// Stored rows always carry the lowercase form so aggregation never has to compare case-insensitively.
func ParseTransactionType(raw string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(raw)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}
