// Package operations runs groups of concurrent tasks as one unit of work, optionally inside a transaction.
package operations

import "github.com/parsaloi/value-driven-domain-pattern/eventmanagement/common/persistence"

// OperationContext tells a TaskScope whether its tasks share a transaction.
type OperationContext interface {
	isOperationContext()
}

// Transactional tasks share the transaction of TransactionManager, it is rolled back on the first failure.
type Transactional struct {
	TransactionManager *persistence.TransactionManager
}

type NonTransactional struct{}

func (Transactional) isOperationContext()    {}
func (NonTransactional) isOperationContext() {}
