package operationtype

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("operation type not found")
	ErrDuplicateCode = errors.New("operation type code already exists")
)

// OperationType classifies a transaction, for example CAMBIO or TRANSFERENCIA.
type OperationType struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
}
