package client

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("client not found")

type KYCStatus string

const (
	KYCNotCompleted   KYCStatus = "NOT_COMPLETED"
	KYCBridgeApproved KYCStatus = "BRIDGE_APPROVED"
	KYCPaypalApproved KYCStatus = "PAYPAL_APPROVED"
)

func (k KYCStatus) Valid() bool {
	switch k {
	case "", KYCNotCompleted, KYCBridgeApproved, KYCPaypalApproved:
		return true
	}

	return false
}

type Client struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	DocumentType   string    `json:"documentType,omitempty"`
	DocumentNumber string    `json:"documentNumber,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	Address        string    `json:"address,omitempty"`
	KYCStatus      KYCStatus `json:"kycStatus,omitempty"`
	Active         bool      `json:"active"`
}
