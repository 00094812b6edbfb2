package utils

import (
	"github.com/google/uuid"
)

func GenerateUUIDString() string {
	return uuid.New().String()
}

// GeneratePaymentReference returns the reference printed on simulated payment QR codes.
func GeneratePaymentReference() string {
	return "RES-" + uuid.New().String()[:8]
}
