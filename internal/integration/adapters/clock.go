package adapters

import (
	"time"

	"github.com/finance-ledger/backend/internal/application/adapter"
)

// systemClock implements the adapter.Clock interface using wall time.
type systemClock struct{}

// NewSystemClock creates a clock backed by time.Now.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
