package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stefifm/dashboard/internal/money"
)

func TestFormat(t *testing.T) {
	tests := map[int64]string{
		0:         "$0.00",
		1:         "$0.01",
		1250:      "$12.50",
		125000:    "$1,250.00",
		123456789: "$1,234,567.89",
		-4200:     "-$42.00",
	}

	for cents, want := range tests {
		assert.Equal(t, want, money.Format(cents))
	}
}
