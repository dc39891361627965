package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crucitafashion/crucita-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.50", FormatMoney(decimal.RequireFromString("0.5")))
	assert.Equal(t, "$999.00", FormatMoney(decimal.NewFromInt(999)))
	assert.Equal(t, "$1,234.50", FormatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$1,000,000.00", FormatMoney(decimal.NewFromInt(1000000)))
	assert.Equal(t, "-$12.30", FormatMoney(decimal.RequireFromString("-12.3")))
}

func TestSaleReceipt_GeneraPDF(t *testing.T) {
	size := "M"
	sale := &entity.Sale{
		Code:      "V-001",
		TotalCost: decimal.RequireFromString("350.00"),
		Date:      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Time:      time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
	}
	products := []*entity.Product{
		{Code: "BL-01", Quantity: 1, Cost: decimal.NewFromInt(150), Size: &size},
		{Code: "ZP-07", Quantity: 1, Cost: decimal.NewFromInt(200)},
	}

	out, err := NewReceiptGenerator("").SaleReceipt(context.Background(), sale, products)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
