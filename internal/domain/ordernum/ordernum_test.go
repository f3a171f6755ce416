package ordernum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Stock-api/internal/domain"
	"github.com/jhoicas/Stock-api/internal/domain/ordernum"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "CMD-2026-0001", ordernum.Format(2026, 1))
	assert.Equal(t, "CMD-2026-0042", ordernum.Format(2026, 42))
	assert.Equal(t, "CMD-2025-9999", ordernum.Format(2025, 9999))
	// Por encima de 9999 el número se alarga sin truncar.
	assert.Equal(t, "CMD-2026-10000", ordernum.Format(2026, 10000))
}

func TestParse(t *testing.T) {
	year, seq, err := ordernum.Parse("CMD-2026-0007")
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 7, seq)

	year, seq, err = ordernum.Parse("CMD-2026-12345")
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 12345, seq)
}

func TestParse_Invalido(t *testing.T) {
	for _, s := range []string{"", "CMD-26-0001", "ORD-2026-0001", "CMD-2026-1", "CMD-2026-", "cmd-2026-0001"} {
		_, _, err := ordernum.Parse(s)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, s)
	}
}

func TestFormatParse_Ida_Y_Vuelta(t *testing.T) {
	year, seq, err := ordernum.Parse(ordernum.Format(2026, 321))
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 321, seq)
}
