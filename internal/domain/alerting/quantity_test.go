package alerting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
)

func TestParseQuantity_PrefijoNumerico(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12.50", "12.5", true},
		{" 3 ", "3", true},
		{"4kg", "4", true},
		{"5.", "5", true},
		{".5", "0.5", true},
		{"-2", "-2", true},
		{"1e2", "100", true},
		{"1e-999999999", "0", true},
		{"", "0", false},
		{"abc", "0", false},
		{"kg4", "0", false},
	}
	for _, tc := range cases {
		got, inf, ok := parseQuantity(tc.in)
		assert.Equal(t, tc.ok, ok, "entrada %q", tc.in)
		assert.Zero(t, inf, "entrada %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got.String(), "entrada %q", tc.in)
		}
	}
}

func TestSumQuantities_InvalidaTotal(t *testing.T) {
	lines := []*entity.StockLine{{Quantity: "2"}, {Quantity: "n/a"}, {Quantity: "1"}}
	total := sumQuantities(lines)
	assert.True(t, total.invalid)
	assert.Nil(t, total.float(), "un total inválido no se expone")

	total = sumQuantities([]*entity.StockLine{{Quantity: "0.1"}, {Quantity: "0.2"}})
	assert.False(t, total.invalid)
	assert.Equal(t, "0.3", total.sum.String(), "la suma decimal no acumula error de coma flotante")

	total = sumQuantities([]*entity.StockLine{{Quantity: "0.1"}, {Quantity: "0.2"}, {Quantity: "-0.3"}})
	assert.True(t, total.isZero(), "suma exacta: 0.1 + 0.2 - 0.3 es 0")
}

func TestParseQuantity_ExponenteEnorme(t *testing.T) {
	for in, want := range map[string]int{
		"1e999999999": 1,
		"1e20000000":  1,
		"-1e400":      -1,
		"+9e308kg":    1,
	} {
		start := time.Now()
		_, inf, ok := parseQuantity(in)
		assert.True(t, ok, "entrada %q", in)
		assert.Equal(t, want, inf, "entrada %q", in)
		assert.Less(t, time.Since(start), 100*time.Millisecond, "entrada %q", in)
	}
}

func TestSumQuantities_Infinito(t *testing.T) {
	threshold := decimal.NewFromInt(5)

	start := time.Now()
	total := sumQuantities([]*entity.StockLine{{Quantity: "1.5"}, {Quantity: "1e999999999"}})
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.False(t, total.invalid)
	assert.False(t, total.isZero())
	assert.False(t, total.lessThan(threshold), "+Infinity nunca es menor que el umbral")
	assert.Nil(t, total.float(), "infinito no se expone en JSON")

	total = sumQuantities([]*entity.StockLine{{Quantity: "2"}, {Quantity: "-1e400"}})
	assert.True(t, total.lessThan(threshold))
	assert.Equal(t, "-Infinity", total.String())

	total = sumQuantities([]*entity.StockLine{{Quantity: "1e400"}, {Quantity: "-1e400"}})
	assert.True(t, total.invalid, "Infinity - Infinity es NaN")
	assert.False(t, total.lessThan(threshold))
}
