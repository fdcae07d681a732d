package services

import "testing"

func TestAmountToMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{0, 0},
		{10, 1000},
		{10.5, 1050},
		{10.005, 1001},
		{0.1 + 0.2, 30},
	}
	for _, tc := range cases {
		if got := amountToMinorUnits(tc.amount); got != tc.want {
			t.Errorf("amountToMinorUnits(%v) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}
