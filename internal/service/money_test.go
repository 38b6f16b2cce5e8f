package service

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{30.97, 30.97},
		{0.125, 0.13}, // half rounds away from zero
		{-0.125, -0.13},
		{30.964, 30.96},
		{0, 0},
		{17.98, 17.98},
	}
	for _, tc := range tests {
		if got := round2(tc.in); got != tc.want {
			t.Errorf("round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		price float64
		qty   uint32
		want  float64
	}{
		{8.99, 2, 17.98},
		{12.99, 1, 12.99},
		{4.99, 3, 14.97},
		{2.99, 0, 0},
	}
	for _, tc := range tests {
		if got := lineTotal(tc.price, tc.qty); got != tc.want {
			t.Errorf("lineTotal(%v, %d) = %v, want %v", tc.price, tc.qty, got, tc.want)
		}
	}
}
