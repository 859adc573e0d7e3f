package models

import "testing"

func TestNormalizePayer(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"pick-up", "pick-up"},
		{"Pick Up", "pick-up"},
		{"PICKUP", "pick-up"},
		{"pickup at yaba", "pick-up"},
		{"  pick up  ", "pick-up"},
		{"Vendor", "vendor"},
		{"the vendor pays", "vendor"},
		{"Delivery", "delivery"},
		{"on delivery", "delivery"},
		{"Cash", "cash"},
		{"  POS  ", "pos"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizePayer(c.in); got != c.want {
			t.Errorf("NormalizePayer(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
