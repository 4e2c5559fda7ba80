package main

import "testing"

func TestIsWeakSecret(t *testing.T) {
	cases := []struct {
		secret string
		want   bool
	}{
		{secret: "", want: true},
		{secret: "short", want: true},
		{secret: "change-me-in-production-please-0123456789", want: true},
		{secret: "b7f3c1e9a2d84f6e9c0b1a2d3e4f5a6b7c8d9e0f", want: false},
	}
	for _, tc := range cases {
		if got := isWeakSecret(tc.secret); got != tc.want {
			t.Fatalf("isWeakSecret(%q) want %v got %v", tc.secret, tc.want, got)
		}
	}
}
