package db

import (
	"errors"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"nil", nil, "", false},
		{"postgres", errors.New(`duplicate key value violates unique constraint "ux_ratings_offer_client"`), "", true},
		{"postgres named", errors.New(`duplicate key value violates unique constraint "ux_ratings_offer_client"`), "ux_ratings_offer_client", true},
		{"sqlite", errors.New("UNIQUE constraint failed: ratings.offer_id, ratings.client_user_id"), "", true},
		{"other", errors.New("connection refused"), "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err, tc.constraint); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
