package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOffersMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_offers.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no offers migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS offers",
		"CHECK (price > 0)",
		"CHECK ((gym_id IS NULL) <> (pt_user_id IS NULL))",
		"FOREIGN KEY (gym_id) REFERENCES gyms(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS offers",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestRatingsMigrationEnforcesOnePerClient(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_ratings.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no ratings migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CHECK (score BETWEEN 1 AND 5)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_ratings_offer_client ON ratings (offer_id, client_user_id)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
