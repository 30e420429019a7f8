//go:build !integration

package postgres

import (
	"comicSnap/domain"
	"context"
	"strings"
	"testing"

	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB builds statements without a server. captured receives the SQL and
// vars of every create.
func dryRunDB(t *testing.T, captured func(sql string, vars []interface{})) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		DSN: "host=localhost user=comicsnap dbname=comicsnap sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}

	err = db.Callback().Create().After("gorm:create").Register("test:capture", func(tx *gorm.DB) {
		captured(tx.Statement.SQL.String(), tx.Statement.Vars)
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
	return db
}

func TestCreatePreferenceKeepsZeroWeight(t *testing.T) {
	var (
		sql  string
		vars []interface{}
	)
	repo := NewPreferenceRepository(dryRunDB(t, func(s string, v []interface{}) {
		sql, vars = s, v
	}))

	pref := &domain.Preference{
		UserID:  1,
		ComicID: "c1",
		Genre:   domain.DefaultPreferenceGenre,
		Weight:  0,
	}
	if err := repo.CreatePreference(context.Background(), pref); err != nil {
		t.Fatalf("CreatePreference() error = %v", err)
	}

	if !strings.Contains(sql, `"weight"`) {
		t.Fatalf("weight column missing from insert: %s", sql)
	}

	var weights []float64
	for _, v := range vars {
		if f, ok := v.(float64); ok {
			weights = append(weights, f)
		}
	}
	if len(weights) != 1 || weights[0] != 0 {
		t.Fatalf("weight vars = %v, want [0]", weights)
	}
	if pref.Weight != 0 {
		t.Fatalf("pref.Weight = %v after create, want 0", pref.Weight)
	}
}

func TestCreatePreferenceStoresWeight(t *testing.T) {
	var vars []interface{}
	repo := NewPreferenceRepository(dryRunDB(t, func(_ string, v []interface{}) {
		vars = v
	}))

	pref := &domain.Preference{UserID: 1, ComicID: "c2", Genre: "horror", Weight: 0.5}
	if err := repo.CreatePreference(context.Background(), pref); err != nil {
		t.Fatalf("CreatePreference() error = %v", err)
	}

	found := false
	for _, v := range vars {
		if f, ok := v.(float64); ok && f == 0.5 {
			found = true
		}
	}
	if !found {
		t.Fatalf("vars = %v, want weight 0.5", vars)
	}
}
