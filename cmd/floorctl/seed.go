package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// SeedOptions holds the bootstrap values for a fresh location.
type SeedOptions struct {
	Email             string
	Password          string
	Name              string
	Location          string
	Timezone          string
	TaxRate           string
	ServiceChargeRate string
	Tables            int
}

type servicePeriod struct {
	name, start, end string
}

var defaultPeriods = []servicePeriod{
	{"Breakfast", "06:00", "11:00"},
	{"Lunch", "11:00", "16:00"},
	{"Dinner", "16:00", "23:00"},
}

// NewSeedCommand creates the seed command. It is idempotent: rows that already
// exist are left untouched.
func NewSeedCommand(root *RootOptions) *cobra.Command {
	opts := &SeedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a location with tables, service periods and an owner account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.applyEnv()
			return runSeed(cmd.Context(), root.DatabaseURL, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Email, "email", "", "owner email address")
	f.StringVar(&opts.Password, "password", "", "owner password")
	f.StringVar(&opts.Name, "name", "", "owner full name")
	f.StringVar(&opts.Location, "location", "", "location name")
	f.StringVar(&opts.Timezone, "timezone", "UTC", "IANA timezone of the location")
	f.StringVar(&opts.TaxRate, "tax-rate", "0", "tax rate as a fraction, e.g. 0.08")
	f.StringVar(&opts.ServiceChargeRate, "service-charge-rate", "0", "service charge rate as a fraction")
	f.IntVar(&opts.Tables, "tables", 12, "number of tables to create (T1..Tn)")

	return cmd
}

// applyEnv fills unset values from SEED_* variables, then defaults.
func (o *SeedOptions) applyEnv() {
	fill := func(dst *string, env, fallback string) {
		if *dst == "" {
			*dst = os.Getenv(env)
		}
		if *dst == "" {
			*dst = fallback
		}
	}

	if o.Password == "" && os.Getenv("SEED_PASSWORD") == "" {
		log.Println("WARNING: Using default password 'password123'. Change immediately in production!")
	}
	fill(&o.Email, "SEED_EMAIL", "owner@tableside.local")
	fill(&o.Password, "SEED_PASSWORD", "password123")
	fill(&o.Name, "SEED_NAME", "Floor Owner")
	fill(&o.Location, "SEED_LOCATION", "Tableside Demo")
}

func runSeed(ctx context.Context, dbURL string, opts *SeedOptions) error {
	if opts.Tables < 0 {
		return fmt.Errorf("invalid tables %d: must be >= 0", opts.Tables)
	}
	taxRate, err := parseRate("tax-rate", opts.TaxRate)
	if err != nil {
		return err
	}
	serviceRate, err := parseRate("service-charge-rate", opts.ServiceChargeRate)
	if err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	log.Println("Connected to database")

	// Location, tables, periods and owner land together or not at all.
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	locationID, err := seedLocation(ctx, tx, opts.Location, opts.Timezone, taxRate, serviceRate)
	if err != nil {
		return fmt.Errorf("seed location: %w", err)
	}
	if err := seedTables(ctx, tx, locationID, opts.Tables); err != nil {
		return fmt.Errorf("seed tables: %w", err)
	}
	if err := seedServicePeriods(ctx, tx, locationID); err != nil {
		return fmt.Errorf("seed service periods: %w", err)
	}
	userID, err := seedOwner(ctx, tx, locationID, opts.Email, opts.Password, opts.Name)
	if err != nil {
		return fmt.Errorf("seed owner: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	log.Println("Seed completed successfully")
	log.Printf("Location ID: %s", locationID)
	log.Printf("Owner ID: %s", userID)
	return nil
}

func parseRate(flag, s string) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() || d.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return n, fmt.Errorf("invalid %s %q: must be a fraction in [0, 1)", flag, s)
	}
	if err := n.Scan(d.String()); err != nil {
		return n, fmt.Errorf("invalid %s %q: %w", flag, s, err)
	}
	return n, nil
}

func seedLocation(ctx context.Context, tx pgx.Tx, name, timezone string, taxRate, serviceRate pgtype.Numeric) (uuid.UUID, error) {
	var existingID uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM locations WHERE name = $1 LIMIT 1`, name).Scan(&existingID)
	if err == nil {
		log.Printf("Location '%s' already exists (ID: %s), skipping", name, existingID)
		return existingID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("check location: %w", err)
	}

	insertSQL := `
		INSERT INTO locations (name, timezone, tax_rate, service_charge_rate)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var newID uuid.UUID
	if err := tx.QueryRow(ctx, insertSQL, name, timezone, taxRate, serviceRate).Scan(&newID); err != nil {
		return uuid.Nil, fmt.Errorf("insert location: %w", err)
	}

	log.Printf("Created location '%s' (ID: %s)", name, newID)
	return newID, nil
}

func seedTables(ctx context.Context, tx pgx.Tx, locationID uuid.UUID, count int) error {
	insertSQL := `
		INSERT INTO tables (location_id, table_number)
		VALUES ($1, $2)
		ON CONFLICT (location_id, lower(table_number)) DO NOTHING
	`
	created := 0
	for i := 1; i <= count; i++ {
		tag, err := tx.Exec(ctx, insertSQL, locationID, fmt.Sprintf("T%d", i))
		if err != nil {
			return fmt.Errorf("insert table T%d: %w", i, err)
		}
		created += int(tag.RowsAffected())
	}
	log.Printf("Created %d tables (%d already present)", created, count-created)
	return nil
}

func seedServicePeriods(ctx context.Context, tx pgx.Tx, locationID uuid.UUID) error {
	var existing int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM service_periods WHERE location_id = $1`, locationID).Scan(&existing); err != nil {
		return fmt.Errorf("count service periods: %w", err)
	}
	if existing > 0 {
		log.Printf("Location already has %d service periods, skipping", existing)
		return nil
	}

	insertSQL := `
		INSERT INTO service_periods (location_id, name, start_time, end_time, sort_order)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, p := range defaultPeriods {
		if _, err := tx.Exec(ctx, insertSQL, locationID, p.name, p.start, p.end, i); err != nil {
			return fmt.Errorf("insert service period %s: %w", p.name, err)
		}
	}
	log.Printf("Created %d service periods", len(defaultPeriods))
	return nil
}

func seedOwner(ctx context.Context, tx pgx.Tx, locationID uuid.UUID, email, password, fullName string) (uuid.UUID, error) {
	var existingID uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM users WHERE email = $1 LIMIT 1`, email).Scan(&existingID)
	if err == nil {
		log.Printf("User '%s' already exists (ID: %s), skipping", email, existingID)
		return existingID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("check user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hash password: %w", err)
	}

	insertSQL := `
		INSERT INTO users (location_id, email, hashed_password, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, 'OWNER', true)
		RETURNING id
	`
	var newID uuid.UUID
	if err := tx.QueryRow(ctx, insertSQL, locationID, email, string(hashed), fullName).Scan(&newID); err != nil {
		return uuid.Nil, fmt.Errorf("insert user: %w", err)
	}

	log.Printf("Created owner user '%s' (ID: %s)", email, newID)
	return newID, nil
}
