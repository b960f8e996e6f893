package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// seedDemoData inserts a handful of sites, equipments, technicians and
// source records so a fresh local database produces notifications on the
// first scan. Skips entirely when sites already exist.
func seedDemoData() error {
	connStr := os.Getenv("DB_URL")
	if connStr == "" {
		return fmt.Errorf("DB_URL is required for seeding")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sites").Scan(&count); err != nil {
		return fmt.Errorf("failed to check sites count: %w", err)
	}
	if count > 0 {
		log.Printf("⚠️ Demo data already present (%d sites found). Skipping insertion.", count)
		return nil
	}

	now := time.Now()

	_, err = db.Exec(`
		INSERT INTO sites (name, code, address, city, created_at, updated_at) VALUES
		('Nouakchott North Tower', 'NKT-N01', 'Route de Nouadhibou km 7', 'Nouakchott', NOW(), NOW()),
		('Rosso Relay Station', 'RSO-R02', 'Avenue du Fleuve', 'Rosso', NOW(), NOW()),
		('Atar Hilltop Mast', 'ATR-M03', 'Plateau d''Azougui', 'Atar', NOW(), NOW())`)
	if err != nil {
		return fmt.Errorf("failed to seed sites: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO equipments (name, type, serial, site_id, created_at, updated_at) VALUES
		('Rectifier Cabinet A', 'power', 'RC-2041-A', 1, NOW(), NOW()),
		('Diesel Generator 22kVA', 'generator', 'DG-8812', 1, NOW(), NOW()),
		('Sector Antenna S2', 'antenna', 'ANT-5520', 2, NOW(), NOW()),
		('Cooling Unit CU-3', 'hvac', 'CU-3307', 3, NOW(), NOW())`)
	if err != nil {
		return fmt.Errorf("failed to seed equipments: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (full_name, email, role, is_active, created_at, updated_at) VALUES
		('Mohamed Vall', 'mvall@fieldops.local', 'technician', true, NOW(), NOW()),
		('Aicha Mint Sidi', 'asidi@fieldops.local', 'technician', true, NOW(), NOW()),
		('Cheikh Ould Ahmed', 'cahmed@fieldops.local', 'manager', true, NOW(), NOW())`)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	// One maintenance inside the upcoming window, one overdue, one completed
	_, err = db.Exec(`
		INSERT INTO maintenances (equipment_id, description, performed_by_id, status, scheduled_date, created_at, updated_at) VALUES
		(1, 'Quarterly rectifier inspection', 1, 'pending', $1, NOW(), NOW()),
		(2, 'Generator oil and filter change', 2, 'pending', $2, NOW(), NOW()),
		(4, 'Cooling unit coil cleaning', 1, 'completed', $3, NOW(), NOW())`,
		now.Add(48*time.Hour), now.Add(-72*time.Hour), now.Add(-30*24*time.Hour))
	if err != nil {
		return fmt.Errorf("failed to seed maintenances: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO interventions (site_id, description, status, planned_date, created_at, updated_at) VALUES
		(2, 'Replace damaged feeder cable', 'planned', $1, NOW(), NOW()),
		(3, 'Investigate mast alarm', 'planned', $2, NOW(), NOW())`,
		now.Add(24*time.Hour), now.Add(-24*time.Hour))
	if err != nil {
		return fmt.Errorf("failed to seed interventions: %w", err)
	}

	log.Println("✅ Demo data seeded successfully")
	return nil
}
