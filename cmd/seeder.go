package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"user_feature_visibility", "role_permissions", "role_assignments", "project_access", "notifications", "purchase_requests", "leave_balances", "projects", "features", "users"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		users := []struct {
			Email    string
			FullName string
			Role     string
		}{
			{"padma@construction.co", "Padma Admin", "admin"},
			{"dewi@construction.co", "Dewi Manajer", "manager"},
			{"rizki@construction.co", "Rizki Akuntan", "accountant"},
			{"fadhil@construction.co", "Fadhil Purchasing", "purchaser"},
			{"budi@construction.co", "Budi Pekerja", "worker"},
		}

		for _, u := range users {
			var exists int
			if err := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row().Scan(&exists); err == nil {
				fmt.Printf("user %s already exists; skipping insert\n", u.Email)
			} else {
				if err := db.Exec("INSERT INTO users (email, full_name, password_hash, primary_role, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())", u.Email, u.FullName, string(hash), u.Role).Error; err != nil {
					log.Fatalf("failed to insert user %s: %v", u.Email, err)
				}
				fmt.Printf("Seeded user: %s (%s)\n", u.Email, u.Role)
			}

			var userID int64
			if err := db.Raw("SELECT id FROM users WHERE email = ?", u.Email).Row().Scan(&userID); err != nil {
				log.Fatalf("failed to lookup user id for %s: %v", u.Email, err)
			}

			if err := db.Raw("SELECT 1 FROM role_assignments WHERE user_id = ? AND role = ?", userID, u.Role).Row().Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO role_assignments (user_id, role, granted_by, created_at) VALUES (?, ?, NULL, now())", userID, u.Role).Error; err != nil {
					log.Fatalf("failed to assign role %s to %s: %v", u.Role, u.Email, err)
				}
			}
		}

		features := []struct {
			Code     string
			Name     string
			Category string
		}{
			{"purchasing.submit", "Submit purchase requests", "purchasing"},
			{"purchasing.approve", "Approve purchase requests", "purchasing"},
			{"purchasing.view_all", "View all purchase requests", "purchasing"},
			{"projects.view", "View project list", "projects"},
		}

		for _, f := range features {
			var exists int
			if err := db.Raw("SELECT 1 FROM features WHERE code = ?", f.Code).Row().Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO features (code, name, category, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())", f.Code, f.Name, f.Category).Error; err != nil {
					log.Fatalf("failed to insert feature %s: %v", f.Code, err)
				}
				fmt.Printf("Seeded feature: %s\n", f.Code)
			}
		}

		// Default role/feature grid. Admin has no rows; the admin role
		// assignment bypasses the matrix entirely. Explicit false cells are
		// written so the editor reloads the saved grid exactly.
		matrix := map[string]map[string]bool{
			"manager":    {"purchasing.submit": true, "purchasing.approve": true, "purchasing.view_all": true, "projects.view": true},
			"accountant": {"purchasing.submit": false, "purchasing.approve": false, "purchasing.view_all": true, "projects.view": true},
			"purchaser":  {"purchasing.submit": true, "purchasing.approve": false, "purchasing.view_all": false, "projects.view": true},
			"worker":     {"purchasing.submit": true, "purchasing.approve": false, "purchasing.view_all": false, "projects.view": false},
		}

		for role, grants := range matrix {
			for code, canAccess := range grants {
				var exists int
				if err := db.Raw("SELECT 1 FROM role_permissions WHERE role = ? AND feature_code = ?", role, code).Row().Scan(&exists); err == nil {
					continue
				}
				if err := db.Exec("INSERT INTO role_permissions (role, feature_code, can_access, created_at) VALUES (?, ?, ?, now())", role, code, canAccess).Error; err != nil {
					log.Fatalf("failed to insert role permission %s/%s: %v", role, code, err)
				}
			}
		}
		fmt.Println("Seeded default role-permission matrix")

		projects := []struct {
			Code string
			Name string
		}{
			{"JKT-TOWER-01", "Jakarta Tower Phase 1"},
			{"BDG-BRIDGE-02", "Bandung Bridge Rehabilitation"},
		}

		for _, p := range projects {
			var exists int
			if err := db.Raw("SELECT 1 FROM projects WHERE code = ?", p.Code).Row().Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO projects (code, name, budget_idr, is_active, created_at, updated_at) VALUES (?, ?, 0, true, now(), now())", p.Code, p.Name).Error; err != nil {
					log.Fatalf("failed to insert project %s: %v", p.Code, err)
				}
				fmt.Printf("Seeded project: %s\n", p.Code)
			}
		}

		fmt.Println("Seeding completed")
	},
}
