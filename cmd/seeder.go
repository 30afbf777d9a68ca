package cmd

import (
	"context"
	"fmt"

	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/Rutuja-Parab/policyzen/internal/auth"
	authRepo "github.com/Rutuja-Parab/policyzen/internal/auth/postgres"
	"github.com/Rutuja-Parab/policyzen/internal/company"
	companyRepo "github.com/Rutuja-Parab/policyzen/internal/company/postgres"
	"github.com/Rutuja-Parab/policyzen/internal/core/uniqueness"
	"github.com/spf13/cobra"
)

var (
	seedCompanyName   string
	seedAdminEmail    string
	seedAdminPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the root company and an admin user",
	Long:  `Create a root company and an ADMIN user for development. Existing rows are left alone.`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedCompanyName, "company", "PolicyZen Holdings", "root company name")
	seedCmd.Flags().StringVar(&seedAdminEmail, "email", "admin@policyzen.local", "admin email")
	seedCmd.Flags().StringVar(&seedAdminPassword, "password", "password", "admin password")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, lg, err := setup()
	if err != nil {
		return err
	}

	db, err := initDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	gdb, err := openGorm(db)
	if err != nil {
		return err
	}

	companies := company.NewService(companyRepo.NewCompanyRepository(gdb), lg)
	existing, err := companies.List(ctx)
	if err != nil {
		return fmt.Errorf("list companies: %w", err)
	}

	var root *company.Company
	for _, c := range existing {
		if c.Name == seedCompanyName && c.ParentCompanyID == nil {
			root = c
			break
		}
	}
	if root == nil {
		root, err = companies.Create(ctx, company.CompanyDTO{Name: seedCompanyName})
		if err != nil {
			return fmt.Errorf("create company: %w", err)
		}
		fmt.Println("Seeded company:", root.Name, root.ID)
	} else {
		fmt.Println("company already exists:", root.Name, root.ID)
	}

	users := auth.NewService(authRepo.NewRepository(gdb, uniqueness.NewGuard(lg)), cfg.Security.BCryptCost, lg)
	admin, err := users.Register(ctx, auth.RegisterDTO{
		CompanyID: root.ID,
		Name:      "Administrator",
		Email:     seedAdminEmail,
		Role:      auth.RoleAdmin,
		Password:  seedAdminPassword,
	})
	switch {
	case internal.IsConflict(err):
		fmt.Println("admin user already exists:", seedAdminEmail)
	case err != nil:
		return fmt.Errorf("register admin: %w", err)
	default:
		fmt.Println("Seeded admin user:", admin.Email)
	}
	return nil
}
