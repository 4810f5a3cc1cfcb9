package cmd

import (
	"errors"
	"fmt"
	"time"

	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	projectDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/project"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	seedPassword    = "password"
	seedProjectName = "Sample Project"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with an admin, a manager, an employee and a sample project owned by the manager.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		gdb, err := initGorm(db)
		if err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), cfg.Security.BCryptCost)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		return gdb.Transaction(func(tx *gorm.DB) error {
			return seed(tx, string(hash))
		})
	},
}

func seed(tx *gorm.DB, hash string) error {
	seeds := []struct {
		username string
		email    string
		dept     string
		role     string
	}{
		{"admin", "admin@example.com", "Management", coreUser.RoleAdmin},
		{"manager", "manager@example.com", "RnD", coreUser.RoleManager},
		{"employee", "employee@example.com", "RnD", coreUser.RoleEmployee},
	}

	ids := make(map[string]int64, len(seeds))
	for _, s := range seeds {
		var u userDatamodel.User
		err := tx.Where("username = ?", s.username).First(&u).Error
		switch {
		case err == nil:
			fmt.Println("user already exists:", s.username)
		case errors.Is(err, gorm.ErrRecordNotFound):
			email, dept := s.email, s.dept
			u = userDatamodel.User{
				Username:     s.username,
				PasswordHash: hash,
				Email:        &email,
				Department:   &dept,
				Role:         s.role,
			}
			if err := tx.Create(&u).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", s.username, err)
			}
			fmt.Println("Seeded user:", s.username)
		default:
			return err
		}
		ids[s.username] = u.ID
	}

	var p projectDatamodel.Project
	err := tx.Where("name = ?", seedProjectName).First(&p).Error
	if err == nil {
		fmt.Println("project already exists:", seedProjectName)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	desc := "Seeded for development"
	p = projectDatamodel.Project{
		Name:        seedProjectName,
		Description: &desc,
		CreatedBy:   ids["manager"],
		CreatedAt:   time.Now().UTC(),
	}
	if err := tx.Create(&p).Error; err != nil {
		return fmt.Errorf("seed project: %w", err)
	}
	members := []projectDatamodel.ProjectMember{
		{ProjectID: p.ID, UserID: ids["manager"], Role: coreUser.ProjectOwnerRole},
		{ProjectID: p.ID, UserID: ids["employee"], Role: "developer"},
	}
	if err := tx.Create(&members).Error; err != nil {
		return fmt.Errorf("seed project members: %w", err)
	}
	fmt.Println("Seeded project:", seedProjectName)
	return nil
}
