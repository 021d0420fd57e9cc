package job_roles

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"sdc_backend/internals/features/catalog/job_roles/model"
	"sdc_backend/internals/features/catalog/job_roles/service"
)

type JobRoleSeed struct {
	Code         string  `yaml:"code"`
	Name         string  `yaml:"name"`
	Category     string  `yaml:"category"`
	RatePerHour  float64 `yaml:"rate_per_hour"`
	TotalHours   int     `yaml:"total_training_hours"`
	DailyHours   int     `yaml:"default_daily_hours"`
	AwardingBody string  `yaml:"awarding_body"`
	SchemeName   string  `yaml:"scheme_name"`
}

type catalogFile struct {
	JobRoles []JobRoleSeed `yaml:"job_roles"`
}

// ParseCatalog decodes and checks a job role catalog.
func ParseCatalog(content []byte) ([]model.JobRoleModel, error) {
	var f catalogFile
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	rows := make([]model.JobRoleModel, 0, len(f.JobRoles))
	seen := make(map[string]bool, len(f.JobRoles))
	for i, item := range f.JobRoles {
		item.Code = strings.ToUpper(strings.TrimSpace(item.Code))
		item.Name = strings.TrimSpace(item.Name)
		if item.Code == "" || item.Name == "" {
			return nil, fmt.Errorf("entry %d: code and name are required", i)
		}
		if seen[item.Code] {
			return nil, fmt.Errorf("entry %d: duplicate code %s", i, item.Code)
		}
		seen[item.Code] = true
		if item.RatePerHour <= 0 || item.TotalHours <= 0 {
			return nil, fmt.Errorf("%s: rate_per_hour and total_training_hours must be positive", item.Code)
		}
		cat := model.JobRoleCategory(item.Category)
		if cat == "" {
			cat = model.JobRoleCategoryCustom
		}
		if !cat.Valid() {
			return nil, fmt.Errorf("%s: unknown category %q", item.Code, item.Category)
		}
		daily := item.DailyHours
		if daily == 0 {
			daily = 8
		}
		rows = append(rows, model.JobRoleModel{
			JobRoleCode:               item.Code,
			JobRoleName:               item.Name,
			JobRoleCategory:           cat,
			JobRoleRatePerHour:        item.RatePerHour,
			JobRoleTotalTrainingHours: item.TotalHours,
			JobRoleDefaultDailyHours:  daily,
			JobRoleAwardingBody:       item.AwardingBody,
			JobRoleSchemeName:         item.SchemeName,
			JobRoleIsActive:           true,
		})
	}
	return rows, nil
}

func SeedJobRolesFromYAML(ctx context.Context, db *gorm.DB, filePath string) (int64, error) {
	log.Println("📥 Reading file:", filePath)

	content, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filePath, err)
	}
	rows, err := ParseCatalog(content)
	if err != nil {
		return 0, err
	}
	n, err := service.New(db).UpsertByCode(ctx, rows)
	if err != nil {
		return 0, err
	}
	log.Printf("✅ seeded %d job roles from %s", n, filePath)
	return n, nil
}
