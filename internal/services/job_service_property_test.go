package services

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/AvirupSahaAug/Role-Juggler/internal/database/models"
)

// For any (user, company) pair, resolving the job any number of times yields
// exactly one job row, carrying the default name and color on first creation.

func TestProperty_JobResolutionIdempotency(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	companyGen := gen.SliceOfN(10, gen.AlphaChar()).Map(func(chars []rune) string {
		return string(chars)
	})

	properties.Property("repeated_resolution_yields_one_job", prop.ForAll(
		func(company string, repeats int) bool {
			db, cleanup := setupTestDB(t)
			defer cleanup()

			userService := NewUserService(db, testEncryptionKey)
			user := createTestUser(t, userService, "jobuser")
			service := NewJobService(db)

			var firstID uint
			for i := 0; i < repeats; i++ {
				job, err := service.GetOrCreateByCompany(nil, user.ID, company)
				if err != nil {
					return false
				}
				if i == 0 {
					firstID = job.ID
					if job.Name != fmt.Sprintf("%s Work", company) || job.Color != models.DefaultJobColor {
						return false
					}
				} else if job.ID != firstID {
					return false
				}
			}

			var count int64
			db.Model(&models.Job{}).Where("user_id = ? AND company = ?", user.ID, company).Count(&count)
			return count == 1
		},
		companyGen,
		gen.IntRange(1, 5),
	))

	properties.Property("distinct_companies_get_distinct_jobs", prop.ForAll(
		func(companyA, companyB string) bool {
			if companyA == companyB {
				return true
			}

			db, cleanup := setupTestDB(t)
			defer cleanup()

			userService := NewUserService(db, testEncryptionKey)
			user := createTestUser(t, userService, "jobuser")
			service := NewJobService(db)

			jobA, err := service.GetOrCreateByCompany(nil, user.ID, companyA)
			if err != nil {
				return false
			}
			jobB, err := service.GetOrCreateByCompany(nil, user.ID, companyB)
			if err != nil {
				return false
			}
			return jobA.ID != jobB.ID
		},
		companyGen,
		companyGen,
	))

	properties.TestingRun(t)
}
