// internal/seed/seed.go
package seed

import (
	"context"
	"log"

	"github.com/Marga-Ghale/daily-schedule-backend/internal/models"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/service"
)

// DefaultPassword is the password of every seeded member and schedule.
const DefaultPassword = "password123"

// SeedData creates development members and schedules through the services so
// passwords are stored the way the configured matcher expects. It does
// nothing when any member already exists.
func SeedData(ctx context.Context, services *service.Services) error {
	existing, err := services.Member.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Println("[Seed] Data already exists, skipping...")
		return nil
	}

	log.Println("[Seed] 🌱 Creating initial members and schedules...")

	// ============================================
	// MEMBERS
	// ============================================
	members := []models.MemberRequest{
		{UserID: "marga", Password: DefaultPassword, Name: "Marga Ghale", Email: "marga@example.com"},
		{UserID: "bipin", Password: DefaultPassword, Name: "Bipin Dhimal", Email: "bipin@example.com"},
		{UserID: "kritim", Password: DefaultPassword, Name: "Kritim Kafle", Email: "kritim@example.com"},
	}

	ids := make(map[string]int64, len(members))
	for _, req := range members {
		m, err := services.Member.Create(ctx, req)
		if err != nil {
			return err
		}
		ids[m.UserID] = m.ID
	}
	log.Printf("✅ Created %d members", len(ids))

	// ============================================
	// SCHEDULES
	// ============================================
	schedules := []struct {
		owner string
		title string
		desc  string
	}{
		{"marga", "Sprint planning", "Plan the next two weeks"},
		{"marga", "1:1 with Bipin", ""},
		{"bipin", "Code review", "Review the pagination changes"},
		{"bipin", "Gym", ""},
		{"kritim", "Design sync", "Calendar view mockups"},
	}

	for _, s := range schedules {
		memberID := ids[s.owner]
		_, err := services.Schedule.Create(ctx, models.CreateScheduleRequest{
			Title:       s.title,
			Author:      s.owner,
			Password:    DefaultPassword,
			Description: s.desc,
			MemberID:    &memberID,
		})
		if err != nil {
			return err
		}
	}
	log.Printf("✅ Created %d schedules", len(schedules))

	log.Println("[Seed] ✅ Seed completed")
	return nil
}
