package users

import (
	"context"
	"fmt"
	"log/slog"

	"Postify/internal/core/validation"
)

const (
	// DevUserCount is the number of accounts created by SeedDevUsers
	DevUserCount = 15
	// DevPassword is shared by every seeded account
	DevPassword = "P4ssword"
)

// SeedDevUsers registers user1..userN with display names display1..displayN.
// Accounts that already exist are left untouched. Returns how many were created.
func SeedDevUsers(ctx context.Context, service UserService, count int) (int, error) {
	created := 0
	for i := 1; i <= count; i++ {
		_, err := service.CreateUser(ctx, CreateUserRequest{
			Username:    fmt.Sprintf("user%d", i),
			DisplayName: fmt.Sprintf("display%d", i),
			Password:    DevPassword,
		})
		if err != nil {
			if validation.IsValidationError(err) {
				continue
			}
			return created, fmt.Errorf("failed to seed user%d: %w", i, err)
		}
		created++
	}

	if created > 0 {
		slog.Info("[USER-CREATE] seeded development users", "count", created)
	}
	return created, nil
}
