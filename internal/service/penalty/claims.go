package penalty

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// Helper to get business_unit_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (businessUnitID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	businessUnitID, ok := claims["business_unit_id"].(string)
	if !ok || businessUnitID == "" {
		return "", "", fmt.Errorf("business_unit_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return businessUnitID, userID, nil
}
