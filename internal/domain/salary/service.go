package salary

import (
	"context"
)

// Calculator produces the final salary figure for a period: base salary
// minus active penalties, floored at zero. Stateless and idempotent;
// safe to call repeatedly and concurrently.
type Calculator interface {
	Calculate(ctx context.Context, req CalculateRequest) (Calculation, error)
}
