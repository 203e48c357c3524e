package checklist

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/showroom-hq/backoffice-go/internal/domain/checklist"
)

// Client notifies the checklist service about attendance events over
// HTTP. Callers treat every method as best-effort.
type Client struct {
	httpClient *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	restyClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout).
		SetRetryCount(2)

	return &Client{httpClient: restyClient}
}

type eventPayload struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (c *Client) notify(ctx context.Context, path string, employeeID string, date time.Time) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(eventPayload{
			EmployeeID: employeeID,
			Date:       date.Format("2006-01-02"),
		}).
		Post(path)
	if err != nil {
		return fmt.Errorf("checklist notify %s: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("checklist notify %s: status %d", path, resp.StatusCode())
	}
	return nil
}

func (c *Client) OnCheckIn(ctx context.Context, employeeID string, date time.Time) error {
	return c.notify(ctx, "/events/check-in", employeeID, date)
}

func (c *Client) OnLeaveMarked(ctx context.Context, employeeID string, date time.Time) error {
	return c.notify(ctx, "/events/leave-marked", employeeID, date)
}

func (c *Client) OnLeaveCancelled(ctx context.Context, employeeID string, date time.Time) error {
	return c.notify(ctx, "/events/leave-cancelled", employeeID, date)
}

// NopNotifier is used when no checklist service is configured.
type NopNotifier struct{}

func (NopNotifier) OnCheckIn(context.Context, string, time.Time) error        { return nil }
func (NopNotifier) OnLeaveMarked(context.Context, string, time.Time) error    { return nil }
func (NopNotifier) OnLeaveCancelled(context.Context, string, time.Time) error { return nil }

var (
	_ checklist.Notifier = (*Client)(nil)
	_ checklist.Notifier = NopNotifier{}
)
