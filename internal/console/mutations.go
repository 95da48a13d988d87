package console

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"leadconsole/internal/domain"
	"leadconsole/internal/errnorm"
)

var ErrMissingID = errors.New("lead id is required")

// Create validates in before anything is sent. A *domain.ValidationError
// means no request was made; any other error means the Leads API refused
// it. In both cases the caller keeps the form open with in intact.
func (c *Controller) Create(ctx context.Context, in domain.LeadInput) error {
	if err := c.val.Struct(in); err != nil {
		return err
	}

	if err := c.api.CreateLead(ctx, in); err != nil {
		c.fail("lead_create_failed", err)
		return err
	}

	c.notify.Notify(Toast{Level: LevelSuccess, Message: "Lead added"})
	_, _ = c.FetchPage(ctx, 1)
	return nil
}

// Delete removes a lead and then reloads page 1 whether or not the delete
// succeeded. A failed delete raises a sticky toast so the refreshed list
// does not hide it.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}

	err := c.api.DeleteLead(ctx, id)
	if err != nil {
		msg := errnorm.Message(err)
		c.log.Warn("lead_delete_failed", slog.String("id", id), slog.String("error", err.Error()), slog.String("message", msg))
		c.notify.Notify(Toast{Level: LevelError, Message: msg, Sticky: true})
	} else {
		c.notify.Notify(Toast{Level: LevelSuccess, Message: "Record removed"})
	}

	_, _ = c.FetchPage(ctx, 1)
	return err
}
