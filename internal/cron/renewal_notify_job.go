package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budunsigorta/backend/pkg/db/models"
	"github.com/budunsigorta/backend/pkg/logger"
	"github.com/budunsigorta/backend/pkg/tenant"
)

const defaultNotifyWindowDays = 14

type renewalPolicySource interface {
	DueBetween(ctx context.Context, actor tenant.Actor, from, to time.Time) ([]models.Policy, error)
	StampNotified(ctx context.Context, ids []uuid.UUID, on time.Time) error
}

// RenewalNotifyJobParams configure the renewal reminder job.
type RenewalNotifyJobParams struct {
	Policies   renewalPolicySource
	Logger     *logger.Logger
	WindowDays int
	Now        func() time.Time
}

// RenewalNotifyJob surfaces policies approaching their end date and
// stamps them so a policy is only flagged once per day.
type RenewalNotifyJob struct {
	policies renewalPolicySource
	logg     *logger.Logger
	window   int
	now      func() time.Time
}

func NewRenewalNotifyJob(params RenewalNotifyJobParams) (*RenewalNotifyJob, error) {
	if params.Policies == nil {
		return nil, fmt.Errorf("policy source required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	window := params.WindowDays
	if window <= 0 {
		window = defaultNotifyWindowDays
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &RenewalNotifyJob{
		policies: params.Policies,
		logg:     params.Logger,
		window:   window,
		now:      now,
	}, nil
}

func (j *RenewalNotifyJob) Name() string { return "renewal-notify" }

func (j *RenewalNotifyJob) Run(ctx context.Context) error {
	now := j.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// The worker sees every tenant.
	worker := tenant.Actor{Username: "cron", IsAdmin: true}
	due, err := j.policies.DueBetween(ctx, worker, today, today.AddDate(0, 0, j.window))
	if err != nil {
		return fmt.Errorf("load due policies: %w", err)
	}

	pending := make([]uuid.UUID, 0, len(due))
	for _, policy := range due {
		if policy.LastNotifiedOn != nil && !policy.LastNotifiedOn.Before(today) {
			continue
		}
		pending = append(pending, policy.ID)
		j.logg.Info(j.logg.WithFields(ctx, map[string]any{
			"policy_id": policy.ID.String(),
			"customer":  policy.CustomerName,
			"end_date":  policy.EndDate.Format(time.DateOnly),
		}), "renewal reminder")
	}
	if len(pending) == 0 {
		return nil
	}
	if err := j.policies.StampNotified(ctx, pending, today); err != nil {
		return fmt.Errorf("stamp notified policies: %w", err)
	}
	j.logg.Info(j.logg.WithField(ctx, "notified", len(pending)), "renewal reminders recorded")
	return nil
}
