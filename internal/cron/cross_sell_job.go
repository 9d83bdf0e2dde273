package cron

import (
	"context"
	"fmt"

	"github.com/budunsigorta/backend/pkg/logger"
)

type opportunityGenerator interface {
	Run(ctx context.Context) (int, error)
}

// CrossSellJobParams configure the nightly opportunity generator job.
type CrossSellJobParams struct {
	Generator opportunityGenerator
	Logger    *logger.Logger
}

// CrossSellJob runs the cross-sell generator on the cron cadence.
type CrossSellJob struct {
	generator opportunityGenerator
	logg      *logger.Logger
}

func NewCrossSellJob(params CrossSellJobParams) (*CrossSellJob, error) {
	if params.Generator == nil {
		return nil, fmt.Errorf("generator required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &CrossSellJob{generator: params.Generator, logg: params.Logger}, nil
}

func (j *CrossSellJob) Name() string { return "cross-sell-generate" }

func (j *CrossSellJob) Run(ctx context.Context) error {
	created, err := j.generator.Run(ctx)
	if err != nil {
		return fmt.Errorf("generate opportunities: %w", err)
	}
	j.logg.Info(j.logg.WithField(ctx, "created", created), "cross-sell opportunities generated")
	return nil
}
