package job

import (
	"context"

	"github.com/maheshrc27/autopost/internal/service"
)

type SchedulerJob struct {
	scheduler service.SchedulerService
}

func NewSchedulerJob(scheduler service.SchedulerService) *SchedulerJob {
	return &SchedulerJob{scheduler: scheduler}
}

func (j *SchedulerJob) Name() string { return "scheduler" }

func (j *SchedulerJob) Run(ctx context.Context) error {
	_, err := j.scheduler.Tick(ctx)
	return err
}

// ReviewJob reviews the configured site on each run.
type ReviewJob struct {
	reviews service.ReviewService
}

func NewReviewJob(reviews service.ReviewService) *ReviewJob {
	return &ReviewJob{reviews: reviews}
}

func (j *ReviewJob) Name() string { return "site-review" }

func (j *ReviewJob) Run(ctx context.Context) error {
	_, err := j.reviews.Run(ctx, nil)
	return err
}
