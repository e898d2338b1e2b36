package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// LoanReviewer is satisfied by command.LoanCommandService.
type LoanReviewer interface {
	ReviewPendingLoans(ctx context.Context) (int, error)
}

// LoanReviewJob sweeps pending loans through the automatic review policy.
type LoanReviewJob struct {
	reviewer LoanReviewer
	timeout  time.Duration
	log      logrus.FieldLogger
}

func NewLoanReviewJob(reviewer LoanReviewer, timeout time.Duration, log logrus.FieldLogger) *LoanReviewJob {
	return &LoanReviewJob{reviewer: reviewer, timeout: timeout, log: log}
}

// Run implements cron.Job.
func (j *LoanReviewJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	decided, err := j.reviewer.ReviewPendingLoans(ctx)
	entry := j.log.WithFields(logrus.Fields{
		"decided":  decided,
		"duration": time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Error("Loan review sweep finished with errors")
		return
	}
	if decided > 0 {
		entry.Info("Loan review sweep decided loans")
		return
	}
	entry.Debug("Loan review sweep found nothing to decide")
}

// Scheduler runs jobs on cron schedules until its context ends.
type Scheduler struct {
	cron *cron.Cron
	log  logrus.FieldLogger
}

func NewScheduler(log logrus.FieldLogger) *Scheduler {
	logger := cron.PrintfLogger(log)
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		)),
		log: log,
	}
}

// Add registers job under a standard cron spec or a descriptor such as
// "@every 1m".
func (s *Scheduler) Add(spec string, job cron.Job) error {
	if _, err := s.cron.AddJob(spec, job); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

// Run starts the scheduler and blocks until ctx is done, then waits for
// running jobs to finish.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	s.log.WithField("jobs", len(s.cron.Entries())).Info("Scheduler started")
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info("Scheduler stopped")
}
