package jobs

import (
	"context"
	"time"

	"hbnb-booking/internal/usecase"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CompletionSweeper periodically marks confirmed bookings whose
// check-out date has passed as completed. Running it is a deployment
// choice; the on-demand complete endpoint works without it.
type CompletionSweeper struct {
	service usecase.BookingService
	cron    *cron.Cron
	log     *zap.Logger
}

func NewCompletionSweeper(service usecase.BookingService, log *zap.Logger) *CompletionSweeper {
	return &CompletionSweeper{
		service: service,
		cron:    cron.New(),
		log:     log.With(zap.String("job", "completion_sweeper")),
	}
}

// Start schedules the sweep with the given cron spec.
func (s *CompletionSweeper) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("Completion sweeper started", zap.String("cron", spec))
	return nil
}

// Stop waits for a running sweep to finish.
func (s *CompletionSweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *CompletionSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	completed, err := s.service.CompleteDueBookings(ctx)
	if err != nil {
		s.log.Error("Completion sweep failed", zap.Error(err))
		return
	}

	if completed > 0 {
		s.log.Info("Completion sweep finished", zap.Int("completed", completed))
	}
}
