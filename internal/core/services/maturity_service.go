package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"sncs-coopledger/internal/adapters/persistence/repositories"
	"sncs-coopledger/internal/core/domain"
)

// Default morning sweep, before the counters open
const defaultMaturitySpec = "30 8 * * *"

// MaturityService flips term accounts whose maturity date has passed from
// Active to Matured. The sweep runs daily on a cron schedule and can also be
// invoked directly for a manual run.
type MaturityService struct {
	accountRepo repositories.AccountRepository
	cron        *cron.Cron
	spec        string
}

// NewMaturityService creates a new maturity sweep service.
// An empty spec falls back to the default daily schedule.
func NewMaturityService(accountRepo repositories.AccountRepository, spec string) *MaturityService {
	if spec == "" {
		spec = defaultMaturitySpec
	}
	return &MaturityService{
		accountRepo: accountRepo,
		cron:        cron.New(),
		spec:        spec,
	}
}

// Start schedules the daily sweep
func (s *MaturityService) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if n, err := s.Sweep(context.Background(), time.Now()); err != nil {
			log.Printf("❌ Maturity sweep failed: %v", err)
		} else if n > 0 {
			log.Printf("✅ Maturity sweep marked %d account(s) matured", n)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("✅ Maturity sweep scheduled (%s)", s.spec)
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish
func (s *MaturityService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep marks every Active term account with a maturity date on or before
// asOf as Matured, and returns how many it changed. Accounts closed or
// defaulted in the meantime are left alone.
func (s *MaturityService) Sweep(ctx context.Context, asOf time.Time) (int, error) {
	candidates, err := s.accountRepo.ListMaturedCandidates(ctx, domain.DateOnly(asOf))
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, account := range candidates {
		if account.Status != domain.StatusActive {
			continue
		}
		account.Status = domain.StatusMatured
		if err := s.accountRepo.Update(ctx, account); err != nil {
			return marked, err
		}
		marked++
	}
	return marked, nil
}
