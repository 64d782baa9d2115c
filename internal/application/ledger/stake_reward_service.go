package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/bitcorn/backend/internal/domain/ledger"
	"github.com/bitcorn/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Abort reasons for a stake reward run.
const (
	AbortReasonSeedInsufficient = "SEED_INSUFFICIENT"
)

// RecipientFailure records one recipient whose reward transfer failed.
type RecipientFailure struct {
	Address string `json:"address"`
	Reason  string `json:"reason"`
}

// BatchReport summarizes a stake reward run.
type BatchReport struct {
	StartedAt   time.Time          `json:"started_at"`
	FinishedAt  time.Time          `json:"finished_at"`
	Aborted     bool               `json:"aborted"`
	AbortReason string             `json:"abort_reason,omitempty"`
	Eligible    int                `json:"eligible"`
	Succeeded   int                `json:"succeeded"`
	Failed      int                `json:"failed"`
	Failures    []RecipientFailure `json:"failures,omitempty"`
}

// StakeRewardService pays the fixed periodic reward from the seed address
// to every sufficiently funded address. The unit of failure is the
// recipient, not the run: one failed payout is recorded and the run moves
// on. Only a missing or under-reserve seed aborts the run, and it does so
// before any recipient is touched.
type StakeRewardService struct {
	addresses   ledger.AddressRepository
	engine      *TransferEngine
	seedAddress string
	logger      *zap.Logger
}

// NewStakeRewardService creates a new StakeRewardService
func NewStakeRewardService(
	addresses ledger.AddressRepository,
	engine *TransferEngine,
	seedAddress string,
	logger *zap.Logger,
) *StakeRewardService {
	return &StakeRewardService{
		addresses:   addresses,
		engine:      engine,
		seedAddress: ledger.NormalizeAddress(seedAddress),
		logger:      logger,
	}
}

// Run executes one reward pass and reports the outcome. The returned
// error is non-nil only when the eligibility scan itself fails; individual
// payout failures live in the report.
func (s *StakeRewardService) Run(ctx context.Context) (*BatchReport, error) {
	report := &BatchReport{StartedAt: time.Now()}

	seed, err := s.addresses.FindByAddress(ctx, s.seedAddress)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.abort(report, "seed address does not exist"), nil
		}
		return nil, err
	}
	if seed.CornletBalance < ledger.SeedReserveCornlets {
		return s.abort(report, "seed balance below reserve"), nil
	}

	err = s.addresses.ForEachEligible(ctx, ledger.StakeMinBalanceCornlets, s.seedAddress, func(addr *ledger.Address) error {
		report.Eligible++
		if _, err := s.engine.Transfer(ctx, s.seedAddress, addr.Address, ledger.StakeRewardCornlets); err != nil {
			report.Failed++
			report.Failures = append(report.Failures, RecipientFailure{
				Address: addr.Address,
				Reason:  err.Error(),
			})
			s.logger.Info("Stake reward payout failed",
				zap.String("address", addr.Address),
				zap.Error(err),
			)
			return nil
		}
		report.Succeeded++
		return nil
	})
	report.FinishedAt = time.Now()
	if err != nil {
		return report, err
	}

	s.logger.Info("Stake reward run finished",
		zap.Int("eligible", report.Eligible),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

// abort finalizes a run that stopped before touching any recipient.
func (s *StakeRewardService) abort(report *BatchReport, detail string) *BatchReport {
	report.Aborted = true
	report.AbortReason = AbortReasonSeedInsufficient
	report.FinishedAt = time.Now()
	s.logger.Info("Stake reward run aborted",
		zap.String("reason", report.AbortReason),
		zap.String("detail", detail),
	)
	return report
}
