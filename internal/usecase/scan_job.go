package usecase

import (
	"context"
	"fmt"
	"time"

	"TradeCommittee/internal/domain/models"
	"TradeCommittee/pkg/cache"
	applogger "TradeCommittee/pkg/logger"
	"TradeCommittee/pkg/queue"
)

const (
	ScanJobType    = "committee.scan"
	lastScanKey    = "scan:last"
	scanResultKeyF = "scan:result:%s"
	scanResultTTL  = 24 * time.Hour
)

// ScanJob runs queued watchlist scans in the background and caches the
// result so API clients can poll for it.
type ScanJob struct {
	scanner *Scanner
	cache   cache.Service
	logger  *applogger.Logger
}

func NewScanJob(scanner *Scanner, c cache.Service, l *applogger.Logger) *ScanJob {
	return &ScanJob{scanner: scanner, cache: c, logger: l}
}

func (j *ScanJob) Name() string { return "committee_scan" }

func (j *ScanJob) Type() string { return ScanJobType }

func (j *ScanJob) Handle(ctx context.Context, payload interface{}) error {
	req, err := queue.ParsePayload[models.ScanRequest](payload)
	if err != nil {
		return fmt.Errorf("scan job payload: %w", err)
	}

	result, err := j.scanner.Scan(ctx, req)
	if err != nil {
		return fmt.Errorf("scan job: %w", err)
	}

	if err := j.cache.Set(ctx, fmt.Sprintf(scanResultKeyF, result.ScanID), result, scanResultTTL); err != nil {
		j.logger.Warn("scan result cache failed", applogger.Error(err))
	}
	if err := j.cache.Set(ctx, lastScanKey, result, scanResultTTL); err != nil {
		j.logger.Warn("scan result cache failed", applogger.Error(err))
	}
	return nil
}

// LastScanResult returns the most recent completed scan, if any.
func LastScanResult(ctx context.Context, c cache.Service) (*models.ScanResult, error) {
	var result models.ScanResult
	if err := c.Get(ctx, lastScanKey, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

var _ queue.Job = (*ScanJob)(nil)
