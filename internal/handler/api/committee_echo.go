package api

import (
	"time"

	models "TradeCommittee/internal/domain/models"
	domrepo "TradeCommittee/internal/domain/repository"
	"TradeCommittee/internal/repository"
	"TradeCommittee/internal/service/ratelimit"
	"TradeCommittee/internal/usecase"
	"TradeCommittee/pkg/cache"
	xhttp "TradeCommittee/pkg/http"
	xlogger "TradeCommittee/pkg/logger"
	"TradeCommittee/pkg/queue"

	"github.com/labstack/echo/v4"
)

// CommitteeEchoHandler exposes committee evaluation over HTTP.
type CommitteeEchoHandler struct {
	logger    *xlogger.Logger
	evaluator *usecase.CommitteeEvaluator
	scanner   *usecase.Scanner
	store     domrepo.DecisionStore
	calendar  *repository.CatalystCalendar
	snapshots domrepo.SnapshotStore
	queue     queue.QueueService
	cache     cache.Service
	limiter   *ratelimit.Limiter
	scanRPS   float64
}

func NewCommitteeEchoHandler(
	logger *xlogger.Logger,
	evaluator *usecase.CommitteeEvaluator,
	scanner *usecase.Scanner,
	store domrepo.DecisionStore,
	calendar *repository.CatalystCalendar,
	snapshots domrepo.SnapshotStore,
	q queue.QueueService,
	c cache.Service,
	limiter *ratelimit.Limiter,
	scanRPS float64,
) *CommitteeEchoHandler {
	if scanRPS <= 0 {
		scanRPS = 1
	}
	return &CommitteeEchoHandler{
		logger:    logger,
		evaluator: evaluator,
		scanner:   scanner,
		store:     store,
		calendar:  calendar,
		snapshots: snapshots,
		queue:     q,
		cache:     c,
		limiter:   limiter,
		scanRPS:   scanRPS,
	}
}

func (h *CommitteeEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/evaluate", h.Evaluate)
	g.POST("/scan", h.Scan)
	g.GET("/scan/last", h.LastScan)
	g.GET("/decisions", h.Decisions)
	g.GET("/catalysts", h.ListCatalysts)
	g.POST("/catalysts/:symbol", h.SetCatalyst)
	g.DELETE("/catalysts/:symbol", h.RemoveCatalyst)
	g.POST("/market", h.SetMarket)
}

func (h *CommitteeEchoHandler) Evaluate(c echo.Context) error {
	req := &models.EvaluateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	decision := h.evaluator.Evaluate(c.Request().Context(), req)
	return xhttp.SuccessResponse(c, decision)
}

func (h *CommitteeEchoHandler) Scan(c echo.Context) error {
	if h.limiter != nil && !h.limiter.Allow("scan:"+c.RealIP(), h.scanRPS, h.scanRPS) {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("rate_limited", "", "scan rate limit exceeded", 429))
	}

	req := &models.ScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if req.Async {
		if h.queue == nil {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("async scans are not enabled"))
		}
		if err := h.queue.PublishMessage(c.Request().Context(), usecase.ScanJobType, req); err != nil {
			h.logger.Error("scan enqueue error", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, err)
		}
		return xhttp.DataResponse(c, 202, map[string]string{"status": "queued"})
	}

	result, err := h.scanner.Scan(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("scan usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *CommitteeEchoHandler) LastScan(c echo.Context) error {
	result, err := usecase.LastScanResult(c.Request().Context(), h.cache)
	if err != nil {
		return xhttp.NotFoundResponse(c, map[string]string{"message": "no completed scan"})
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *CommitteeEchoHandler) Decisions(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return xhttp.BadRequestResponse(c, map[string]string{"symbol": "symbol is required"})
	}
	now := time.Now().UTC()
	from := xhttp.ParseTimeDefault(c.QueryParam("from"), now.AddDate(0, 0, -7))
	to := xhttp.ParseTimeDefault(c.QueryParam("to"), now)
	limit := xhttp.ParseIntDefault(c.QueryParam("limit"), 100)

	rows, err := h.store.Query(c.Request().Context(), symbol, from, to, limit)
	if err != nil {
		h.logger.Error("decision query error", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

func (h *CommitteeEchoHandler) ListCatalysts(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.calendar.Snapshot())
}

func (h *CommitteeEchoHandler) SetCatalyst(c echo.Context) error {
	symbol := c.Param("symbol")
	event := &models.CatalystDescriptor{}
	if verr := xhttp.ReadAndValidateRequest(c, event); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	h.calendar.Set(symbol, *event)
	return xhttp.CreatedResponse(c, map[string]string{"symbol": symbol})
}

func (h *CommitteeEchoHandler) RemoveCatalyst(c echo.Context) error {
	h.calendar.Remove(c.Param("symbol"))
	return xhttp.NoContentResponse(c)
}

// SetMarket stores the market snapshot the scanner falls back to when a
// scan request does not carry one.
func (h *CommitteeEchoHandler) SetMarket(c echo.Context) error {
	snap := &models.MarketSnapshot{}
	if verr := xhttp.ReadAndValidateRequest(c, snap); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err := h.snapshots.PutMarket(c.Request().Context(), *snap); err != nil {
		h.logger.Error("market snapshot store error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, snap)
}
