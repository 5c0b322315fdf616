package service

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"resifee-be-svc/internal/models"
	"resifee-be-svc/internal/models/response"
	"resifee-be-svc/internal/repository"
	"resifee-be-svc/pkg/logger"
)

// ErrInvalidGroupBy is returned for an unknown period bucket size
var ErrInvalidGroupBy = errors.New("groupBy không hợp lệ, chỉ chấp nhận day, month hoặc year")

// StatisticsService defines the interface for aggregate statistics operations
type StatisticsService interface {
	GetOverall(start, end time.Time) (*response.OverallStatistics, error)
	GetByFeeType(start, end time.Time) ([]*response.StatisticsGroup, error)
	GetByHousehold(start, end time.Time) ([]*response.StatisticsGroup, error)
	GetByCollector(start, end time.Time) ([]*response.StatisticsGroup, error)
	GetByPaymentStatus(start, end time.Time) ([]*response.StatisticsGroup, error)
	GetByPeriod(start, end time.Time, groupBy string) ([]*response.StatisticsGroup, error)
}

// statisticsService implements StatisticsService
type statisticsService struct {
	statsRepo repository.StatisticsRepository
	logger    *logger.Logger
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(statsRepo repository.StatisticsRepository, logger *logger.Logger) StatisticsService {
	return &statisticsService{
		statsRepo: statsRepo,
		logger:    logger,
	}
}

// normalizeRange applies the default rolling 12-month window ending now when
// either bound is missing
func normalizeRange(start, end time.Time) (time.Time, time.Time) {
	if end.IsZero() {
		end = time.Now()
	}
	if start.IsZero() {
		start = end.AddDate(0, -12, 0)
	}
	return start, end
}

// GetOverall computes the summary across the whole range, bucketing bill
// counts by derived status. The "other" bucket absorbs whatever the three
// named buckets do not cover and is floored at zero.
func (s *statisticsService) GetOverall(start, end time.Time) (*response.OverallStatistics, error) {
	start, end = normalizeRange(start, end)

	bills, err := s.statsRepo.GetBillsInRange(start, end)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get bills for overall statistics")
		return nil, err
	}

	now := time.Now()
	result := &response.OverallStatistics{
		TotalRevenue: decimal.Zero,
		TotalPaid:    decimal.Zero,
		UnpaidAmount: decimal.Zero,
	}

	for _, bill := range bills {
		result.TotalBills++
		result.TotalRevenue = result.TotalRevenue.Add(bill.TotalAmount)
		result.TotalPaid = result.TotalPaid.Add(bill.PaidAmount)

		switch ClassifyBillStatus(bill.TotalAmount, bill.PaidAmount, bill.BillingPeriod, now) {
		case StatusPaid:
			result.PaidCount++
		case StatusPartial:
			result.PartialCount++
		case StatusUnpaid:
			result.UnpaidCount++
		}
	}

	result.UnpaidAmount = result.TotalRevenue.Sub(result.TotalPaid)
	result.OtherCount = result.TotalBills - result.PaidCount - result.UnpaidCount - result.PartialCount
	if result.OtherCount < 0 {
		result.OtherCount = 0
	}

	s.logger.WithFields(map[string]interface{}{
		"total_bills": result.TotalBills,
		"start":       start.Format("2006-01-02"),
		"end":         end.Format("2006-01-02"),
	}).Info("Overall statistics computed")

	return result, nil
}

// groupAccumulator collects decimal totals for one group key
type groupAccumulator struct {
	id      uint
	bills   int64
	revenue decimal.Decimal
	paid    decimal.Decimal
}

func newAccumulator(id uint) *groupAccumulator {
	return &groupAccumulator{
		id:      id,
		revenue: decimal.Zero,
		paid:    decimal.Zero,
	}
}

func (g *groupAccumulator) add(bill *models.Bill) {
	g.bills++
	g.revenue = g.revenue.Add(bill.TotalAmount)
	g.paid = g.paid.Add(bill.PaidAmount)
}

func (g *groupAccumulator) toGroup(key string) *response.StatisticsGroup {
	return &response.StatisticsGroup{
		GroupKey:     key,
		GroupID:      g.id,
		TotalBills:   g.bills,
		TotalRevenue: g.revenue,
		TotalPaid:    g.paid,
		UnpaidAmount: g.revenue.Sub(g.paid),
	}
}

// groupByID aggregates bills keyed by an entity ID, then resolves display
// names in a second pass with one batched lookup over the collected id set
func (s *statisticsService) groupByID(
	bills []*models.Bill,
	keyOf func(*models.Bill) uint,
	resolve func([]uint) (map[uint]string, error),
	fallback string,
) ([]*response.StatisticsGroup, error) {
	groups := make(map[uint]*groupAccumulator)
	for _, bill := range bills {
		id := keyOf(bill)
		acc, ok := groups[id]
		if !ok {
			acc = newAccumulator(id)
			groups[id] = acc
		}
		acc.add(bill)
	}

	ids := make([]uint, 0, len(groups))
	for id := range groups {
		if id != 0 {
			ids = append(ids, id)
		}
	}

	names, err := resolve(ids)
	if err != nil {
		return nil, err
	}

	results := make([]*response.StatisticsGroup, 0, len(groups))
	for id, acc := range groups {
		key := names[id]
		if key == "" {
			key = fallback
		}
		results = append(results, acc.toGroup(key))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].TotalRevenue.GreaterThan(results[j].TotalRevenue)
	})

	return results, nil
}

// GetByFeeType aggregates bills per fee type
func (s *statisticsService) GetByFeeType(start, end time.Time) ([]*response.StatisticsGroup, error) {
	start, end = normalizeRange(start, end)

	bills, err := s.statsRepo.GetBillsInRange(start, end)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get bills for fee type statistics")
		return nil, err
	}

	return s.groupByID(bills, func(b *models.Bill) uint {
		if b.FeeTypeID != nil {
			return *b.FeeTypeID
		}
		return 0
	}, s.statsRepo.GetFeeTypeNames, "Khoản thu khác")
}

// GetByHousehold aggregates bills per household
func (s *statisticsService) GetByHousehold(start, end time.Time) ([]*response.StatisticsGroup, error) {
	start, end = normalizeRange(start, end)

	bills, err := s.statsRepo.GetBillsInRange(start, end)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get bills for household statistics")
		return nil, err
	}

	return s.groupByID(bills, func(b *models.Bill) uint {
		return b.HouseholdID
	}, s.statsRepo.GetHouseholdNames, "Không xác định")
}

// GetByCollector aggregates bills per collector; bills without an assigned
// collector fall into one shared group
func (s *statisticsService) GetByCollector(start, end time.Time) ([]*response.StatisticsGroup, error) {
	start, end = normalizeRange(start, end)

	bills, err := s.statsRepo.GetBillsInRange(start, end)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get bills for collector statistics")
		return nil, err
	}

	return s.groupByID(bills, func(b *models.Bill) uint {
		if b.CollectorID != nil {
			return *b.CollectorID
		}
		return 0
	}, s.statsRepo.GetUserNames, "Chưa phân công")
}

// GetByPaymentStatus aggregates bills per derived payment status
func (s *statisticsService) GetByPaymentStatus(start, end time.Time) ([]*response.StatisticsGroup, error) {
	start, end = normalizeRange(start, end)

	bills, err := s.statsRepo.GetBillsInRange(start, end)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get bills for payment status statistics")
		return nil, err
	}

	now := time.Now()
	groups := make(map[BillStatus]*groupAccumulator)
	for _, bill := range bills {
		status := ClassifyBillStatus(bill.TotalAmount, bill.PaidAmount, bill.BillingPeriod, now)
		acc, ok := groups[status]
		if !ok {
			acc = newAccumulator(0)
			groups[status] = acc
		}
		acc.add(bill)
	}

	// stable order: paid, partial, unpaid, overdue
	order := []BillStatus{StatusPaid, StatusPartial, StatusUnpaid, StatusOverdue}
	results := make([]*response.StatisticsGroup, 0, len(groups))
	for _, status := range order {
		if acc, ok := groups[status]; ok {
			results = append(results, acc.toGroup(string(status)))
		}
	}

	return results, nil
}

// GetByPeriod aggregates bills per time bucket; groupBy is one of
// day, month (default) or year
func (s *statisticsService) GetByPeriod(start, end time.Time, groupBy string) ([]*response.StatisticsGroup, error) {
	start, end = normalizeRange(start, end)

	var layout string
	switch groupBy {
	case "day":
		layout = "2006-01-02"
	case "year":
		layout = "2006"
	case "", "month":
		layout = "2006-01"
	default:
		return nil, ErrInvalidGroupBy
	}

	bills, err := s.statsRepo.GetBillsInRange(start, end)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get bills for period statistics")
		return nil, err
	}

	groups := make(map[string]*groupAccumulator)
	for _, bill := range bills {
		key := bill.BillingPeriod.Format(layout)
		acc, ok := groups[key]
		if !ok {
			acc = newAccumulator(0)
			groups[key] = acc
		}
		acc.add(bill)
	}

	results := make([]*response.StatisticsGroup, 0, len(groups))
	for key, acc := range groups {
		results = append(results, acc.toGroup(key))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].GroupKey < results[j].GroupKey
	})

	return results, nil
}
