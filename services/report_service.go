package services

import (
	"sort"
	"time"

	"backend/repository"
	"backend/utils"
)

// ReportService aggregates order history for the dashboard. Rows come
// out of storage in a driver-neutral shape and are folded here, so the
// same queries run on sqlite and postgres.
type ReportService struct {
	Repo *repository.OrderRepository
}

func NewReportService(repo *repository.OrderRepository) *ReportService {
	return &ReportService{Repo: repo}
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

type PopularItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type DashboardStats struct {
	DailyOrders  int64         `json:"daily_orders"`
	DailyRevenue float64       `json:"daily_revenue"`
	ActiveOrders int64         `json:"active_orders"`
	PopularItems []PopularItem `json:"popular_items"`
}

func (s *ReportService) Dashboard() (*DashboardStats, error) {
	today := startOfToday()

	orders, err := s.Repo.CountSince(today)
	if err != nil {
		return nil, persistence(err)
	}
	revenue, err := s.Repo.RevenueSince(today)
	if err != nil {
		return nil, persistence(err)
	}
	active, err := s.Repo.CountActive()
	if err != nil {
		return nil, persistence(err)
	}

	sales, err := s.Repo.ItemSalesSince(today, false)
	if err != nil {
		return nil, persistence(err)
	}
	byItem := map[string]int{}
	for _, row := range sales {
		byItem[row.ItemName] += row.Quantity
	}
	popular := make([]PopularItem, 0, len(byItem))
	for name, qty := range byItem {
		popular = append(popular, PopularItem{Name: name, Quantity: qty})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].Quantity != popular[j].Quantity {
			return popular[i].Quantity > popular[j].Quantity
		}
		return popular[i].Name < popular[j].Name
	})
	if len(popular) > 5 {
		popular = popular[:5]
	}

	return &DashboardStats{
		DailyOrders:  orders,
		DailyRevenue: utils.CentsToFloat(revenue),
		ActiveOrders: active,
		PopularItems: popular,
	}, nil
}

type HourlySales struct {
	Hour       int     `json:"hour"`
	OrderCount int     `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

// SalesByHour folds completed orders from the last daysBack days into
// hour-of-day buckets.
func (s *ReportService) SalesByHour(daysBack int) ([]HourlySales, error) {
	rows, err := s.Repo.CompletedSince(startOfToday().AddDate(0, 0, -daysBack))
	if err != nil {
		return nil, persistence(err)
	}

	type bucket struct {
		count int
		cents int64
	}
	byHour := map[int]*bucket{}
	for _, row := range rows {
		h := row.CreatedAt.Local().Hour()
		b := byHour[h]
		if b == nil {
			b = &bucket{}
			byHour[h] = b
		}
		b.count++
		b.cents += row.TotalCents
	}

	out := make([]HourlySales, 0, len(byHour))
	for h, b := range byHour {
		out = append(out, HourlySales{Hour: h, OrderCount: b.count, Revenue: utils.CentsToFloat(b.cents)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out, nil
}

type DailyTrend struct {
	Date          string  `json:"date"`
	OrderCount    int     `json:"order_count"`
	Revenue       float64 `json:"revenue"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

func (s *ReportService) DailyTrends(daysBack int) ([]DailyTrend, error) {
	rows, err := s.Repo.CompletedSince(startOfToday().AddDate(0, 0, -daysBack))
	if err != nil {
		return nil, persistence(err)
	}

	type bucket struct {
		count int
		cents int64
	}
	byDate := map[string]*bucket{}
	for _, row := range rows {
		d := row.CreatedAt.Local().Format("2006-01-02")
		b := byDate[d]
		if b == nil {
			b = &bucket{}
			byDate[d] = b
		}
		b.count++
		b.cents += row.TotalCents
	}

	out := make([]DailyTrend, 0, len(byDate))
	for d, b := range byDate {
		avg := int64(0)
		if b.count > 0 {
			avg = b.cents / int64(b.count)
		}
		out = append(out, DailyTrend{
			Date:          d,
			OrderCount:    b.count,
			Revenue:       utils.CentsToFloat(b.cents),
			AvgOrderValue: utils.CentsToFloat(avg),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

type ProductPerformance struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	OrderCount    int     `json:"order_count"`
	AvgPrice      float64 `json:"avg_price"`
}

func (s *ReportService) ProductPerformance(daysBack int) ([]ProductPerformance, error) {
	rows, err := s.Repo.ItemSalesSince(startOfToday().AddDate(0, 0, -daysBack), true)
	if err != nil {
		return nil, persistence(err)
	}

	type bucket struct {
		name       string
		category   string
		quantity   int
		cents      int64
		orders     map[uint]bool
		priceCents int64
		lines      int64
	}
	byItem := map[uint]*bucket{}
	for _, row := range rows {
		b := byItem[row.MenuItemID]
		if b == nil {
			b = &bucket{name: row.ItemName, category: row.CategoryName, orders: map[uint]bool{}}
			byItem[row.MenuItemID] = b
		}
		b.quantity += row.Quantity
		b.cents += row.PriceCents * int64(row.Quantity)
		b.orders[row.OrderID] = true
		b.priceCents += row.PriceCents
		b.lines++
	}

	out := make([]ProductPerformance, 0, len(byItem))
	for id, b := range byItem {
		avg := int64(0)
		if b.lines > 0 {
			avg = b.priceCents / b.lines
		}
		out = append(out, ProductPerformance{
			ID:            id,
			Name:          b.name,
			Category:      b.category,
			TotalQuantity: b.quantity,
			TotalRevenue:  utils.CentsToFloat(b.cents),
			OrderCount:    len(b.orders),
			AvgPrice:      utils.CentsToFloat(avg),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalRevenue > out[j].TotalRevenue })
	return out, nil
}

type CategoryPerformance struct {
	Category      string  `json:"category"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	OrderCount    int     `json:"order_count"`
}

func (s *ReportService) CategoryPerformance(daysBack int) ([]CategoryPerformance, error) {
	rows, err := s.Repo.ItemSalesSince(startOfToday().AddDate(0, 0, -daysBack), true)
	if err != nil {
		return nil, persistence(err)
	}

	type bucket struct {
		quantity int
		cents    int64
		orders   map[uint]bool
	}
	byCat := map[string]*bucket{}
	for _, row := range rows {
		b := byCat[row.CategoryName]
		if b == nil {
			b = &bucket{orders: map[uint]bool{}}
			byCat[row.CategoryName] = b
		}
		b.quantity += row.Quantity
		b.cents += row.PriceCents * int64(row.Quantity)
		b.orders[row.OrderID] = true
	}

	out := make([]CategoryPerformance, 0, len(byCat))
	for cat, b := range byCat {
		out = append(out, CategoryPerformance{
			Category:      cat,
			TotalQuantity: b.quantity,
			TotalRevenue:  utils.CentsToFloat(b.cents),
			OrderCount:    len(b.orders),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalRevenue > out[j].TotalRevenue })
	return out, nil
}
