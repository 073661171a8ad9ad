package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"aaamo-store/internal/domain"
	"aaamo-store/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

const topSellingLimit = 5

// StatsService computes dashboard counters and spreadsheet exports
type StatsService interface {
	Stats(ctx context.Context) (*domain.AdminStats, error)
	ExportOrders(ctx context.Context) (*xlsx.File, error)
}

type statsService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	messageRepo repository.MessageRepository
	now         func() time.Time
}

// NewStatsService creates a new instance of StatsService
func NewStatsService(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	messageRepo repository.MessageRepository,
	now func() time.Time,
) StatsService {
	if now == nil {
		now = time.Now
	}
	return &statsService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		messageRepo: messageRepo,
		now:         now,
	}
}

// Stats counts revenue from delivered orders only; rejected and cancelled orders
// are excluded from top sellers.
func (s *statsService) Stats(ctx context.Context) (*domain.AdminStats, error) {
	products, err := s.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	orders, err := s.orderRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	messages, err := s.messageRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	stats := &domain.AdminStats{
		TotalProducts: len(products),
		TotalOrders:   len(orders),
	}
	for _, p := range products {
		if p.IsLowStock() {
			stats.LowStockProducts++
		}
	}
	for _, m := range messages {
		if !m.IsRead {
			stats.UnreadMessages++
		}
	}

	now := s.now()
	y, m, d := now.Date()
	var revenue, monthly decimal.Decimal
	sold := map[string]*domain.ProductSales{}

	for _, o := range orders {
		created := o.CreatedAt.In(now.Location())
		cy, cm, cd := created.Date()
		sameMonth := cy == y && cm == m
		if sameMonth {
			stats.MonthlyOrders++
			if cd == d {
				stats.DailyOrders++
			}
		}
		if o.Status == domain.OrderStatusPending {
			stats.PendingOrders++
		}
		if o.Status == domain.OrderStatusDelivered {
			amount := decimal.NewFromFloat(o.FinalAmount)
			revenue = revenue.Add(amount)
			if sameMonth {
				monthly = monthly.Add(amount)
			}
		}
		if o.Status == domain.OrderStatusRejected || o.Status == domain.OrderStatusCancelled {
			continue
		}
		for _, item := range o.Items {
			entry, ok := sold[item.ID]
			if !ok {
				entry = &domain.ProductSales{ProductID: item.ID, Name: item.Name}
				sold[item.ID] = entry
			}
			entry.Quantity += item.Quantity
		}
	}

	stats.TotalRevenue = revenue.InexactFloat64()
	stats.MonthlyRevenue = monthly.InexactFloat64()
	stats.TopSellingProducts = topSelling(sold, topSellingLimit)
	return stats, nil
}

func topSelling(sold map[string]*domain.ProductSales, limit int) []domain.ProductSales {
	out := make([]domain.ProductSales, 0, len(sold))
	for _, s := range sold {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

var orderExportHeaders = []string{
	"رقم الطلب", "التاريخ", "اسم العميل", "الهاتف", "هاتف احتياطي", "البريد الإلكتروني",
	"المحافظة", "العنوان", "علامة مميزة", "المنتجات", "عدد القطع", "إجمالي المنتجات",
	"الشحن", "الإجمالي النهائي", "طريقة الدفع", "الحالة",
}

// ExportOrders renders every order, newest first, into a one-sheet workbook
func (s *statsService) ExportOrders(ctx context.Context) (*xlsx.File, error) {
	orders, err := s.orderRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range orderExportHeaders {
		header.AddCell().SetValue(h)
	}

	for _, o := range orders {
		c := o.CustomerDetails
		names := make([]string, 0, len(o.Items))
		pieces := 0
		for _, item := range o.Items {
			names = append(names, fmt.Sprintf("%s × %d", item.Name, item.Quantity))
			pieces += item.Quantity
		}

		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(c.Name)
		row.AddCell().SetValue(c.Phone)
		row.AddCell().SetValue(c.AlternatePhone)
		row.AddCell().SetValue(c.Email)
		row.AddCell().SetValue(c.Governorate)
		row.AddCell().SetValue(c.Address)
		row.AddCell().SetValue(c.Landmark)
		row.AddCell().SetValue(strings.Join(names, "\n"))
		row.AddCell().SetValue(pieces)
		row.AddCell().SetValue(o.TotalAmount)
		row.AddCell().SetValue(o.ShippingCost)
		row.AddCell().SetValue(o.FinalAmount)
		row.AddCell().SetValue(o.PaymentMethod.Label())
		row.AddCell().SetValue(o.Status.Label())
	}

	return file, nil
}

