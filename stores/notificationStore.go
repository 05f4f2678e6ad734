package stores

import (
	"context"
	"sort"
	"time"

	"github.com/Kariqs/farmlink-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type NotificationStore struct {
	db *gorm.DB
}

func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

// SaleRecord is one sold line, flattened for sales analysis.
type SaleRecord struct {
	ProductName  string  `json:"productName"`
	QuantitySold int     `json:"quantitySold"`
	TotalRevenue float64 `json:"totalRevenue"`
	SaleDate     string  `json:"saleDate"`
}

// ListForFarmer returns the farmer's sale notifications, newest first.
func (s *NotificationStore) ListForFarmer(ctx context.Context, farmerID string) ([]models.SaleNotification, error) {
	var notifications []models.SaleNotification
	err := s.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("date DESC").
		Find(&notifications).Error
	return notifications, err
}

func (s *NotificationStore) UnreadCount(ctx context.Context, farmerID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.SaleNotification{}).
		Where("farmer_id = ? AND `read` = ?", farmerID, false).
		Count(&count).Error
	return count, err
}

func (s *NotificationStore) MarkRead(ctx context.Context, farmerID, id string) error {
	var notification models.SaleNotification
	result := s.db.WithContext(ctx).Where("id = ? AND farmer_id = ?", id, farmerID).Limit(1).Find(&notification)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	if notification.Read {
		return nil
	}
	return s.db.WithContext(ctx).Model(&notification).Update("read", true).Error
}

// MarkAllRead flags every unread notification of the farmer and reports how
// many changed.
func (s *NotificationStore) MarkAllRead(ctx context.Context, farmerID string) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&models.SaleNotification{}).
		Where("farmer_id = ? AND `read` = ?", farmerID, false).
		Update("read", true)
	return result.RowsAffected, result.Error
}

// SalesData flattens the farmer's notifications into per-line sale records,
// oldest first.
func (s *NotificationStore) SalesData(ctx context.Context, farmerID string) ([]SaleRecord, error) {
	notifications, err := s.ListForFarmer(ctx, farmerID)
	if err != nil {
		return nil, err
	}

	records := make([]SaleRecord, 0, len(notifications))
	for i := len(notifications) - 1; i >= 0; i-- {
		n := notifications[i]
		for _, item := range n.Items {
			records = append(records, SaleRecord{
				ProductName:  item.ProductName,
				QuantitySold: item.Quantity,
				TotalRevenue: money(lineTotal(item.PricePerUnit, item.Quantity)),
				SaleDate:     n.Date.Format(time.DateOnly),
			})
		}
	}
	return records, nil
}

type ProductSales struct {
	ProductName       string  `json:"productName"`
	TotalQuantitySold int     `json:"totalQuantitySold"`
	TotalRevenue      float64 `json:"totalRevenue"`
	NumberOfSales     int     `json:"numberOfSales"`
}

type DailySales struct {
	Date           string  `json:"date"`
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalItemsSold int     `json:"totalItemsSold"`
}

// SalesSummary is the farmer's sales dashboard: per-product and per-day
// breakdowns plus overall totals.
type SalesSummary struct {
	Products               []ProductSales `json:"products"`
	Daily                  []DailySales   `json:"daily"`
	TotalRevenue           float64        `json:"totalRevenue"`
	TotalItemsSold         int            `json:"totalItemsSold"`
	UniqueProductsSold     int            `json:"uniqueProductsSold"`
	ReadRevenue            float64        `json:"readRevenue"`
	TotalProducts          int64          `json:"totalProducts"`
	TotalInventoryQuantity int64          `json:"totalInventoryQuantity"`
}

type productTally struct {
	quantity int
	revenue  decimal.Decimal
	sales    int
}

type dayTally struct {
	revenue decimal.Decimal
	items   int
}

// SalesSummary aggregates the farmer's notifications and current inventory.
// Products are ordered by revenue, highest first; days run oldest first.
func (s *NotificationStore) SalesSummary(ctx context.Context, farmerID string) (SalesSummary, error) {
	notifications, err := s.ListForFarmer(ctx, farmerID)
	if err != nil {
		return SalesSummary{}, err
	}

	byProduct := make(map[string]*productTally)
	byDay := make(map[string]*dayTally)
	total, readTotal := decimal.Zero, decimal.Zero
	items := 0

	for _, n := range notifications {
		day := n.Date.Format(time.DateOnly)
		if byDay[day] == nil {
			byDay[day] = &dayTally{revenue: decimal.Zero}
		}
		for _, item := range n.Items {
			line := lineTotal(item.PricePerUnit, item.Quantity)
			p := byProduct[item.ProductName]
			if p == nil {
				p = &productTally{revenue: decimal.Zero}
				byProduct[item.ProductName] = p
			}
			p.quantity += item.Quantity
			p.revenue = p.revenue.Add(line)
			p.sales++

			byDay[day].revenue = byDay[day].revenue.Add(line)
			byDay[day].items += item.Quantity

			total = total.Add(line)
			items += item.Quantity
			if n.Read {
				readTotal = readTotal.Add(line)
			}
		}
	}

	summary := SalesSummary{
		Products:           make([]ProductSales, 0, len(byProduct)),
		Daily:              make([]DailySales, 0, len(byDay)),
		TotalRevenue:       money(total),
		TotalItemsSold:     items,
		UniqueProductsSold: len(byProduct),
		ReadRevenue:        money(readTotal),
	}

	revenues := make(map[string]decimal.Decimal, len(byProduct))
	for name, p := range byProduct {
		revenues[name] = p.revenue
		summary.Products = append(summary.Products, ProductSales{
			ProductName:       name,
			TotalQuantitySold: p.quantity,
			TotalRevenue:      money(p.revenue),
			NumberOfSales:     p.sales,
		})
	}
	sort.Slice(summary.Products, func(i, j int) bool {
		a, b := summary.Products[i], summary.Products[j]
		if cmp := revenues[a.ProductName].Cmp(revenues[b.ProductName]); cmp != 0 {
			return cmp > 0
		}
		return a.ProductName < b.ProductName
	})

	for day, d := range byDay {
		summary.Daily = append(summary.Daily, DailySales{
			Date:           day,
			TotalRevenue:   money(d.revenue),
			TotalItemsSold: d.items,
		})
	}
	sort.Slice(summary.Daily, func(i, j int) bool { return summary.Daily[i].Date < summary.Daily[j].Date })

	var inventory struct {
		Products int64
		Quantity int64
	}
	err = s.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("COUNT(*) AS products, COALESCE(SUM(quantity), 0) AS quantity").
		Where("farmer_id = ?", farmerID).
		Scan(&inventory).Error
	if err != nil {
		return SalesSummary{}, err
	}
	summary.TotalProducts = inventory.Products
	summary.TotalInventoryQuantity = inventory.Quantity
	return summary, nil
}
