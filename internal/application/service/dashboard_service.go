package service

import (
	"context"
	"encoding/json"
	"sort"

	"mims-console/internal/domain/entity"
	"mims-console/pkg/money"
)

const (
	lowStockThreshold = 5
	topProductCount   = 5
)

// DashboardService aggregates the bill history and catalog into the
// overview numbers. Everything is derived on demand; nothing is stored.
type DashboardService struct {
	bills   *BillService
	catalog *CatalogService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(bills *BillService, catalog *CatalogService) *DashboardService {
	return &DashboardService{
		bills:   bills,
		catalog: catalog,
	}
}

// ProductSales is one row of the top-products list.
type ProductSales struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Revenue  int64  `json:"-"` // minor units
}

// MarshalJSON converts minor units to decimal for API responses
func (p ProductSales) MarshalJSON() ([]byte, error) {
	type Alias ProductSales
	return json.Marshal(&struct {
		Alias
		Revenue float64 `json:"revenue"`
	}{
		Alias:   Alias(p),
		Revenue: money.ToFloat(p.Revenue),
	})
}

// DashboardSummary represents the overview numbers
type DashboardSummary struct {
	TotalRevenue int64                `json:"-"` // minor units
	BillCount    int                  `json:"bill_count"`
	ItemsSold    int                  `json:"items_sold"`
	TopProducts  []ProductSales       `json:"top_products"`
	RecentBills  []entity.Bill        `json:"recent_bills"`
	LowStock     []entity.CatalogItem `json:"low_stock"`
	CatalogStale bool                 `json:"catalog_stale"`
}

// MarshalJSON converts minor units to decimal for API responses
func (d DashboardSummary) MarshalJSON() ([]byte, error) {
	type Alias DashboardSummary
	return json.Marshal(&struct {
		Alias
		TotalRevenue float64 `json:"total_revenue"`
	}{
		Alias:        Alias(d),
		TotalRevenue: money.ToFloat(d.TotalRevenue),
	})
}

// Summary computes the dashboard for a business. The bill history is
// required; the catalog section degrades to its cached snapshot or to
// empty rather than failing the whole dashboard.
func (s *DashboardService) Summary(ctx context.Context, businessEmail string) (*DashboardSummary, error) {
	bills, err := s.bills.ListBills(ctx, businessEmail)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		BillCount:   len(bills),
		TopProducts: []ProductSales{},
		LowStock:    []entity.CatalogItem{},
	}

	sales := make(map[string]*ProductSales)
	for _, bill := range bills {
		summary.TotalRevenue += bill.Total
		for _, line := range bill.Lines {
			summary.ItemsSold += line.Quantity
			p, ok := sales[line.ProductName]
			if !ok {
				p = &ProductSales{Name: line.ProductName}
				sales[line.ProductName] = p
			}
			p.Quantity += line.Quantity
			p.Revenue += line.LineTotal
		}
	}

	for _, p := range sales {
		summary.TopProducts = append(summary.TopProducts, *p)
	}
	sort.Slice(summary.TopProducts, func(i, j int) bool {
		a, b := summary.TopProducts[i], summary.TopProducts[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.Name < b.Name
	})
	if len(summary.TopProducts) > topProductCount {
		summary.TopProducts = summary.TopProducts[:topProductCount]
	}

	summary.RecentBills = bills
	if len(summary.RecentBills) > recentBillCount {
		summary.RecentBills = summary.RecentBills[:recentBillCount]
	}

	catalog, err := s.catalog.Load(ctx, businessEmail)
	if err == nil {
		summary.CatalogStale = catalog.Stale
		for _, item := range catalog.Items {
			if item.AvailableQuantity < lowStockThreshold {
				summary.LowStock = append(summary.LowStock, item)
			}
		}
	}

	return summary, nil
}
