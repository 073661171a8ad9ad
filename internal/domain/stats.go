package domain

// AdminStats holds the dashboard counters
type AdminStats struct {
	TotalProducts      int            `json:"totalProducts"`
	LowStockProducts   int            `json:"lowStockProducts"`
	TotalOrders        int            `json:"totalOrders"`
	DailyOrders        int            `json:"dailyOrders"`
	MonthlyOrders      int            `json:"monthlyOrders"`
	PendingOrders      int            `json:"pendingOrders"`
	TotalRevenue       float64        `json:"totalRevenue"`
	MonthlyRevenue     float64        `json:"monthlyRevenue"`
	UnreadMessages     int            `json:"unreadMessages"`
	TopSellingProducts []ProductSales `json:"topSellingProducts"`
}

// ProductSales is the quantity sold of one product across counted orders
type ProductSales struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}
