package domain

// ReportDocument is one seller account's sales-and-traffic report as
// loaded into the report store. Documents are stored as raw JSON and
// decoded on read; unknown fields are dropped.
type ReportDocument struct {
	ReportSpecification   *ReportSpecification `json:"reportSpecification,omitempty"`
	SalesAndTrafficByDate []DateEntry          `json:"salesAndTrafficByDate"`
	SalesAndTrafficByAsin []AsinEntry          `json:"salesAndTrafficByAsin"`
}

// ReportSpecification carries the report's own metadata. Kept for
// round-tripping; no query reads it.
type ReportSpecification struct {
	ReportType     string   `json:"reportType,omitempty"`
	DataStartTime  string   `json:"dataStartTime,omitempty"`
	DataEndTime    string   `json:"dataEndTime,omitempty"`
	MarketplaceIDs []string `json:"marketplaceIds,omitempty"`
}

// DateEntry holds one calendar day's metrics.
// Date is an ISO YYYY-MM-DD string, so lexicographic order is date order.
type DateEntry struct {
	Date          string         `json:"date"`
	SalesByDate   SalesMetrics   `json:"salesByDate"`
	TrafficByDate TrafficMetrics `json:"trafficByDate"`
}

// AsinEntry holds one product's metrics keyed by its parent ASIN.
type AsinEntry struct {
	ParentAsin    string         `json:"parentAsin"`
	SalesByAsin   SalesMetrics   `json:"salesByAsin"`
	TrafficByAsin TrafficMetrics `json:"trafficByAsin"`
}

// SalesMetrics is the shared sales shape under both nested collections.
type SalesMetrics struct {
	UnitsOrdered        int64 `json:"unitsOrdered"`
	OrderedProductSales Money `json:"orderedProductSales"`
}

// TrafficMetrics is the shared traffic shape under both nested collections.
type TrafficMetrics struct {
	Sessions  int64 `json:"sessions"`
	PageViews int64 `json:"pageViews"`
}

// Money is an amount plus currency code as reported upstream.
type Money struct {
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currencyCode,omitempty"`
}

// UnitsAndSalesTotal is the two-field summary shape.
// Always returned non-nil; zero-filled when the collection is empty.
type UnitsAndSalesTotal struct {
	TotalSalesAmount  float64 `json:"totalSalesAmount"`
	TotalUnitsOrdered int64   `json:"totalUnitsOrdered"`
}

// StatisticsTotal is the four-field summary shape shared by the
// by-date and by-ASIN totals. Zero-filled when the collection is empty.
type StatisticsTotal struct {
	TotalUnitsOrdered int64   `json:"totalUnitsOrdered"`
	TotalSalesAmount  float64 `json:"totalSalesAmount"`
	TotalSessions     int64   `json:"totalSessions"`
	TotalPageViews    int64   `json:"totalPageViews"`
}
