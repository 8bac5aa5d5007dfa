package reportpdf

// Snapshot is the bundle of report figures supplied for one generation call.
// It is treated as read-only. Percentage fields are rendered as given; values
// outside 0..100 are not clamped.
type Snapshot struct {
	Title       string `json:"title" mapstructure:"title"`
	DateRange   string `json:"dateRange" mapstructure:"dateRange"`
	GeneratedAt string `json:"generatedAt" mapstructure:"generatedAt"`

	Metrics Metrics `json:"metrics" mapstructure:"metrics"`

	Sales         []SalesPoint   `json:"salesData" mapstructure:"salesData"`
	Makes         []MakeShare    `json:"makeDistribution" mapstructure:"makeDistribution"`
	Statuses      []StatusShare  `json:"statusDistribution" mapstructure:"statusDistribution"`
	TopPerformers []Performer    `json:"topPerformers" mapstructure:"topPerformers"`
	Locations     []LocationStat `json:"locationAnalytics" mapstructure:"locationAnalytics"`
}

// Metrics holds the headline KPIs.
type Metrics struct {
	TotalRevenue  float64 `json:"totalRevenue" mapstructure:"totalRevenue"`
	TotalSales    float64 `json:"totalSales" mapstructure:"totalSales"`
	AvgInventory  float64 `json:"avgInventory" mapstructure:"avgInventory"`
	AvgSalePrice  float64 `json:"avgSalePrice" mapstructure:"avgSalePrice"`
	RevenueGrowth float64 `json:"revenueGrowth" mapstructure:"revenueGrowth"`
}

// SalesPoint is one month of the sales series.
type SalesPoint struct {
	Month     string  `json:"month" mapstructure:"month"`
	Sales     float64 `json:"sales" mapstructure:"sales"`
	Revenue   float64 `json:"revenue" mapstructure:"revenue"`
	Inventory float64 `json:"inventory" mapstructure:"inventory"`
}

// MakeShare is the inventory held for one manufacturer.
type MakeShare struct {
	Make       string  `json:"make" mapstructure:"make"`
	Count      float64 `json:"count" mapstructure:"count"`
	Value      float64 `json:"value" mapstructure:"value"`
	Percentage float64 `json:"percentage" mapstructure:"percentage"`
}

// StatusShare is the number of vehicles in one inventory status.
type StatusShare struct {
	Status     string  `json:"status" mapstructure:"status"`
	Count      float64 `json:"count" mapstructure:"count"`
	Percentage float64 `json:"percentage" mapstructure:"percentage"`
}

// Performer is one of the best selling models.
type Performer struct {
	Model   string  `json:"model" mapstructure:"model"`
	Sold    float64 `json:"sold" mapstructure:"sold"`
	Revenue float64 `json:"revenue" mapstructure:"revenue"`
	AvgDays float64 `json:"avgDays" mapstructure:"avgDays"`
}

// LocationStat summarises one lot or branch.
type LocationStat struct {
	Location    string  `json:"location" mapstructure:"location"`
	Vehicles    float64 `json:"vehicles" mapstructure:"vehicles"`
	Utilization float64 `json:"utilization" mapstructure:"utilization"`
	Revenue     float64 `json:"revenue" mapstructure:"revenue"`
}
