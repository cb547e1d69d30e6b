package models

// PackageStats aggregates redemptions of a single package.
type PackageStats struct {
	Count   int `json:"count"`
	Revenue int `json:"revenue"`
}

// DayBucket is one calendar day of the trailing histogram.
type DayBucket struct {
	Day     string `json:"day"`
	Count   int    `json:"count"`
	Revenue int    `json:"revenue"`
}

type StatsResponse struct {
	TotalCount   int                     `json:"totalCount"`
	TotalRevenue int                     `json:"totalRevenue"`
	Packages     map[string]PackageStats `json:"packages"`
	Last7Days    []DayBucket             `json:"last7Days"`
	Recent       []RedemptionRecord      `json:"recent"`
}
