package api

type ErrorResponse struct {
	Error string `json:"error"`
}

type Summary struct {
	TotalResourcesDeleted int     `json:"total_resources_deleted"`
	TotalMonthlySavings   float64 `json:"total_monthly_savings"`
	TotalAnnualSavings    float64 `json:"total_annual_savings"`
}

type DailySummary struct {
	Summary
	Categories map[string]int `json:"categories"`
}

type DeletedResource struct {
	ResourceType        string  `json:"resource_type"`
	ResourceID          string  `json:"resource_id"`
	ResourceName        string  `json:"resource_name"`
	MonthlySavings      float64 `json:"monthly_savings"`
	AnnualSavings       float64 `json:"annual_savings"`
	DeletedAt           string  `json:"deleted_at"`
	DeletedDateReadable string  `json:"deleted_date_readable"`
}

type DailyResponse struct {
	View      string            `json:"view"`
	Date      string            `json:"date"`
	Resources []DeletedResource `json:"resources"`
	Summary   DailySummary      `json:"summary"`
}

type CategoryTotal struct {
	Count          int     `json:"count"`
	MonthlySavings float64 `json:"monthly_savings"`
}

type DayBreakdown struct {
	Day        string         `json:"day"`
	Date       string         `json:"date"`
	Categories map[string]int `json:"categories"`
}

type WeeklyResponse struct {
	View           string                   `json:"view"`
	WeekStart      string                   `json:"week_start"`
	WeekEnd        string                   `json:"week_end"`
	Categories     map[string]CategoryTotal `json:"categories"`
	DailyBreakdown []DayBreakdown           `json:"daily_breakdown"`
	Summary        Summary                  `json:"summary"`
}

type WeekBreakdown struct {
	Week       string         `json:"week"`
	StartDate  string         `json:"start_date"`
	EndDate    string         `json:"end_date"`
	Categories map[string]int `json:"categories"`
}

type MonthlyResponse struct {
	View            string                   `json:"view"`
	Month           string                   `json:"month"`
	Categories      map[string]CategoryTotal `json:"categories"`
	WeeklyBreakdown []WeekBreakdown          `json:"weekly_breakdown"`
	Summary         Summary                  `json:"summary"`
}
