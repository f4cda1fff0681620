package request

// ReportFilterRequest carries the report criteria from the query string.
// Dimension filters (product, employee, payment, ...) are read separately.
type ReportFilterRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Search    string `form:"search"`
	Format    string `form:"format"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// BackupRequest selects tables to export. Empty means all.
type BackupRequest struct {
	Tables []string `json:"tables" form:"tables"`
}
