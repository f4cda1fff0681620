package request

// DashboardRequest sizes the dashboard charts.
type DashboardRequest struct {
	Days int `form:"days" binding:"omitempty,min=1,max=90"`
	Top  int `form:"top" binding:"omitempty,min=1,max=20"`
}
