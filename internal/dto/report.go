package dto

// ReportQuery selects the rendered report format.
type ReportQuery struct {
	Format   string `form:"format"`
	District string `form:"district"`
}
