package models

// AuthorityStats is the process-wide statistics singleton. The status
// buckets are updated in the same logical operation as every report
// status change, so pending + verified + rejected always equals the
// total number of reports ever created.
type AuthorityStats struct {
	ReportsPending          uint64 `bson:"reportsPending" json:"reportsPending"`
	ReportsVerified         uint64 `bson:"reportsVerified" json:"reportsVerified"`
	ReportsRejected         uint64 `bson:"reportsRejected" json:"reportsRejected"`
	TotalRewardsDistributed uint64 `bson:"totalRewardsDistributed" json:"totalRewardsDistributed"`
}
