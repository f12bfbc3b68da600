package models

// Authority holds the structure for the authorities collection in mongo.
// Membership in this collection is what grants the authority role;
// authorities are not users with a flag.
type Authority struct {
	ID              Principal `bson:"_id" json:"id"`
	ReportsReviewed []uint64  `bson:"reportsReviewed" json:"reportsReviewed"`
	ReviewsApproved uint64    `bson:"reviewsApproved" json:"reviewsApproved"`
	ApprovalRate    float64   `bson:"approvalRate" json:"approvalRate"`
}
