package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ReportStatus is the lifecycle state of a report
type ReportStatus string

// Report lifecycle states. UnderReview is declared for forward
// compatibility; no current transition produces it.
const (
	StatusPending     ReportStatus = "pending"
	StatusUnderReview ReportStatus = "under_review"
	StatusApproved    ReportStatus = "approved"
	StatusRejected    ReportStatus = "rejected"
)

// Terminal reports whether the status admits no further transitions
func (s ReportStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Location holds the optional geolocation attached to a report
type Location struct {
	Address   string  `bson:"address,omitempty" json:"address,omitempty"`
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// Report holds the structure for the reports collection in mongo
type Report struct {
	ID            uint64              `bson:"_id" json:"id"`
	Title         string              `bson:"title" json:"title"`
	Description   string              `bson:"description" json:"description"`
	Category      string              `bson:"category" json:"category"`
	DateSubmitted primitive.DateTime  `bson:"dateSubmitted" json:"dateSubmitted"`
	IncidentDate  string              `bson:"incidentDate,omitempty" json:"incidentDate,omitempty"`
	Location      *Location           `bson:"location,omitempty" json:"location,omitempty"`
	SubmitterID   Principal           `bson:"submitterId" json:"submitterId"`
	EvidenceCount uint32              `bson:"evidenceCount" json:"evidenceCount"`
	EvidenceFiles []uint64            `bson:"evidenceFiles" json:"evidenceFiles"`
	StakeAmount   uint64              `bson:"stakeAmount" json:"stakeAmount"`
	RewardAmount  uint64              `bson:"rewardAmount" json:"rewardAmount"`
	Status        ReportStatus        `bson:"status" json:"status"`
	Reviewer      Principal           `bson:"reviewer,omitempty" json:"reviewer,omitempty"`
	ReviewDate    *primitive.DateTime `bson:"reviewDate,omitempty" json:"reviewDate,omitempty"`
	ReviewNotes   string              `bson:"reviewNotes,omitempty" json:"reviewNotes,omitempty"`
}
