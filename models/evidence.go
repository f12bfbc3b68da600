package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// EvidenceFile holds the structure for the evidence collection in mongo.
// Each file is owned by exactly one report through the report's
// evidenceFiles list.
type EvidenceFile struct {
	ID         uint64             `bson:"_id" json:"id"`
	Name       string             `bson:"name" json:"name"`
	FileType   string             `bson:"fileType" json:"fileType"`
	Data       []byte             `bson:"data" json:"data"`
	UploadDate primitive.DateTime `bson:"uploadDate" json:"uploadDate"`
}
