package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SenderKind identifies which side of a report thread authored a message
type SenderKind string

// Message sender kinds
const (
	SenderAuthority SenderKind = "authority"
	SenderReporter  SenderKind = "reporter"
	SenderSystem    SenderKind = "system"
)

// MessageSender pairs a sender kind with the authoring principal. The
// principal is empty for system messages.
type MessageSender struct {
	Kind SenderKind `bson:"kind" json:"kind"`
	ID   Principal  `bson:"id,omitempty" json:"id,omitempty"`
}

// Message holds the structure for the messages collection in mongo.
// Messages are append-only and ordered by ID within a report thread.
type Message struct {
	ID         uint64             `bson:"_id" json:"id"`
	ReportID   uint64             `bson:"reportId" json:"reportId"`
	Sender     MessageSender      `bson:"sender" json:"sender"`
	Content    string             `bson:"content" json:"content"`
	Timestamp  primitive.DateTime `bson:"timestamp" json:"timestamp"`
	Attachment []byte             `bson:"attachment,omitempty" json:"attachment,omitempty"`
}
