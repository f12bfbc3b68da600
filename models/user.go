package models

// User holds the structure for the users collection in mongo. A user is
// created lazily on first contact with a fixed starting balance and is
// never deleted.
type User struct {
	ID               Principal `bson:"_id" json:"id"`
	TokenBalance     uint64    `bson:"tokenBalance" json:"tokenBalance"`
	ReportsSubmitted []uint64  `bson:"reportsSubmitted" json:"reportsSubmitted"`
	RewardsEarned    uint64    `bson:"rewardsEarned" json:"rewardsEarned"`
	StakesActive     uint64    `bson:"stakesActive" json:"stakesActive"`
	StakesLost       uint64    `bson:"stakesLost" json:"stakesLost"`
}
