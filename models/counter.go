package models

// SequenceCounter backs the monotonic human-facing numbers. One document per
// entity type, bumped with an atomic $inc.
type SequenceCounter struct {
	ID  string `json:"id" bson:"_id"`
	Seq int64  `json:"seq" bson:"seq"`
}
