package services

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// caseInsensitive builds the substring-match operand used by filtered
// listings. User input is quoted so it can never act as a pattern.
func caseInsensitive(substr string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(substr), Options: "i"}
}
