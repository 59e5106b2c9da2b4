package types

import (
	"encoding/json"
	"time"
)

type SegmentsUpdated struct {
	ID             string    `json:"id"`
	AttributeName  string    `json:"attributeName"`
	AttributeValue any       `json:"attributeValue"`
	IDs            []any     `json:"ids"`
	UpdatedCount   int       `json:"updatedCount"`
	Timestamp      time.Time `json:"timestamp"`
}

func (s *SegmentsUpdated) Body() []byte {
	b, _ := json.Marshal(s)
	return b
}
func (s *SegmentsUpdated) ContentType() string {
	return "application/vnd.diwise.segmentsupdated+json"
}
func (s *SegmentsUpdated) TopicName() string {
	return "segments.updated"
}
