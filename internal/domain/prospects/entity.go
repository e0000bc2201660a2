package prospects

import (
	"time"
)

// ID tipe untuk Profile
type ProfileID string

// Status enum
// NOTE: wire values match the original dashboard data, including the
// space in "In Progress", supaya data lama tetap kebaca.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusFailed     Status = "Failed"
)

// Aggregate Root: Profile
// One prospect research result: the rendered intelligence document plus metadata.
// A Pending record has empty RawDocument and Sections; generation either fills
// both and marks Completed, or leaves them empty and marks Failed.
type Profile struct {
	ID                ProfileID         `json:"id" bson:"_id"`
	TargetName        string            `json:"targetName" bson:"targetName"`
	CompanyName       string            `json:"companyName" bson:"companyName"`
	AdditionalContext string            `json:"additionalContext,omitempty" bson:"additionalContext,omitempty"`
	Status            Status            `json:"status" bson:"status"`
	GeneratedAt       time.Time         `json:"generatedAt" bson:"generatedAt"`
	RawDocument       string            `json:"rawDocument,omitempty" bson:"rawDocument,omitempty"`
	Sections          map[string]string `json:"sections,omitempty" bson:"sections,omitempty"`
	ArtifactURL       string            `json:"artifact_url,omitempty" bson:"artifactUrl,omitempty"`
}
