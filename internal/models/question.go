package models

import "time"

// SystemNPCName tags question records that were produced by the hint system rather than
// an interrogation of a scenario NPC.
const SystemNPCName = "SYSTEM"

// QuestionRecord is one logged ask-or-hint interaction. Records are immutable once
// appended and owned exclusively by their session.
type QuestionRecord struct {
	NPCName      string    `json:"npc_name"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	QualityScore int       `json:"quality_score"`
	Reasoning    string    `json:"reasoning"`
	Timestamp    time.Time `json:"timestamp"`
}

// IsHint reports whether the record was produced by a hint request.
func (r QuestionRecord) IsHint() bool {
	return r.NPCName == SystemNPCName
}
