package ws

import (
	"encoding/json"
	"time"

	"greenleaf/internal/domain/job"
)

const (
	EventJobCreated = "job_created"
	EventJobUpdated = "job_updated"
	EventJobDeleted = "job_deleted"
)

type JobEvent struct {
	Type         string `json:"type"`
	JobID        string `json:"job_id"`
	BusinessName string `json:"business_name"`
	GreenScore   int    `json:"green_score"`
	Timestamp    string `json:"timestamp"`
}

// Notifier turns job-board changes into hub broadcasts.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) JobChanged(eventType string, j job.Job) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(JobEvent{
		Type:         eventType,
		JobID:        j.ID.String(),
		BusinessName: j.BusinessName,
		GreenScore:   j.GreenScore,
		Timestamp:    n.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
