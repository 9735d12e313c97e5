package quest

import "github.com/google/uuid"

// Status is the closed set of quest states. ACTIVE is the only non-terminal
// value; once a quest leaves it, further mutations are rejected.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusAbandoned Status = "abandoned"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusFailed, StatusAbandoned:
		return true
	}
	return false
}

// Stage is one objective within a quest.
type Stage struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Reward is what completing a quest grants.
type Reward struct {
	Gold        int      `json:"gold"`
	Items       []string `json:"items,omitempty"`
	Reputation  int      `json:"reputation"`
	Description string   `json:"description,omitempty"`
}

// Quest is a goal with staged objectives and a terminal outcome.
type Quest struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Hook             string   `json:"hook,omitempty"`
	Objective        string   `json:"objective,omitempty"`
	Complications    []string `json:"complications,omitempty"`
	Resolutions      []string `json:"resolutions,omitempty"`
	Rewards          Reward   `json:"rewards"`
	Stages           []Stage  `json:"stages,omitempty"`
	Status           Status   `json:"status"`
	GiverID          string   `json:"giver_id,omitempty"`
	FailureReason    string   `json:"failure_reason,omitempty"`
	ChosenResolution *int     `json:"chosen_resolution,omitempty"`
}

// IsActive reports whether the quest can still be advanced.
func (q *Quest) IsActive() bool {
	return q.Status == StatusActive
}

// CurrentStage returns the first incomplete stage, or nil when every stage
// is done.
func (q *Quest) CurrentStage() *Stage {
	for i := range q.Stages {
		if !q.Stages[i].Completed {
			return &q.Stages[i]
		}
	}
	return nil
}

// Progress returns (completed, total) stage counts.
func (q *Quest) Progress() (int, int) {
	completed := 0
	for _, s := range q.Stages {
		if s.Completed {
			completed++
		}
	}
	return completed, len(q.Stages)
}

// AdvanceStage marks the stage at index completed. Returns false for a
// terminal quest or an out-of-range index.
func (q *Quest) AdvanceStage(index int) bool {
	if !q.IsActive() {
		return false
	}
	if index < 0 || index >= len(q.Stages) {
		return false
	}
	q.Stages[index].Completed = true
	return true
}

// Complete ends the quest with a chosen resolution. An out-of-range
// resolution index still completes, without recording a choice. Returns
// false once terminal.
func (q *Quest) Complete(resolutionIndex int) bool {
	if !q.IsActive() {
		return false
	}
	if resolutionIndex >= 0 && resolutionIndex < len(q.Resolutions) {
		idx := resolutionIndex
		q.ChosenResolution = &idx
	}
	q.Status = StatusCompleted
	return true
}

// Fail ends the quest with a reason. Returns false once terminal.
func (q *Quest) Fail(reason string) bool {
	if !q.IsActive() {
		return false
	}
	q.Status = StatusFailed
	q.FailureReason = reason
	return true
}

// Abandon ends the quest without an outcome. Returns false once terminal.
func (q *Quest) Abandon() bool {
	if !q.IsActive() {
		return false
	}
	q.Status = StatusAbandoned
	return true
}

// Spec seeds quest generation.
type Spec struct {
	Title         string
	Hook          string
	Objective     string
	Complications []string
	Resolutions   []string
	Rewards       Reward
	GiverID       string
}

// Generate creates an active quest from a spec, building a stage from the
// objective and one per complication.
func Generate(spec Spec) *Quest {
	if spec.Title == "" {
		spec.Title = "A Mysterious Task"
	}
	if spec.Hook == "" {
		spec.Hook = "An opportunity presents itself."
	}
	if spec.Objective == "" {
		spec.Objective = "Complete the task."
	}
	if len(spec.Complications) == 0 {
		spec.Complications = []string{
			"An unexpected obstacle appears.",
			"Things are not as they seem.",
		}
	}
	if len(spec.Resolutions) == 0 {
		spec.Resolutions = []string{
			"Complete the objective as requested.",
			"Find an alternative solution.",
		}
	}
	if spec.Rewards.Gold == 0 && spec.Rewards.Reputation == 0 && len(spec.Rewards.Items) == 0 && spec.Rewards.Description == "" {
		spec.Rewards = Reward{Gold: 100, Reputation: 5, Description: "A fair reward for your efforts."}
	}

	stages := []Stage{{Description: spec.Objective}}
	for _, c := range spec.Complications {
		stages = append(stages, Stage{Description: "Overcome: " + c})
	}

	return &Quest{
		ID:            uuid.NewString(),
		Title:         spec.Title,
		Hook:          spec.Hook,
		Objective:     spec.Objective,
		Complications: spec.Complications,
		Resolutions:   spec.Resolutions,
		Rewards:       spec.Rewards,
		Stages:        stages,
		Status:        StatusActive,
		GiverID:       spec.GiverID,
	}
}

// FilterByStatus returns the quests in a given status.
func FilterByStatus(quests []*Quest, status Status) []*Quest {
	var out []*Quest
	for _, q := range quests {
		if q.Status == status {
			out = append(out, q)
		}
	}
	return out
}
