package npc

// Promise is a commitment the player made to an NPC.
type Promise struct {
	Description string `json:"description"`
	Fulfilled   bool   `json:"fulfilled"`
}

// Gift records an item given to an NPC and its value.
type Gift struct {
	ItemName string `json:"item_name"`
	Value    int    `json:"value"`
}

// ReputationChange is one signed adjustment to standing with an NPC.
type ReputationChange struct {
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

// Memory is an NPC's record of interactions with the player. Promises and
// gifts do not move disposition by themselves; callers translate them into
// explicit reputation changes when they should.
type Memory struct {
	Conversations     []string           `json:"conversations,omitempty"`
	Promises          []Promise          `json:"promises,omitempty"`
	Gifts             []Gift             `json:"gifts,omitempty"`
	ReputationChanges []ReputationChange `json:"reputation_changes,omitempty"`
}

// AddConversation appends a conversation summary.
func (m *Memory) AddConversation(summary string) {
	m.Conversations = append(m.Conversations, summary)
}

// AddPromise records a promise.
func (m *Memory) AddPromise(description string, fulfilled bool) {
	m.Promises = append(m.Promises, Promise{Description: description, Fulfilled: fulfilled})
}

// FulfillPromise marks the promise at index fulfilled. Reports whether the
// index was valid.
func (m *Memory) FulfillPromise(index int) bool {
	if index < 0 || index >= len(m.Promises) {
		return false
	}
	m.Promises[index].Fulfilled = true
	return true
}

// UnfulfilledPromises returns the promises still outstanding.
func (m *Memory) UnfulfilledPromises() []Promise {
	var out []Promise
	for _, p := range m.Promises {
		if !p.Fulfilled {
			out = append(out, p)
		}
	}
	return out
}

// AddGift records a gift.
func (m *Memory) AddGift(itemName string, value int) {
	m.Gifts = append(m.Gifts, Gift{ItemName: itemName, Value: value})
}

// GiftValueTotal is the combined value of all gifts given.
func (m *Memory) GiftValueTotal() int {
	total := 0
	for _, g := range m.Gifts {
		total += g.Value
	}
	return total
}

// AddReputationChange records a signed reputation adjustment.
func (m *Memory) AddReputationChange(amount int, reason string) {
	m.ReputationChanges = append(m.ReputationChanges, ReputationChange{Amount: amount, Reason: reason})
}

// TotalReputation is the running sum of all reputation changes.
func (m *Memory) TotalReputation() int {
	total := 0
	for _, c := range m.ReputationChanges {
		total += c.Amount
	}
	return total
}
