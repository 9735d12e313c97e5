package world

import "strings"

// ElementType is the closed set of world element kinds.
type ElementType string

const (
	TypeRegion     ElementType = "region"
	TypeSettlement ElementType = "settlement"
	TypeDungeon    ElementType = "dungeon"
	TypeWilderness ElementType = "wilderness"
)

func (t ElementType) IsValid() bool {
	switch t {
	case TypeRegion, TypeSettlement, TypeDungeon, TypeWilderness:
		return true
	}
	return false
}

// Element is the base of every world element. Tags have set semantics with
// case-insensitive membership. Secrets are ordered and stay revealed once
// revealed.
type Element struct {
	ID              string      `json:"id"`
	Type            ElementType `json:"element_type"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Tags            []string    `json:"tags,omitempty"`
	Secrets         []string    `json:"secrets,omitempty"`
	Connections     []string    `json:"connections,omitempty"`
	RevealedSecrets []int       `json:"revealed_secrets,omitempty"`
}

// HasTag checks tag membership, case-insensitive.
func (e *Element) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// AddTag adds a tag, keeping Tags a case-insensitive set.
func (e *Element) AddTag(tag string) {
	if e.HasTag(tag) {
		return
	}
	e.Tags = append(e.Tags, tag)
}

// RemoveTag removes a tag by case-insensitive match. Reports whether one
// was removed.
func (e *Element) RemoveTag(tag string) bool {
	for i, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			e.Tags = append(e.Tags[:i], e.Tags[i+1:]...)
			return true
		}
	}
	return false
}

// AddConnection connects this element to another. Idempotent.
func (e *Element) AddConnection(elementID string) {
	for _, id := range e.Connections {
		if id == elementID {
			return
		}
	}
	e.Connections = append(e.Connections, elementID)
}

// RemoveConnection removes a connection. Reports whether one was removed.
func (e *Element) RemoveConnection(elementID string) bool {
	for i, id := range e.Connections {
		if id == elementID {
			e.Connections = append(e.Connections[:i], e.Connections[i+1:]...)
			return true
		}
	}
	return false
}

// RevealSecret reveals the secret at index. Returns the secret text and true
// on first reveal; out-of-range indices and already-revealed secrets return
// "" and false so the caller can narrate "nothing new".
func (e *Element) RevealSecret(index int) (string, bool) {
	if index < 0 || index >= len(e.Secrets) {
		return "", false
	}
	for _, i := range e.RevealedSecrets {
		if i == index {
			return "", false
		}
	}
	e.RevealedSecrets = append(e.RevealedSecrets, index)
	return e.Secrets[index], true
}

// RevealedSecretTexts returns the text of every revealed secret, in reveal order.
func (e *Element) RevealedSecretTexts() []string {
	texts := make([]string, 0, len(e.RevealedSecrets))
	for _, i := range e.RevealedSecrets {
		if i < len(e.Secrets) {
			texts = append(texts, e.Secrets[i])
		}
	}
	return texts
}

// HiddenSecretCount is the number of secrets not yet revealed.
func (e *Element) HiddenSecretCount() int {
	return len(e.Secrets) - len(e.RevealedSecrets)
}
