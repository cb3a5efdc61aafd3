// Package sound defines the outbound trigger interface for the audio and
// theme collaborators. The core raises discrete events through it and
// never reads state back.
package sound

import "focusquest/internal/utils"

// Triggers receives discrete progression and timer events. Implementations
// must not call back into the core.
type Triggers interface {
	TaskCompleted()
	SessionStarted()
	SessionCompleted()
	LevelUp(level int)
	AchievementUnlocked(id string)
	PurchaseMade(itemID string)
}

// Nop discards all triggers.
type Nop struct{}

func (Nop) TaskCompleted()             {}
func (Nop) SessionStarted()            {}
func (Nop) SessionCompleted()          {}
func (Nop) LevelUp(int)                {}
func (Nop) AchievementUnlocked(string) {}
func (Nop) PurchaseMade(string)        {}

var _ Triggers = Nop{}

// Logged writes each trigger to the debug log. It is the default
// collaborator when no audio backend is wired.
type Logged struct{}

func (Logged) TaskCompleted()    { utils.Debugf("trigger: task completed") }
func (Logged) SessionStarted()   { utils.Debugf("trigger: session started") }
func (Logged) SessionCompleted() { utils.Debugf("trigger: session completed") }
func (Logged) LevelUp(level int) { utils.Debugf("trigger: level up to %d", level) }
func (Logged) AchievementUnlocked(id string) {
	utils.Debugf("trigger: achievement unlocked %s", id)
}
func (Logged) PurchaseMade(itemID string) {
	utils.Debugf("trigger: purchase %s", itemID)
}

var _ Triggers = Logged{}

// Multi fans each trigger out to every element in order.
type Multi []Triggers

func (m Multi) TaskCompleted() {
	for _, t := range m {
		t.TaskCompleted()
	}
}

func (m Multi) SessionStarted() {
	for _, t := range m {
		t.SessionStarted()
	}
}

func (m Multi) SessionCompleted() {
	for _, t := range m {
		t.SessionCompleted()
	}
}

func (m Multi) LevelUp(level int) {
	for _, t := range m {
		t.LevelUp(level)
	}
}

func (m Multi) AchievementUnlocked(id string) {
	for _, t := range m {
		t.AchievementUnlocked(id)
	}
}

func (m Multi) PurchaseMade(itemID string) {
	for _, t := range m {
		t.PurchaseMade(itemID)
	}
}

var _ Triggers = Multi{}
