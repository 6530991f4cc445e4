// Package models defines the core data structures for players, goal
// validations, and administrator accounts.
package models

import "time"

// Player represents one registered user tracked for progression and goals.
type Player struct {
	// ID is the unique identifier for the player, issued by the sequence
	// allocator. Values of 1000 and above are reserved for administrators.
	ID int64 `json:"id"`
	// Name is the player's display name.
	Name string `json:"name"`
	// Email is the player's contact address.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the player's password.
	PasswordHash string `json:"-"`
	// Goal, SecondGoal and ThirdGoal are the player's free-text objectives.
	Goal       string `json:"goal"`
	SecondGoal string `json:"secondGoal"`
	ThirdGoal  string `json:"thirdGoal"`
	// DateValidate* hold the time each goal slot was last validated. They
	// start one day before creation so the first validation is immediately
	// allowed.
	DateValidate       time.Time `json:"dateValidate"`
	DateValidateSecond time.Time `json:"dateValidateSecond"`
	DateValidateThird  time.Time `json:"dateValidateThird"`
	// Level is the player's progression level, starting at 0.
	Level int `json:"level"`
	// LastLevelUp is the time of the most recent level change.
	LastLevelUp time.Time `json:"lastLevelUp"`
	// Money is the player's in-app currency balance.
	Money int64 `json:"money"`
	// CreationDate is the time the player registered.
	CreationDate time.Time `json:"creationDate"`
	// EmailSent records whether the registration email was delivered.
	EmailSent bool `json:"emailSent"`
	// WarningSent records whether the inactivity warning was delivered.
	WarningSent bool `json:"warningSent"`
}

// GoalEntry is one immutable record of a completed goal validation.
type GoalEntry struct {
	// PlayerID references the player who validated the goal. It is a lookup
	// key, not an ownership relation.
	PlayerID int64 `json:"playerId"`
	// Name is the player's display name at validation time, denormalized.
	// It goes stale if the player later renames.
	Name string `json:"name"`
	// DoneGoal is the goal text that was completed.
	DoneGoal string `json:"doneGoal"`
	// DoneDate is the time of validation.
	DoneDate time.Time `json:"doneDate"`
}

// AdminAccount is one administrator credential record.
type AdminAccount struct {
	// ID is the administrator's identifier, AdminIDFloor or above.
	ID int64 `json:"id"`
	// Pseudonyme is the unique administrator login name.
	Pseudonyme string `json:"pseudonyme"`
	// PasswordHash is the bcrypt hash of the administrator's password.
	PasswordHash string `json:"-"`
}

// AdminIDFloor is the first identifier reserved for administrator accounts.
// Player ids stay strictly below it, and the update dispatcher refuses to
// touch anything at or above it.
const AdminIDFloor int64 = 1000

// GoalSlot identifies one of the three goal fields on a player record.
type GoalSlot int

const (
	// GoalFirst is the primary goal slot.
	GoalFirst GoalSlot = iota
	// GoalSecond is the second goal slot.
	GoalSecond
	// GoalThird is the third goal slot.
	GoalThird
)
