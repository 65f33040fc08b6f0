// Package model defines the core domain types for the arts & sports portal.
package model

import "time"

// Role identifies what a user is allowed to do in the portal.
type Role string

const (
	RoleStudent      Role = "Student"
	RoleHouseAdmin   Role = "House Admin"
	RoleJudge        Role = "Judge"
	RoleWebsiteAdmin Role = "Website Admin"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleHouseAdmin, RoleJudge, RoleWebsiteAdmin:
		return true
	}
	return false
}

// House is one of the four fixed student cohorts competing for the cup.
type House string

const (
	HouseRed    House = "Red"
	HouseBlue   House = "Blue"
	HouseGreen  House = "Green"
	HouseYellow House = "Yellow"
)

// Houses lists all houses in their canonical order. Leaderboard results
// fall back to this order when totals tie.
func Houses() []House {
	return []House{HouseRed, HouseBlue, HouseGreen, HouseYellow}
}

// Valid reports whether h is one of the four known houses.
func (h House) Valid() bool {
	switch h {
	case HouseRed, HouseBlue, HouseGreen, HouseYellow:
		return true
	}
	return false
}

// EventCategory splits events between the two festival tracks.
type EventCategory string

const (
	CategoryArts   EventCategory = "Arts"
	CategorySports EventCategory = "Sports"
)

// EventType controls whether registration needs a house-admin decision.
type EventType string

const (
	// EventNormal events accept registrations immediately.
	EventNormal EventType = "Normal"
	// EventPermissionRequired events hold registrations as Pending until
	// a house admin approves or rejects them.
	EventPermissionRequired EventType = "Permission Required"
)

// RegistrationStatus is the lifecycle state of a Registration.
type RegistrationStatus string

const (
	StatusPending    RegistrationStatus = "Pending"
	StatusApproved   RegistrationStatus = "Approved"
	StatusRejected   RegistrationStatus = "Rejected"
	StatusRegistered RegistrationStatus = "Registered"
)

// Active reports whether the status counts toward event capacity and
// participant lists. Pending and Rejected registrations do not.
func (s RegistrationStatus) Active() bool {
	return s == StatusApproved || s == StatusRegistered
}

// User is an identity record. House is set only for students and house
// admins; judges and the website admin carry no affiliation.
type User struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Role              Role   `json:"role"`
	House             House  `json:"house,omitempty"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
	PasswordHash      string `json:"-"`
}

// Event is a competition slot on the festival calendar. MaxParticipants
// of zero means unbounded.
type Event struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Category         EventCategory `json:"category"`
	Description      string        `json:"description"`
	Rules            string        `json:"rules"`
	EventType        EventType     `json:"eventType"`
	MaxParticipants  int           `json:"maxParticipants,omitempty"`
	AssignedJudgeIDs []string      `json:"assignedJudgeIds"`
	Date             time.Time     `json:"date"`
}

// Limited reports whether the event caps its participant count.
func (e *Event) Limited() bool {
	return e.MaxParticipants > 0
}

// Registration is a student's claim on participation in an event.
// Score is nil until a judge submits one.
type Registration struct {
	ID        string             `json:"id"`
	EventID   string             `json:"eventId"`
	StudentID string             `json:"studentId"`
	Status    RegistrationStatus `json:"status"`
	Score     *int               `json:"score,omitempty"`
}

// Scored reports whether a judge has recorded a score.
func (r *Registration) Scored() bool {
	return r.Score != nil
}

// StudentRegistration is a registration enriched with its event for the
// student dashboard. Event is nil when the event no longer resolves.
type StudentRegistration struct {
	Registration
	Event *Event `json:"event,omitempty"`
}

// PendingRequest is a pending registration enriched for house-admin
// review.
type PendingRequest struct {
	Registration
	Student *User  `json:"student,omitempty"`
	Event   *Event `json:"event,omitempty"`
}

// EventParticipant is an active registration enriched with its student
// for judge scoring sheets.
type EventParticipant struct {
	Registration
	Student *User `json:"student,omitempty"`
}

// HouseScore is one house's aggregate on the leaderboard.
type HouseScore struct {
	House House `json:"house"`
	Score int   `json:"score"`
}

// Leaderboard is the per-house standings for a festival year. The year
// is echoed back to the caller; scores are not filtered by it yet.
type Leaderboard struct {
	Year   int          `json:"year"`
	Scores []HouseScore `json:"scores"`
}

// LoginRequest is the payload for /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the authenticated user and their access token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// RegisterRequest is the payload for registering a student for an event.
// EventType is supplied by the caller, derived from the event being
// registered for.
type RegisterRequest struct {
	StudentID string    `json:"studentId" validate:"required"`
	EventType EventType `json:"eventType" validate:"required,oneof='Normal' 'Permission Required'"`
}

// RegisterResponse reports whether a registration record was created.
// Registration is nil when the event was full.
type RegisterResponse struct {
	Created      bool          `json:"created"`
	Registration *Registration `json:"registration,omitempty"`
}

// DecisionRequest is the payload for approving or rejecting a pending
// registration.
type DecisionRequest struct {
	Approve bool `json:"approve"`
}

// ScoreUpdate is one entry of a judge's score sheet. Score arrives as
// the raw form value; non-numeric entries are dropped during submission.
type ScoreUpdate struct {
	RegistrationID string `json:"registrationId"`
	Score          string `json:"score"`
}

// SubmitScoresRequest is the payload for a judge's batch score submission.
type SubmitScoresRequest struct {
	Updates []ScoreUpdate `json:"updates" validate:"required"`
}

// UpdatePictureRequest is the payload for changing a profile picture.
type UpdatePictureRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
