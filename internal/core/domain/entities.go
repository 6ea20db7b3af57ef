package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleUser      Role = "USER"
	RoleDealer    Role = "DEALER"
	RoleVolunteer Role = "VOLUNTEER"
	RoleAdmin     Role = "ADMIN"
)

// DonationStatus represents the lifecycle state of a scrap donation
type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationAssigned  DonationStatus = "assigned"
	DonationPickedUp  DonationStatus = "picked-up"
	DonationDonated   DonationStatus = "donated"
	DonationRejected  DonationStatus = "rejected"
	DonationCancelled DonationStatus = "cancelled"
	DonationProcessed DonationStatus = "processed"
	DonationRecycled  DonationStatus = "recycled"
)

// DonationTransitions maps each donation status to the statuses it may move to.
// The service layer is the authority for these edges; clients only mirror them.
var DonationTransitions = map[DonationStatus][]DonationStatus{
	DonationPending:   {DonationAssigned, DonationRejected, DonationCancelled},
	DonationAssigned:  {DonationPickedUp, DonationPending, DonationCancelled},
	DonationPickedUp:  {DonationDonated},
	DonationDonated:   {DonationProcessed},
	DonationProcessed: {DonationRecycled},
}

// CanTransition reports whether a donation may move from one status to another
func (s DonationStatus) CanTransition(to DonationStatus) bool {
	for _, next := range DonationTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// GaudaanStatus represents the lifecycle state of an animal-donation request
type GaudaanStatus string

const (
	GaudaanUnassigned GaudaanStatus = "unassigned"
	GaudaanAssigned   GaudaanStatus = "assigned"
	GaudaanPickedUp   GaudaanStatus = "picked_up"
	GaudaanShelter    GaudaanStatus = "shelter"
	GaudaanDropped    GaudaanStatus = "dropped"
	GaudaanRejected   GaudaanStatus = "rejected"
)

// GaudaanTransitions maps each gaudaan status to its allowed next statuses
var GaudaanTransitions = map[GaudaanStatus][]GaudaanStatus{
	GaudaanUnassigned: {GaudaanAssigned, GaudaanRejected},
	GaudaanAssigned:   {GaudaanPickedUp, GaudaanRejected, GaudaanUnassigned},
	GaudaanPickedUp:   {GaudaanShelter},
	GaudaanShelter:    {GaudaanDropped},
}

// CanTransition reports whether a gaudaan may move from one status to another
func (s GaudaanStatus) CanTransition(to GaudaanStatus) bool {
	for _, next := range GaudaanTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// TaskStatus represents the lifecycle state of a volunteer task
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskActive    TaskStatus = "active"
	TaskCompleted TaskStatus = "completed"
	TaskCancelled TaskStatus = "cancelled"
)

// TaskTransitions maps each task status to its allowed next statuses
var TaskTransitions = map[TaskStatus][]TaskStatus{
	TaskPending: {TaskActive, TaskCancelled},
	TaskActive:  {TaskCompleted, TaskCancelled},
}

// CanTransition reports whether a task may move from one status to another
func (s TaskStatus) CanTransition(to TaskStatus) bool {
	for _, next := range TaskTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// RoleRoutes is the declarative role→landing-route table used by signin
// responses. One lookup instead of duplicated role branching.
var RoleRoutes = map[Role]string{
	RoleAdmin:     "/admin/dashboard",
	RoleDealer:    "/dealer/dashboard",
	RoleVolunteer: "/volunteer/dashboard",
	RoleUser:      "/dashboard",
}

// RouteForRole returns the landing route for a role, defaulting to the user dashboard
func RouteForRole(role Role) string {
	if route, ok := RoleRoutes[role]; ok {
		return route
	}
	return RoleRoutes[RoleUser]
}

// User represents an actor in the domain layer
type User struct {
	ID           uint
	Name         string
	Email        string
	Phone        string
	Password     string // Hashed
	Role         Role
	ProfileImage string
	Address      string
	City         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken represents a refresh token in the domain
type RefreshToken struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
