package models

import "time"

type UserRole string

const (
	RoleCitizen   UserRole = "citizen"
	RoleAuthority UserRole = "authority"
	RoleHospital  UserRole = "hospital"
	RoleDonor     UserRole = "donor"
)

// User is an alert recipient registered for a region.
type User struct {
	ID        string
	Role      UserRole
	Phone     string
	Language  string // preferred SMS language code, e.g. "hi"
	Region    string
	BloodType string
	CreatedAt time.Time
}
