package models

// ActorType distinguishes the two kinds of authenticated accounts.
type ActorType string

const (
	ActorTypeOrganization ActorType = "organization"
	ActorTypeVolunteer    ActorType = "volunteer"
)

// IsValidActorType reports whether t names a known actor type.
func IsValidActorType(t ActorType) bool {
	return t == ActorTypeOrganization || t == ActorTypeVolunteer
}
