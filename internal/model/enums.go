package model

// UserRole identifies what a user account is allowed to do on the platform
type UserRole string

const (
	RoleSuperAdmin     UserRole = "SUPER_ADMIN"
	RoleOrphanageAdmin UserRole = "ORPHANAGE_ADMIN"
	RoleDonor          UserRole = "DONOR"
)

// ValidRole reports whether the value is one of the known roles
func ValidRole(r UserRole) bool {
	switch r {
	case RoleSuperAdmin, RoleOrphanageAdmin, RoleDonor:
		return true
	}
	return false
}

// OrphanageType describes which children an orphanage houses
type OrphanageType string

const (
	TypeBoysOnly  OrphanageType = "BOYS_ONLY"
	TypeGirlsOnly OrphanageType = "GIRLS_ONLY"
	TypeMixed     OrphanageType = "MIXED"
)

// ValidOrphanageType reports whether the value is a known orphanage type
func ValidOrphanageType(t OrphanageType) bool {
	switch t {
	case TypeBoysOnly, TypeGirlsOnly, TypeMixed:
		return true
	}
	return false
}

// VerificationStatus is the platform-controlled trust flag on an orphanage
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// ValidVerificationStatus reports whether the value is a known status
func ValidVerificationStatus(s VerificationStatus) bool {
	switch s {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}

// DonationCategory names a bucket a donation amount can be allocated to
type DonationCategory string

const (
	CategoryMeals          DonationCategory = "MEALS"
	CategoryEducation      DonationCategory = "EDUCATION"
	CategoryHealthcare     DonationCategory = "HEALTHCARE"
	CategoryClothes        DonationCategory = "CLOTHES"
	CategoryInfrastructure DonationCategory = "INFRASTRUCTURE"
	CategoryOther          DonationCategory = "OTHER"
)

// PaymentStatus is the state of a recorded donation payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)
