// Package policy holds the role and ownership rules applied to
// orphanage-scoped endpoints. Decisions are pure functions of the caller's
// role, the orphanage the caller administers (if any) and the target
// orphanage, so they can be tested without a database.
package policy

import (
	"errors"

	"orphanage-service/internal/model"
)

// ErrAccessDenied is returned when a caller fails a role or ownership check.
var ErrAccessDenied = errors.New("access denied")

// CanManageOrphanage decides whether a caller may perform an admin-scoped
// action (update profile, manage children/staff, list donations, read
// analytics) against the target orphanage.
//
//   - SUPER_ADMIN is always allowed.
//   - ORPHANAGE_ADMIN is allowed only for the orphanage it administers;
//     an admin with no orphanage yet is denied everywhere.
//   - DONOR (and anything unrecognized) is denied.
func CanManageOrphanage(role model.UserRole, ownedOrphanageID *string, targetOrphanageID string) error {
	switch role {
	case model.RoleSuperAdmin:
		return nil
	case model.RoleOrphanageAdmin:
		if ownedOrphanageID != nil && *ownedOrphanageID == targetOrphanageID {
			return nil
		}
		return ErrAccessDenied
	default:
		return ErrAccessDenied
	}
}

// CanCreateOrphanage decides whether a caller may register a new orphanage.
func CanCreateOrphanage(role model.UserRole) error {
	if role == model.RoleSuperAdmin || role == model.RoleOrphanageAdmin {
		return nil
	}
	return ErrAccessDenied
}

// RequireSuperAdmin gates the platform-wide admin surface.
func RequireSuperAdmin(role model.UserRole) error {
	if role == model.RoleSuperAdmin {
		return nil
	}
	return ErrAccessDenied
}

// CanReadDonation decides whether a caller may read a single donation record.
// The donor who made it and the platform super-admin are allowed.
func CanReadDonation(role model.UserRole, callerID, donorID string) error {
	if callerID == donorID || role == model.RoleSuperAdmin {
		return nil
	}
	return ErrAccessDenied
}
