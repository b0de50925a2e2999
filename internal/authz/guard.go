// Package authz is the single place that maps (role, company membership)
// to permitted workflow actions. Handlers never re-implement role checks.
package authz

import (
	"hr-wizard/internal/apperr"
	"hr-wizard/internal/models"
	"hr-wizard/internal/workflow"
)

// Actor is the acting user plus whether they belong to the project's
// company. Membership is resolved by the caller so the guard stays pure.
type Actor struct {
	User     models.User
	IsMember bool
}

func (a Actor) isAdmin() bool {
	return a.User.Role == models.RoleAdmin
}

// CanEdit: hr_manager within the company may edit a step unless it is
// locked. Admin may always edit, including a locked step.
func CanEdit(a Actor, status workflow.StepStatus) error {
	if a.isAdmin() {
		return nil
	}
	if a.User.Role != models.RoleHRManager || !a.IsMember {
		return apperr.ErrForbidden
	}
	if status == workflow.StatusLocked {
		return apperr.ErrStepLocked
	}
	return nil
}

// CanSubmit: same population as CanEdit, minus the admin lock bypass —
// a locked step cannot be re-submitted by anyone but is still only a
// status check away for an admin edit.
func CanSubmit(a Actor) error {
	if a.isAdmin() {
		return nil
	}
	if a.User.Role != models.RoleHRManager || !a.IsMember {
		return apperr.ErrForbidden
	}
	return nil
}

// CanVerify: ceo of the same company, or admin.
func CanVerify(a Actor) error {
	if a.isAdmin() {
		return nil
	}
	if a.User.Role != models.RoleCEO || !a.IsMember {
		return apperr.ErrForbidden
	}
	return nil
}

// CanComment: any member may comment; consultants are members brought in
// precisely for this.
func CanComment(a Actor) error {
	if a.isAdmin() || a.IsMember {
		return nil
	}
	return apperr.ErrForbidden
}

// CanRead: project payload, step answers and recommendations.
func CanRead(a Actor) error {
	if a.isAdmin() || a.IsMember {
		return nil
	}
	return apperr.ErrForbidden
}

// CanViewAudit: the trail is for reviewers — ceo, consultant, admin.
func CanViewAudit(a Actor) error {
	if a.isAdmin() {
		return nil
	}
	if !a.IsMember {
		return apperr.ErrForbidden
	}
	switch a.User.Role {
	case models.RoleCEO, models.RoleConsultant:
		return nil
	}
	return apperr.ErrForbidden
}

// CanInvite: hr_manager of the company, or admin.
func CanInvite(a Actor) error {
	if a.isAdmin() {
		return nil
	}
	if a.User.Role != models.RoleHRManager || !a.IsMember {
		return apperr.ErrForbidden
	}
	return nil
}
