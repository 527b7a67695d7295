package auth

import (
	"github.com/spec-kit/repair-tracker/internal/domain"
	apperrors "github.com/spec-kit/repair-tracker/pkg/util/errorutil"
)

// Capability names an action on repair requests.
type Capability string

const (
	CapabilitySubmit       Capability = "submit"
	CapabilityAccept       Capability = "accept"
	CapabilityComplete     Capability = "complete"
	CapabilityReprioritize Capability = "reprioritize"
	CapabilityViewWorklist Capability = "view_worklist"
)

// Authorize reports whether user may exercise capability on req. req may be
// nil for capabilities that do not depend on a particular request.
func Authorize(user domain.User, capability Capability, req *domain.Request) error {
	if user.ID == "" || !user.Role.Valid() {
		return apperrors.NewUnauthorized("authentication required")
	}
	if Can(user, capability, req) {
		return nil
	}
	return apperrors.NewForbidden("not allowed to " + string(capability) + " this request")
}

// Can is the boolean form of Authorize.
func Can(user domain.User, capability Capability, req *domain.Request) bool {
	switch capability {
	case CapabilitySubmit:
		return user.Role.Valid()
	case CapabilityAccept:
		return user.Role == domain.RoleTechnician || user.Role == domain.RoleAdmin
	case CapabilityComplete:
		if user.Role == domain.RoleAdmin {
			return true
		}
		return req != nil && req.IsAssignedTo(user.ID)
	case CapabilityReprioritize:
		return user.Role == domain.RoleAdmin
	case CapabilityViewWorklist:
		return user.Role == domain.RoleTechnician || user.Role == domain.RoleAdmin
	}
	return false
}

// AuthorizeWorklist allows technicians to read their own worklist and admins
// to read anyone's.
func AuthorizeWorklist(user domain.User, technicianID string) error {
	if err := Authorize(user, CapabilityViewWorklist, nil); err != nil {
		return err
	}
	if user.Role != domain.RoleAdmin && technicianID != user.ID {
		return apperrors.NewForbidden("technicians may only view their own worklist")
	}
	return nil
}
