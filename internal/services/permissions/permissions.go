// Package permissions decides whether a principal may perform an action on a
// resource. It is stateless: callers resolve the resource (and its author)
// first and pass what they found.
package permissions

import (
	"net/http"

	"yamdb/proj/internal/domain/errs"
	"yamdb/proj/internal/domain/models"
)

type Action string

const (
	Read   Action = "read"
	Create Action = "create"
	Update Action = "update"
	Delete Action = "delete"
)

// ActionFor maps an HTTP method onto an action. Unknown methods are treated as
// updates so they never fall into the read-only branch.
func ActionFor(method string) Action {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return Read
	case http.MethodPost:
		return Create
	case http.MethodDelete:
		return Delete
	default:
		return Update
	}
}

type Kind string

const (
	KindGenre    Kind = "genre"
	KindCategory Kind = "category"
	KindTitle    Kind = "title"
	KindReview   Kind = "review"
	KindComment  Kind = "comment"
	KindUser     Kind = "user"    // any account, managed by admins
	KindProfile  Kind = "profile" // the principal's own account
)

type Resource struct {
	Kind    Kind
	OwnerID int64 // author of a review/comment, account id of a profile
}

var (
	ErrAuthenticationRequired = errs.New(errs.ErrAuthenticationRequired, "authentication credentials were not provided")
	ErrPermissionDenied       = errs.New(errs.ErrPermissionDenied, "you do not have permission to perform this action")
)

func (k Kind) isPublic() bool {
	switch k {
	case KindGenre, KindCategory, KindTitle, KindReview, KindComment:
		return true
	}
	return false
}

// Authorize returns nil when principal may perform action on res.
// A nil principal is anonymous.
func Authorize(principal *models.User, action Action, res Resource) error {
	if action == Read && res.Kind.isPublic() {
		return nil
	}
	if principal.IsAnonymous() {
		return ErrAuthenticationRequired
	}
	caps := principal.Capabilities()
	switch res.Kind {
	case KindGenre, KindCategory, KindTitle:
		if caps.CanManageCatalogue {
			return nil
		}
	case KindReview, KindComment:
		if action == Create || caps.CanBypassOwnership || principal.ID == res.OwnerID {
			return nil
		}
	case KindProfile:
		if caps.CanManageUsers {
			return nil
		}
		if principal.ID == res.OwnerID && (action == Read || action == Update) {
			return nil
		}
	case KindUser:
		if caps.CanManageUsers {
			return nil
		}
	}
	return ErrPermissionDenied
}
