package permissions

import (
	"net/http"
	"testing"

	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/domain/roles"

	"github.com/stretchr/testify/assert"
)

const authorID = 1

var (
	anonymous = models.AnonymousUser
	author    = &models.User{ID: authorID, Role: roles.User}
	stranger  = &models.User{ID: 2, Role: roles.User}
	moderator = &models.User{ID: 3, Role: roles.Moderator}
	admin     = &models.User{ID: 4, Role: roles.Admin}
	superuser = &models.User{ID: 5, Role: roles.User, IsSuperuser: true}
)

type outcome int

const (
	allow outcome = iota
	unauth
	deny
)

func check(t *testing.T, principal *models.User, action Action, res Resource, expected outcome) {
	t.Helper()
	err := Authorize(principal, action, res)
	switch expected {
	case allow:
		assert.NoError(t, err)
	case unauth:
		assert.ErrorIs(t, err, ErrAuthenticationRequired)
	case deny:
		assert.ErrorIs(t, err, ErrPermissionDenied)
	}
}

func TestCatalogue(t *testing.T) {
	for _, kind := range []Kind{KindGenre, KindCategory, KindTitle} {
		res := Resource{Kind: kind}
		t.Run(string(kind), func(t *testing.T) {
			for _, p := range []*models.User{anonymous, nil, author, moderator, admin, superuser} {
				check(t, p, Read, res, allow)
			}
			for _, action := range []Action{Create, Update, Delete} {
				check(t, anonymous, action, res, unauth)
				check(t, author, action, res, deny)
				check(t, moderator, action, res, deny)
				check(t, admin, action, res, allow)
				check(t, superuser, action, res, allow)
			}
		})
	}
}

func TestOwnedContent(t *testing.T) {
	for _, kind := range []Kind{KindReview, KindComment} {
		res := Resource{Kind: kind, OwnerID: authorID}
		t.Run(string(kind), func(t *testing.T) {
			check(t, anonymous, Read, res, allow)
			check(t, anonymous, Create, Resource{Kind: kind}, unauth)
			for _, p := range []*models.User{author, stranger, moderator, admin, superuser} {
				check(t, p, Create, Resource{Kind: kind}, allow)
			}
			for _, action := range []Action{Update, Delete} {
				check(t, anonymous, action, res, unauth)
				check(t, author, action, res, allow)
				check(t, stranger, action, res, deny)
				check(t, moderator, action, res, allow)
				check(t, admin, action, res, allow)
				check(t, superuser, action, res, allow)
			}
		})
	}
}

func TestProfile(t *testing.T) {
	own := func(u *models.User) Resource { return Resource{Kind: KindProfile, OwnerID: u.ID} }
	check(t, anonymous, Read, Resource{Kind: KindProfile}, unauth)
	for _, p := range []*models.User{author, moderator, admin} {
		check(t, p, Read, own(p), allow)
		check(t, p, Update, own(p), allow)
	}
	check(t, author, Delete, own(author), deny)
	check(t, author, Read, own(stranger), deny)
	check(t, moderator, Update, own(stranger), deny)
}

func TestUsersCollection(t *testing.T) {
	res := Resource{Kind: KindUser}
	for _, action := range []Action{Read, Create, Update, Delete} {
		check(t, anonymous, action, res, unauth)
		check(t, author, action, res, deny)
		check(t, moderator, action, res, deny)
		check(t, admin, action, res, allow)
		check(t, superuser, action, res, allow)
	}
	nonSuperAdmin := &models.User{ID: 6, Role: roles.Admin, IsSuperuser: false}
	check(t, nonSuperAdmin, Delete, res, allow)
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, Read, ActionFor(http.MethodGet))
	assert.Equal(t, Read, ActionFor(http.MethodHead))
	assert.Equal(t, Create, ActionFor(http.MethodPost))
	assert.Equal(t, Update, ActionFor(http.MethodPatch))
	assert.Equal(t, Update, ActionFor(http.MethodPut))
	assert.Equal(t, Delete, ActionFor(http.MethodDelete))
}
