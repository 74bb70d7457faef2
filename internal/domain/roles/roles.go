package roles

// Role is the authorization level stored on an account. It is independent of
// the superuser flag: an admin need not be a superuser and vice versa.
type Role string

const (
	User      Role = "user"
	Moderator Role = "moderator"
	Admin     Role = "admin"
)

// Default is assigned to every account created through signup.
const Default = User

func (r Role) Valid() bool {
	switch r {
	case User, Moderator, Admin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

type Capabilities struct {
	CanBypassOwnership bool // edit/delete reviews and comments of other users
	CanManageCatalogue bool // genres, categories and titles
	CanManageUsers     bool
}

// CapabilitiesOf derives what a (role, superuser) pair may do.
// Either admin role or superuser flag alone grants everything.
func CapabilitiesOf(role Role, isSuperuser bool) Capabilities {
	switch {
	case role == Admin || isSuperuser:
		return Capabilities{
			CanBypassOwnership: true,
			CanManageCatalogue: true,
			CanManageUsers:     true,
		}
	case role == Moderator:
		return Capabilities{CanBypassOwnership: true}
	default:
		return Capabilities{}
	}
}
