package domain

import "fmt"

// Access policy for deposits and loans, applied uniformly instead of the
// per-method checks the CRUD layer used to scatter:
//
//	actor   | own resource | another client's resource
//	CLIENT  | allowed      | forbidden
//	ADMIN   | n/a (must name the client explicitly)  | allowed
//
// Administrators always act on behalf of a named client; they never implicitly
// target themselves.

// CanActOn reports whether the user may manage a resource owned by ownerID.
func (u *User) CanActOn(ownerID uint) bool {
	return u.IsAdmin() || u.ID == ownerID
}

// ResolveOnBehalf resolves which user a mutation targets. targetID zero means
// "no client specified". Clients always target themselves and may not name
// anyone else; administrators must name the client.
func ResolveOnBehalf(actor *User, targetID uint) (uint, error) {
	if actor.IsAdmin() {
		if targetID == 0 {
			return 0, fmt.Errorf("%w: an administrator must specify the client the operation is for",
				ErrInvalidArgument)
		}
		return targetID, nil
	}
	if targetID != 0 && targetID != actor.ID {
		return 0, ErrForbidden
	}
	return actor.ID, nil
}
