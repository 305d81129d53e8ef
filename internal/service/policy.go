package service

import ar "acme_reviews"

// CanModify reports whether actorID may change or delete a resource owned by ownerID.
func CanModify(actorID, ownerID string) bool {
	return actorID != "" && actorID == ownerID
}

// authorizeOwner applies CanModify to a loaded resource addressed under
// /users/:userId. The path id has to name the actor as well; any mismatch is
// reported exactly like a bad token.
func authorizeOwner(actorID, pathUserID, ownerID string) error {
	if !CanModify(actorID, ownerID) || pathUserID != actorID {
		return ar.ErrUnauthorized
	}
	return nil
}
