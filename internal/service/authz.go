package service

import "vidtube/pkg/errors"

// isOwner is the single authorization predicate shared by every component:
// a mutation on an owned resource is permitted only when the acting
// identity equals the recorded owner.
func isOwner(actorID, ownerID string) bool {
	return actorID != "" && actorID == ownerID
}

// requireOwner returns a Forbidden error unless the actor owns the resource
func requireOwner(actorID, ownerID, message string) error {
	if !isOwner(actorID, ownerID) {
		return errors.NewForbiddenError(message)
	}
	return nil
}
