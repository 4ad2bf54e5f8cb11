package auctions

import (
	"time"

	"github.com/google/uuid"

	"github.com/bidhaus/bidhaus-backend/pkg/db/models"
	"github.com/bidhaus/bidhaus-backend/pkg/enums"
	pkgerrors "github.com/bidhaus/bidhaus-backend/pkg/errors"
)

// DeriveStatus computes the lifecycle phase of an auction at the given
// instant. Both boundaries count as active: an auction starting exactly now is
// already live, one ending exactly now is still live.
func DeriveStatus(now, start, end time.Time) enums.AuctionStatus {
	if now.Before(start) {
		return enums.AuctionStatusUpcoming
	}
	if now.After(end) {
		return enums.AuctionStatusEnded
	}
	return enums.AuctionStatusActive
}

// authorizeMutation is the shared guard for update and soft delete. Ownership
// is checked before lifecycle so a non-owner always sees Forbidden, never a
// state hint about an auction they cannot touch.
func authorizeMutation(item *models.AuctionItem, requesterID uuid.UUID, role enums.UserRole, now time.Time) error {
	if item.CreatedByID != requesterID && !role.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "not authorized to modify this auction")
	}

	switch DeriveStatus(now, item.StartTime, item.EndTime) {
	case enums.AuctionStatusActive:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot modify an auction that has already started")
	case enums.AuctionStatusEnded:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot modify an auction that has already ended")
	}
	return nil
}
