package shared

import (
	"context"

	"hotel-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

// LoadRoomRates resolves every requested room; a missing or duplicated id is rejected.
func LoadRoomRates(ctx context.Context, reads CommandReads, roomIDs []uuid.UUID) ([]reservation.RoomRate, error) {
	if len(roomIDs) == 0 {
		return nil, reservation.ErrNoRooms
	}
	seen := make(map[uuid.UUID]struct{}, len(roomIDs))
	for _, id := range roomIDs {
		if _, dup := seen[id]; dup {
			return nil, reservation.ErrDuplicateRoom
		}
		seen[id] = struct{}{}
	}

	rates, err := reads.RoomRatesByIDs(ctx, roomIDs)
	if err != nil {
		return nil, err
	}
	if len(rates) != len(roomIDs) {
		return nil, reservation.ErrRoomNotFound
	}

	byID := make(map[uuid.UUID]reservation.RoomRate, len(rates))
	for _, r := range rates {
		byID[r.RoomID] = r
	}
	ordered := make([]reservation.RoomRate, 0, len(roomIDs))
	for _, id := range roomIDs {
		r, ok := byID[id]
		if !ok {
			return nil, reservation.ErrRoomNotFound
		}
		ordered = append(ordered, r)
	}
	return ordered, nil
}
