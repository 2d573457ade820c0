package domain

// Room комната в резиденции
// Данные резиденции денормализованы при чтении (join)
type Room struct {
	ID            int64
	ResidenceID   int64
	Title         string
	PricePerMonth float64
	IsAvailable   bool

	ResidenceName    string
	ResidenceAddress *string
	OwnerID          *int64 // владелец резиденции, может быть NULL
}

// IsOwnedBy returns true if the user owns the residence containing the room
func (r *Room) IsOwnedBy(userID int64) bool {
	return r.OwnerID != nil && *r.OwnerID == userID
}
