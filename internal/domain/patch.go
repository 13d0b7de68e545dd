package domain

// TripPatch carries a partial trip update from the HTTP layer to the service
// layer. A nil field was absent from the request payload and leaves the
// stored value untouched; a non-nil field overwrites, even with an empty
// string. Presence in the payload is the sole overwrite criterion.
type TripPatch struct {
	Name        *string
	Destination *string
	Type        *TripType
	StartDate   *string
	EndDate     *string
	Description *string
}
