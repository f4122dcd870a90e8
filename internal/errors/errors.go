package errors

import "errors"

// Expected business outcomes of the reservation engine. These are returned to
// callers as typed results and matched with errors.Is; anything else that
// comes out of a service is a store failure.
var ErrSeatUnavailable = errors.New("seat is already held by another reservation")
var ErrTripNotActive = errors.New("trip is cancelled or already departed")
var ErrInvalidSeat = errors.New("seat does not exist on this trip")
var ErrNotFound = errors.New("record not found")
var ErrAlreadyCancelled = errors.New("reservation is already cancelled")
var ErrAlreadyPaid = errors.New("reservation is already paid")
var ErrPriceMismatch = errors.New("payment amount does not match reserved price")
var ErrInvalidTimeout = errors.New("timeout must be between 1 and 1440 minutes")
