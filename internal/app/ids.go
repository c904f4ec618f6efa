package app

import (
	"strings"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.NewString()
}

// newReservationCode returns an opaque single-use capability token. Dashes are
// stripped so the code survives copy-paste into URLs and emails intact.
func newReservationCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
