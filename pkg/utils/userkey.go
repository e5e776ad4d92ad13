package utils

import (
	"fmt"
	"unicode/utf16"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeriveUserKey maps an arbitrary client-supplied identifier (usually an
// email, since there is no real account system in front of this service) to
// a deterministic ObjectID used as the storage key. An identifier that is
// already a valid 24-hex ObjectID is used unchanged. Anything else is run
// through a 32-bit rolling hash over its UTF-16 code units and hex-encoded,
// left-padded to the ObjectID's 24-character width. Hashing code units
// rather than runes keeps the keys identical to those minted by browser
// clients, which hash with charCodeAt.
//
// The hash is not collision resistant: two different identifiers can map to
// the same key. Acceptable here only because the deployment has a handful of
// users and the mapping carries no security weight.
func DeriveUserKey(userID string) (primitive.ObjectID, error) {
	if oid, err := primitive.ObjectIDFromHex(userID); err == nil {
		return oid, nil
	}

	var h int32
	for _, unit := range utf16.Encode([]rune(userID)) {
		h = h*31 + int32(unit)
	}

	v := int64(h)
	if v < 0 {
		v = -v
	}

	hexKey := fmt.Sprintf("%024x", v)
	return primitive.ObjectIDFromHex(hexKey[:24])
}
