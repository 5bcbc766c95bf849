package urn

import (
	"github.com/google/uuid"

	"github.com/ghettovoice/urn/internal/util"
)

// UUIDNamespace is the NID of RFC 9562 UUID URNs.
const UUIDNamespace = "uuid"

// FromUUID returns the "urn:uuid:" URN of id.
func FromUUID(id uuid.UUID) *URN {
	u, err := New(UUIDNamespace, id.String(), "", Escaped)
	if err != nil {
		// canonical UUID text always matches the NSS grammar
		panic(err)
	}
	return u
}

// UUID returns the UUID of a "urn:uuid:" URN.
// It reports false for other namespaces or an NSS that is not a UUID.
func (u *URN) UUID() (uuid.UUID, bool) {
	if u == nil || !util.EqFold(u.nid.String(), UUIDNamespace) {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(u.nss.Unescaped())
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
