package metadata

import (
	"fmt"

	"github.com/google/uuid"
)

// NamespaceViolationIdentity is the UUID namespace for violation identifiers,
// derived from "sunset/violation/v1" under the standard URL namespace.
var NamespaceViolationIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("sunset/violation/v1"))

// ViolationID returns a deterministic UUID v5 for a marker on an element.
// index is the marker's position among the element's markers, so duplicate
// markers with the same threshold keep distinct IDs. The same inputs always
// produce the same ID, so reports from separate builds can be diffed.
func ViolationID(elementName, threshold string, index int) uuid.UUID {
	return uuid.NewSHA1(NamespaceViolationIdentity, []byte(fmt.Sprintf("%s@%s#%d", elementName, threshold, index)))
}
