package station

import "github.com/google/uuid"

// Id prefixes by element kind.
const (
	PrefixPlatform       = "plat"
	PrefixTrack          = "trk"
	PrefixRestrictedZone = "zone"
	PrefixShop           = "shop"
	PrefixInfrastructure = "infra"
	PrefixGroup          = "grp"
)

// IDFunc generates a fresh element id for a prefix.
type IDFunc func(prefix string) string

// NewID returns prefix-<uuid>.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
