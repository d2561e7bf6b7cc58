package research

import (
	"nichescout/internal/domain/market"
)

// TargetAudience returns the demographic profile a niche's product would be
// marketed to. The lookup is total: niches without a profile get empty,
// non-nil slices. Keys are matched exactly, same as the market size table.
func TargetAudience(niche string) market.AudienceDescriptor {
	switch niche {
	case "project_management":
		return market.AudienceDescriptor{
			Roles:        []string{"Project Managers", "Developers"},
			Industries:   []string{"Tech", "Consulting", "Construction"},
			CompanySizes: []string{"Small", "Medium"},
		}
	case "workflow Automation":
		return market.AudienceDescriptor{
			Roles:        []string{"IT Professionals", "Operations Managers"},
			Industries:   []string{"Tech", "Manufacturing", "Finance"},
			CompanySizes: []string{"Medium", "Large"},
		}
	default:
		return market.AudienceDescriptor{
			Roles:        []string{},
			Industries:   []string{},
			CompanySizes: []string{},
		}
	}
}
