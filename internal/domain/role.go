package domain

// Role represents a League of Legends position
type Role string

const (
	RoleTop     Role = "top"
	RoleJungle  Role = "jungle"
	RoleMid     Role = "mid"
	RoleADC     Role = "adc"
	RoleSupport Role = "support"
)

// AllRoles contains all valid roles in order
var AllRoles = []Role{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}

// DisplayName returns a user-friendly display name for the role
func (r Role) DisplayName() string {
	switch r {
	case RoleTop:
		return "Top"
	case RoleJungle:
		return "Jungle"
	case RoleMid:
		return "Mid"
	case RoleADC:
		return "Bot (ADC)"
	case RoleSupport:
		return "Support"
	default:
		return string(r)
	}
}

// RolePreset is a role as shown on a slot: id, label and lane icon.
type RolePreset struct {
	Role    Role   `json:"id"`
	Label   string `json:"label"`
	IconURL string `json:"iconUrl"`
}

var roleIcons = map[Role]string{
	RoleTop:     "https://i.gyazo.com/7b8fda7c5873adecb9952a7976d742e2.png",
	RoleJungle:  "https://i.gyazo.com/d68e04b23e0e4617e48e0219d7983132.png",
	RoleMid:     "https://i.gyazo.com/b88e74e904103df27ed3866a2b82a5c2.png",
	RoleADC:     "https://i.gyazo.com/9011ad799d088a97df37937de33a82e6.png",
	RoleSupport: "https://i.gyazo.com/a639850e73ae36d6296e339f62ed30d6.png",
}

// IconURL returns the lane icon, falling back to the mid icon.
func (r Role) IconURL() string {
	if u, ok := roleIcons[r]; ok {
		return u
	}
	return roleIcons[RoleMid]
}

// RolePresets returns the five presets in lane order. The slice is a
// fresh copy on every call.
func RolePresets() []RolePreset {
	presets := make([]RolePreset, len(AllRoles))
	for i, r := range AllRoles {
		presets[i] = RolePreset{Role: r, Label: r.DisplayName(), IconURL: r.IconURL()}
	}
	return presets
}
