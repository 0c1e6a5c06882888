package domain

// Role is a coarse authorization tag carried by credentials.
type Role string

const (
	RoleAdmin          Role = "ROLE_ADMIN"
	RoleMedecin        Role = "ROLE_MEDECIN"
	RoleReceptionniste Role = "ROLE_RECEPTIONNISTE"
	RoleInfirmier      Role = "ROLE_INFIRMIER"
)

// String returns the wire value.
func (r Role) String() string {
	return string(r)
}

// RoleNames converts roles to their wire values.
func RoleNames(roles ...Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}
