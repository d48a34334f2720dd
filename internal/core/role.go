package core

// Role tags the two participants of a room.
type Role string

const (
	// RoleSender is the first slot of a room. Auto-matching assigns it to the
	// earlier-queued client.
	RoleSender Role = "sender"
	// RoleReceiver is the second slot of a room.
	RoleReceiver Role = "receiver"
)

// ParseRole converts a wire value into a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSender:
		return RoleSender, true
	case RoleReceiver:
		return RoleReceiver, true
	default:
		return "", false
	}
}

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleSender || r == RoleReceiver
}

// Opposite returns the other role of the pair.
func (r Role) Opposite() Role {
	if r == RoleSender {
		return RoleReceiver
	}
	return RoleSender
}

// ReceiverPolicy controls what a manual join does when the receiver slot is
// already taken.
type ReceiverPolicy string

const (
	// ReceiverPolicyOverwrite replaces the current receiver. The displaced
	// client loses its room association without notice.
	ReceiverPolicyOverwrite ReceiverPolicy = "overwrite"
	// ReceiverPolicyGuarded rejects the join like the sender slot does.
	ReceiverPolicyGuarded ReceiverPolicy = "guarded"
)

// ParseReceiverPolicy maps a config value to a policy. Empty selects overwrite.
func ParseReceiverPolicy(s string) (ReceiverPolicy, bool) {
	switch ReceiverPolicy(s) {
	case "", ReceiverPolicyOverwrite:
		return ReceiverPolicyOverwrite, true
	case ReceiverPolicyGuarded:
		return ReceiverPolicyGuarded, true
	default:
		return "", false
	}
}
