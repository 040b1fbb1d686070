// Package kvstore implements the embedded storage backend: one JSON-encoded
// collection per (organization, entity type) key on a kv.Store, plus the
// one-shot migration of the legacy single-tenant key layout.
package kvstore

// Key layout. Organizations live under a single flat key; every other entity
// collection is scoped by organization ID.
const (
	organizationsKey      = "attendance_organizations"
	migrationCompletedKey = "attendance_migration_completed"

	// Pre-multi-tenant flat keys, only touched by the legacy migration.
	legacyEventDatesKey  = "attendance_event_dates"
	legacyGroupsKey      = "attendance_groups"
	legacyMembersKey     = "attendance_members"
	legacyAttendancesKey = "attendance_attendances"
)

func eventDatesKey(orgID string) string  { return "attendance_" + orgID + "_event_dates" }
func groupsKey(orgID string) string      { return "attendance_" + orgID + "_groups" }
func membersKey(orgID string) string     { return "attendance_" + orgID + "_members" }
func attendancesKey(orgID string) string { return "attendance_" + orgID + "_attendances" }
