package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"attendancebook/internal/domain"
	"attendancebook/internal/kv"
)

// migratedOrganizationName is the name given to the organization that adopts
// all pre-multi-tenant data ("My Organization").
const migratedOrganizationName = "マイ団体"

// MigrationResult reports the outcome of one migration attempt. Err is set
// instead of returned so callers never have to distinguish a failed migration
// from a failed call; a failed migration leaves the legacy keys untouched and
// is safe to retry.
type MigrationResult struct {
	Migrated       bool   `json:"migrated"`
	OrganizationID string `json:"organization_id,omitempty"`
	Err            error  `json:"-"`
}

// Migrator reshapes the legacy single-tenant flat keys into organization-scoped
// keys, exactly once. It must run before any repository is used.
type Migrator struct {
	store kv.Store
	now   func() time.Time
}

// NewMigrator returns a Migrator over the given store.
func NewMigrator(store kv.Store) *Migrator {
	return &Migrator{store: store, now: time.Now}
}

// HasLegacyData reports whether any of the four legacy flat keys exist.
func (m *Migrator) HasLegacyData() (bool, error) {
	for _, key := range []string{legacyEventDatesKey, legacyGroupsKey, legacyMembersKey, legacyAttendancesKey} {
		ok, err := m.store.Has(key)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// IsCompleted reports whether the migration completion flag is set.
func (m *Migrator) IsCompleted() (bool, error) {
	v, ok, err := m.store.Get(migrationCompletedKey)
	if err != nil {
		return false, err
	}
	return ok && v == "true", nil
}

// Run performs the migration. Legacy keys are deleted and the completion flag
// set only after every scoped write succeeded; on any failure the legacy data
// is left in place and the flag stays unset.
func (m *Migrator) Run(ctx context.Context) MigrationResult {
	done, err := m.IsCompleted()
	if err != nil {
		return MigrationResult{Err: err}
	}
	if done {
		return MigrationResult{Migrated: false}
	}

	hasLegacy, err := m.HasLegacyData()
	if err != nil {
		return MigrationResult{Err: err}
	}
	if !hasLegacy {
		// Nothing to move; just remember we looked.
		if err := m.store.Set(migrationCompletedKey, "true"); err != nil {
			return MigrationResult{Err: err}
		}
		return MigrationResult{Migrated: false}
	}

	org, err := domain.NewOrganization(migratedOrganizationName, "", m.now())
	if err != nil {
		return MigrationResult{Err: err}
	}

	eventDates, err := readLegacy[domain.EventDate](m.store, legacyEventDatesKey)
	if err != nil {
		return MigrationResult{Err: err}
	}
	groups, err := readLegacy[domain.Group](m.store, legacyGroupsKey)
	if err != nil {
		return MigrationResult{Err: err}
	}
	members, err := readLegacy[domain.Member](m.store, legacyMembersKey)
	if err != nil {
		return MigrationResult{Err: err}
	}
	attendances, err := readLegacy[domain.Attendance](m.store, legacyAttendancesKey)
	if err != nil {
		return MigrationResult{Err: err}
	}

	for _, e := range eventDates {
		e.OrganizationID = org.ID
	}
	for _, g := range groups {
		g.OrganizationID = org.ID
	}
	for _, mb := range members {
		mb.OrganizationID = org.ID
	}
	for _, a := range attendances {
		a.OrganizationID = org.ID
	}

	var orgs []*domain.Organization
	if raw, ok, err := m.store.Get(organizationsKey); err != nil {
		return MigrationResult{Err: err}
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &orgs); err != nil {
			return MigrationResult{Err: fmt.Errorf("parse %s: %w", organizationsKey, err)}
		}
	}
	orgs = append(orgs, org)

	if err := writeJSON(m.store, organizationsKey, orgs); err != nil {
		return MigrationResult{Err: err}
	}
	if err := writeJSON(m.store, eventDatesKey(org.ID), eventDates); err != nil {
		return MigrationResult{Err: err}
	}
	if err := writeJSON(m.store, groupsKey(org.ID), groups); err != nil {
		return MigrationResult{Err: err}
	}
	if err := writeJSON(m.store, membersKey(org.ID), members); err != nil {
		return MigrationResult{Err: err}
	}
	if err := writeJSON(m.store, attendancesKey(org.ID), attendances); err != nil {
		return MigrationResult{Err: err}
	}

	// All scoped writes succeeded; now it is safe to drop the legacy keys.
	for _, key := range []string{legacyEventDatesKey, legacyGroupsKey, legacyMembersKey, legacyAttendancesKey} {
		if err := m.store.Delete(key); err != nil {
			return MigrationResult{Err: fmt.Errorf("delete legacy key %s: %w", key, err)}
		}
	}
	if err := m.store.Set(migrationCompletedKey, "true"); err != nil {
		return MigrationResult{Err: err}
	}

	return MigrationResult{Migrated: true, OrganizationID: org.ID}
}

// readLegacy parses a legacy collection strictly: malformed JSON aborts the
// migration instead of being dropped, since dropping here would lose the only
// copy of the data.
func readLegacy[T any](store kv.Store, key string) ([]*T, error) {
	raw, ok, err := store.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var items []*T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("parse legacy key %s: %w", key, err)
	}
	return items, nil
}

func writeJSON(store kv.Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(key, string(raw))
}
