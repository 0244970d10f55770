package cache

import "github.com/AliKaner/mc-case/internal/client/models"

// MergeRecordSets builds the record set persisted in a snapshot: incoming
// records first, then supplementary records whose identity is still free.
// The first record wins on duplicate identities and tombstoned identities
// are dropped from both sources. Inputs are not modified.
func MergeRecordSets(incoming, supplementary []models.Record, tombstones []models.ID) []models.Record {
	deleted := make(map[string]struct{}, len(tombstones))
	for _, id := range tombstones {
		deleted[id.Key()] = struct{}{}
	}

	seen := make(map[string]struct{}, len(incoming)+len(supplementary))
	out := make([]models.Record, 0, len(incoming)+len(supplementary))

	add := func(r models.Record) {
		k := r.ID.Key()
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		if _, gone := deleted[k]; gone {
			return
		}
		out = append(out, r.Clone())
	}

	for _, r := range incoming {
		add(r)
	}
	for _, r := range supplementary {
		add(r)
	}
	return out
}

func containsID(ids []models.ID, id models.ID) bool {
	for _, x := range ids {
		if x.Equal(id) {
			return true
		}
	}
	return false
}

func withoutID(records []models.Record, id models.ID) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if !r.ID.Equal(id) {
			out = append(out, r)
		}
	}
	return out
}
