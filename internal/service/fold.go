package service

import (
	"github.com/MKhiriev/go-ledger-sync/models"
)

// aliasKeys are the meta lists that only ever grow.
var aliasKeys = map[string]bool{
	models.MetaKeyGitUserAliases:    true,
	models.MetaKeyWebDAVUserAliases: true,
	models.MetaKeyS3UserAliases:     true,
	models.MetaKeyFolderUserAliases: true,
}

// ledger is an id-indexed item set kept in first-insertion order and folded
// with last-write-wins.
type ledger struct {
	order   []string
	items   map[string]models.Item
	changed map[string]struct{}
}

// newLedger loads a stored snapshot; its ids are unique already.
func newLedger(items []models.Item) *ledger {
	l := &ledger{
		order:   make([]string, 0, len(items)),
		items:   make(map[string]models.Item, len(items)),
		changed: make(map[string]struct{}),
	}
	for _, it := range items {
		id := it.ID()
		if _, ok := l.items[id]; !ok {
			l.order = append(l.order, id)
		}
		l.items[id] = it
	}
	return l
}

// apply folds one log entry in. The entry wins iff its timestamp is not
// older than the stored one, so equal timestamps resolve by arrival order.
func (l *ledger) apply(entry models.Item) bool {
	id := entry.ID()
	if id == "" {
		return false
	}

	cur, ok := l.items[id]
	if ok && entry.UpdateAt() < cur.UpdateAt() {
		return false
	}
	if !ok {
		l.order = append(l.order, id)
	}
	l.items[id] = entry
	l.changed[id] = struct{}{}
	return true
}

func (l *ledger) applyAll(entries []models.Item) {
	for _, e := range entries {
		l.apply(e)
	}
}

// all returns every entry, tombstones included, in insertion order.
func (l *ledger) all() []models.Item {
	out := make([]models.Item, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.items[id])
	}
	return out
}

// changes returns the entries touched since the ledger was loaded.
func (l *ledger) changes() []models.Item {
	out := make([]models.Item, 0, len(l.changed))
	for _, id := range l.order {
		if _, ok := l.changed[id]; ok {
			out = append(out, l.items[id])
		}
	}
	return out
}

// foldStashes replays the pending queue over l and meta in FIFO order and
// returns the resulting meta.
func foldStashes(l *ledger, meta models.Meta, stashes []models.Stash) models.Meta {
	for _, s := range stashes {
		if s.Action.Type == models.ActionMeta {
			meta = mergeMeta(meta, s.Action.Meta)
			continue
		}
		if entry := s.Action.Entry(); entry != nil {
			l.apply(entry)
		}
	}
	return meta
}

// mergeMeta applies patch over base key by key. Alias lists are unioned so
// an alias registered by another collaborator is never dropped.
func mergeMeta(base, patch models.Meta) models.Meta {
	merged := base.Clone()
	for k, v := range patch {
		if !aliasKeys[k] {
			merged[k] = v
			continue
		}
		for _, alias := range patch.Aliases(k) {
			merged, _ = merged.WithAlias(k, alias)
		}
	}
	return merged
}

// material hides tombstones.
func material(items []models.Item) []models.Item {
	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		if !it.IsTombstone() {
			out = append(out, it)
		}
	}
	return out
}
