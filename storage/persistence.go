package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// Envelope wraps persisted data with the schema version its shape conforms
// to. A stored version older than the current one is the sole trigger for
// migration.
type Envelope struct {
	Version   int             `json:"version"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// Migration upgrades a payload stored at one schema version to the next.
type Migration func(data json.RawMessage) (json.RawMessage, error)

// Persistence is a best-effort versioned layer over a Store. Writes never
// surface errors: failures are logged for the operator and absorbed, and
// loads fall back to the caller's default. Keys are namespaced under a fixed
// prefix so the whole namespace can be cleared at once.
type Persistence struct {
	store      Store
	version    int
	prefix     string
	migrations map[int]Migration
}

func NewPersistence(store Store, version int, prefix string) *Persistence {
	return &Persistence{
		store:      store,
		version:    version,
		prefix:     prefix,
		migrations: map[int]Migration{},
	}
}

// RegisterMigration installs the transform applied to payloads stored at
// version from. Migration runs every registered transform in ascending order
// up to the current version; versions without a transform pass data through
// unchanged. The chain is forward-only. Transforms should tolerate being
// re-run on already-migrated data; the chain itself does not enforce that.
func (p *Persistence) RegisterMigration(from int, m Migration) {
	p.migrations[from] = m
}

// Save wraps data in a versioned envelope and writes it under key.
func (p *Persistence) Save(key string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("storage: marshal %q: %v", key, err)
		return
	}
	env := Envelope{Version: p.version, Data: raw, Timestamp: time.Now().UnixMilli()}
	blob, err := json.Marshal(env)
	if err != nil {
		log.Printf("storage: encode envelope %q: %v", key, err)
		return
	}
	if err := p.store.Set(p.prefix+key, string(blob)); err != nil {
		log.Printf("storage: write %q: %v", key, err)
	}
}

// Load reads the value stored under key. An absent key yields def unchanged.
// A payload that cannot be decoded as an envelope is treated as a version-0
// envelope around def. When the stored version is older than the current
// schema version the migration chain runs and the migrated value is
// re-persisted under key before being returned. Load never fails outward.
func Load[T any](p *Persistence, key string, def T) T {
	raw, ok, err := p.store.Get(p.prefix + key)
	if err != nil {
		log.Printf("storage: read %q: %v", key, err)
		return def
	}
	if !ok {
		return def
	}

	var env Envelope
	if uerr := json.Unmarshal([]byte(raw), &env); uerr != nil || env.Data == nil {
		defRaw, merr := json.Marshal(def)
		if merr != nil {
			log.Printf("storage: marshal default for %q: %v", key, merr)
			return def
		}
		log.Printf("storage: corrupt payload at %q, resetting to default", key)
		env = Envelope{Version: 0, Data: defRaw, Timestamp: time.Now().UnixMilli()}
	}

	if env.Version < p.version {
		migrated, merr := p.migrate(env.Version, env.Data)
		if merr != nil {
			log.Printf("storage: migrate %q from v%d: %v", key, env.Version, merr)
			return def
		}
		var out T
		if uerr := json.Unmarshal(migrated, &out); uerr != nil {
			log.Printf("storage: decode migrated %q: %v", key, uerr)
			return def
		}
		p.Save(key, out)
		return out
	}

	var out T
	if uerr := json.Unmarshal(env.Data, &out); uerr != nil {
		log.Printf("storage: decode %q: %v", key, uerr)
		return def
	}
	return out
}

func (p *Persistence) migrate(from int, data json.RawMessage) (json.RawMessage, error) {
	for v := from; v < p.version; v++ {
		m, ok := p.migrations[v]
		if !ok {
			continue
		}
		next, err := m(data)
		if err != nil {
			return nil, fmt.Errorf("v%d: %w", v, err)
		}
		data = next
	}
	return data, nil
}

// Remove deletes a single key. Best-effort.
func (p *Persistence) Remove(key string) {
	if err := p.store.Delete(p.prefix + key); err != nil {
		log.Printf("storage: delete %q: %v", key, err)
	}
}

// Clear deletes every key under the namespace prefix. Best-effort.
func (p *Persistence) Clear() {
	keys, err := p.store.Keys(p.prefix)
	if err != nil {
		log.Printf("storage: list keys for clear: %v", err)
		return
	}
	for _, k := range keys {
		if err := p.store.Delete(k); err != nil {
			log.Printf("storage: delete %q: %v", k, err)
		}
	}
}
