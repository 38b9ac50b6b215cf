// Package surreal implements the storage contracts on SurrealDB: one table
// per entity type, backend-assigned record ids, ownership lists as structured
// queries filtering on the exact-match userId field.
package surreal

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// recordID normalizes an external identifier into a record id for the given
// table. Numeric-like ids arriving without a table prefix are coerced.
func recordID(table, id string) string {
	if strings.Contains(id, ":") {
		return id
	}
	return table + ":" + id
}

// convertID flattens the driver's record-id representations into the plain
// "table:key" string used across the domain.
func convertID(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%s:%v", v.Table, v.ID)
		}
	case map[string]interface{}:
		if tb, ok := v["tb"].(string); ok {
			return fmt.Sprintf("%s:%v", tb, v["id"])
		}
		if tb, ok := v["Table"].(string); ok {
			return fmt.Sprintf("%s:%v", tb, v["ID"])
		}
	}
	return fmt.Sprintf("%v", id)
}

// records unwraps the {status, result} envelopes returned by the database
// layer into a flat list of record maps.
func records(results []interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0)
	for _, result := range results {
		resp, ok := result.(map[string]interface{})
		if !ok {
			continue
		}
		if status, ok := resp["status"].(string); !ok || status != "OK" {
			continue
		}
		data, ok := resp["result"].([]interface{})
		if !ok {
			continue
		}
		for _, item := range data {
			if rec, ok := item.(map[string]interface{}); ok {
				out = append(out, rec)
			}
		}
	}
	return out
}

// decodeRecord re-encodes a raw record map into a typed struct, flattening
// the id field first.
func decodeRecord(data map[string]interface{}, v interface{}) error {
	if id, ok := data["id"]; ok {
		data["id"] = convertID(id)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// keyedMutex serializes read-modify-write cycles per resource key so
// concurrent mutations of the same group cannot lose updates while unrelated
// groups proceed in parallel.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
