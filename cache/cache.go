// SPDX-License-Identifier: GPL-3.0-or-later
package cache

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Store is the key/value store behind the cache and the offline replay. Get reports a
// missing key with ok == false, which is different from a stored empty value.
type Store interface {
	Put(key string, value []byte) error
	Get(key string) (value []byte, ok bool, err error)
}

type Kind string

const (
	KindSelectInfo = Kind("select_info")
	KindStatus     = Kind("status")
	KindAllUids    = Kind("all_uids")
	KindUpdated    = Kind("updated")
	KindGMetadata  = Kind("g_metadata")
	KindFlags      = Kind("flags")
	KindBody       = Kind("body")
	KindFolders    = Kind("folders")
)

// Key joins the components below the account root into a hierarchical path, e.g.
// account.7/INBOX/all_uids. Every component is escaped, so a folder name containing the
// hierarchy delimiter cannot collide with a deeper path.
func Key(accountId uint64, components ...interface{}) string {
	elems := make([]string, 0, len(components)+1)
	elems = append(elems, "account."+strconv.FormatUint(accountId, 10))
	for _, c := range components {
		elems = append(elems, url.PathEscape(component(c)))
	}

	return strings.Join(elems, "/")
}

func component(c interface{}) string {
	switch v := c.(type) {
	case string:
		return v
	case Kind:
		return string(v)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

// Set stores value as JSON under key.
func Set(store Store, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode %s: %w", key, err)
	}

	err = store.Put(key, data)
	if err != nil {
		return fmt.Errorf("could not store %s: %w", key, err)
	}

	return nil
}

// Load decodes the JSON stored under key into value. ok is false if the key is absent, value
// is left untouched in that case.
func Load(store Store, key string, value interface{}) (bool, error) {
	data, ok, err := store.Get(key)
	if err != nil {
		return false, fmt.Errorf("could not load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}

	err = json.Unmarshal(data, value)
	if err != nil {
		return false, fmt.Errorf("could not decode %s: %w", key, err)
	}

	return true, nil
}
