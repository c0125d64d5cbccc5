package notify

import (
	"encoding/json"
	"fmt"
)

// ChangeType identifies the kind of mutation described by a [ChangeEvent].
type ChangeType int

const (
	Add ChangeType = iota + 1
	Update
	Delete
	Clear
)

func (t ChangeType) String() string {
	switch t {
	case Add:
		return "add"
	case Update:
		return "update"
	case Delete:
		return "delete"
	case Clear:
		return "clear"
	default:
		return fmt.Sprintf("ChangeType(%d)", int(t))
	}
}

func (t ChangeType) MarshalText() ([]byte, error) {
	switch t {
	case Add, Update, Delete, Clear:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("invalid change type %d", int(t))
	}
}

func (t *ChangeType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "add":
		*t = Add
	case "update":
		*t = Update
	case "delete":
		*t = Delete
	case "clear":
		*t = Clear
	default:
		return fmt.Errorf("invalid change type '%s'", text)
	}
	return nil
}

// ChangeEvent describes a single mutation of a keyed or unique-item collection.
//
// Fields that don't apply to the Type are left as zero values, and should be treated as absent rather than zero.
// Use HasKey, HasValue, and HasOldValue to tell the difference.
//
//	Add:    Key, Value
//	Update: Key, Value, OldValue
//	Delete: Key, OldValue
//	Clear:  (nothing)
type ChangeEvent[K comparable, V any] struct {
	Type     ChangeType
	Key      K
	Value    V
	OldValue V
}

func (e ChangeEvent[K, V]) HasKey() bool {
	return e.Type != Clear
}

func (e ChangeEvent[K, V]) HasValue() bool {
	return e.Type == Add || e.Type == Update
}

func (e ChangeEvent[K, V]) HasOldValue() bool {
	return e.Type == Update || e.Type == Delete
}

func (e ChangeEvent[K, V]) String() string {
	switch e.Type {
	case Add:
		return fmt.Sprintf("add %v: %v", e.Key, e.Value)
	case Update:
		return fmt.Sprintf("update %v: %v -> %v", e.Key, e.OldValue, e.Value)
	case Delete:
		return fmt.Sprintf("delete %v: %v", e.Key, e.OldValue)
	default:
		return e.Type.String()
	}
}

// MarshalJSON produces the wire shape of the event, omitting fields that are absent for the event type.
//
//	{"type":"update","key":"x","value":2,"oldValue":1}
//	{"type":"clear","key":null}
func (e ChangeEvent[K, V]) MarshalJSON() ([]byte, error) {
	wire := struct {
		Type     ChangeType `json:"type"`
		Key      any        `json:"key"`
		Value    any        `json:"value,omitempty"`
		OldValue any        `json:"oldValue,omitempty"`
	}{
		Type: e.Type,
	}
	if e.HasKey() {
		wire.Key = e.Key
	}
	if e.HasValue() {
		wire.Value = valueOf(e.Value)
	}
	if e.HasOldValue() {
		wire.OldValue = valueOf(e.OldValue)
	}
	return json.Marshal(wire)
}

// present keeps a present value from being dropped by omitempty when it's nil.
type present struct {
	val any
}

func (p present) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.val)
}

func valueOf[V any](val V) any {
	return present{val: val}
}
