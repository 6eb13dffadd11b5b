package models

import "fmt"

// Kind identifies the variant held by a Value.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindNames = [...]string{
	NullKind:   "null",
	BoolKind:   "bool",
	NumberKind: "number",
	StringKind: "string",
	ArrayKind:  "array",
	ObjectKind: "object",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Value is a node of a parsed JSON document. The set of implementations is
// closed: Null, Bool, Number, String, Array and *Object.
type Value interface {
	Kind() Kind
	isValue()
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number, held as a float64 approximation.
type Number float64

// String is a decoded JSON string.
type String string

// Array is an ordered JSON array.
type Array []Value

func (Null) Kind() Kind   { return NullKind }
func (Bool) Kind() Kind   { return BoolKind }
func (Number) Kind() Kind { return NumberKind }
func (String) Kind() Kind { return StringKind }
func (Array) Kind() Kind  { return ArrayKind }

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}
func (Array) isValue()  {}

// Object is a JSON object with unique keys kept in document order.
type Object struct {
	keys    []string
	members map[string]Value
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{members: make(map[string]Value)}
}

func (*Object) Kind() Kind { return ObjectKind }
func (*Object) isValue()   {}

// Add stores v under key unless key is already present. The first value for
// a key wins; later duplicates are discarded and Add reports false.
func (o *Object) Add(key string, v Value) bool {
	if o.members == nil {
		o.members = make(map[string]Value)
	}
	if _, exists := o.members[key]; exists {
		return false
	}
	o.keys = append(o.keys, key)
	o.members[key] = v
	return true
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.members[key]
	return v, ok
}

// GetString returns the value under key if it is present and a String.
func (o *Object) GetString(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(String)
	return string(s), ok
}

// Keys returns the object keys in the order they first appeared.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Len reports the number of distinct keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}
