// Package moderrpb converts moderr errors to and from protobuf
// google.protobuf.Struct messages.
package moderrpb

import (
	"encoding/json"

	"github.com/shiwano/moderr"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrEncodeFailure is returned when a property cannot be represented as a
// protobuf value.
var ErrEncodeFailure = moderr.Define("moderrpb.EncodeError", moderr.NoTrace())

// ToStruct converts the serialized form of err into a Struct.
// The display name is always included, so that the receiving side can
// resolve the error type. Property values that have no direct protobuf
// representation are converted through their JSON encoding.
func ToStruct(err *moderr.Error) (*structpb.Struct, error) {
	fields := err.Serialize()

	s := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(fields)+1)}
	for k, v := range fields.All() {
		pv, e := toValue(v)
		if e != nil {
			return nil, ErrEncodeFailure.From(e, moderr.Properties{"key": k})
		}
		s.Fields[k] = pv
	}
	if _, ok := s.Fields[moderr.KeyName]; !ok {
		s.Fields[moderr.KeyName] = structpb.NewStringValue(err.Name())
	}
	return s, nil
}

// Marshal encodes err as a serialized Struct message.
func Marshal(err *moderr.Error) ([]byte, error) {
	s, e := ToStruct(err)
	if e != nil {
		return nil, e
	}
	return proto.Marshal(s)
}

// FromStruct restores an error from a Struct built by ToStruct.
func FromStruct(r *moderr.Resolver, s *structpb.Struct) (*moderr.Error, error) {
	return r.Restore(s.AsMap())
}

// Unmarshal decodes a Struct message encoded by Marshal and restores the error.
func Unmarshal(r *moderr.Resolver, data []byte) (*moderr.Error, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, moderr.ErrDecodeFailure.From(err)
	}
	return FromStruct(r, &s)
}

func toValue(v any) (*structpb.Value, error) {
	if pv, err := structpb.NewValue(v); err == nil {
		return pv, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return nil, err
	}
	return structpb.NewValue(generic)
}
