package mazeapi

import (
	"encoding/json"

	"github.com/beka-birhanu/vinom-maze/game"
	"google.golang.org/protobuf/types/known/structpb"
)

// snapshotMessage converts a snapshot into a protobuf Struct carrying the
// same fields as its JSON form.
func snapshotMessage(s game.Snapshot) (*structpb.Struct, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return structpb.NewStruct(fields)
}
