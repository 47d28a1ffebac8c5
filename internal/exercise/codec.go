package exercise

import (
	"encoding/json"
	"fmt"
)

// List is a slice of exercises that round-trips through JSON, restoring the
// concrete variant from each element's "type" field.
type List []Exercise

func (l *List) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	out := make(List, 0, len(raws))
	for i, raw := range raws {
		ex, err := Decode(raw)
		if err != nil {
			return fmt.Errorf("exercise %d: %w", i, err)
		}
		out = append(out, ex)
	}
	*l = out
	return nil
}

// Decode unmarshals a single exercise into its concrete variant.
func Decode(raw []byte) (Exercise, error) {
	var head struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	var ex Exercise
	switch head.Type {
	case TypeMultipleChoice:
		ex = &MultipleChoice{}
	case TypeTranslation:
		ex = &Translation{}
	case TypeListen:
		ex = &Listen{}
	case TypeFillBlank:
		ex = &FillBlank{}
	case TypeMatch:
		ex = &Match{}
	case TypeWordOrder:
		ex = &WordOrder{}
	case TypeWrite:
		ex = &Write{}
	case TypeSpeak:
		ex = &Speak{}
	default:
		return nil, fmt.Errorf("unknown exercise type %q", head.Type)
	}

	if err := json.Unmarshal(raw, ex); err != nil {
		return nil, err
	}
	return ex, nil
}
