package hisaab

import "encoding/json"

// Enums persist as their string form so snapshots and backups stay readable.

func marshalEnum(s string) ([]byte, error) { return json.Marshal(s) }

func unmarshalEnum[T any](b []byte, dst *T, parse func(string) (T, error)) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := parse(s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
