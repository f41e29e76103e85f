package hisaab

import (
	"encoding/json"
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("fields keep their append order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("currency", "INR")
		w.Append("amount", 500)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"currency":"INR","amount":500}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embed merges a raw object in place", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("kind", "transaction")
		w.Embed(json.RawMessage(`{"id":"t1","status":"pending"}`))
		w.Append("notes", "september installment")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"kind":"transaction","id":"t1","status":"pending","notes":"september installment"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional drops zero values only", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("ignoredCount", 0) // an appended zero stays
		w.Optional("notes", "")
		w.Optional("repeat", 0)
		w.Optional("method", "upi")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"ignoredCount":0,"method":"upi"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embed from a struct", func(t *testing.T) {
		var w jsonObjectWriter
		payment := struct {
			Method string `json:"method"`
			Notes  string `json:"notes"`
		}{
			Method: "cash",
			Notes:  "first half",
		}
		w.Append("kind", "payment")
		w.EmbedFrom(payment)
		w.Append("deleted", false)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"kind":"payment","method":"cash","notes":"first half","deleted":false}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}
