package moderr_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shiwano/moderr"
)

func TestNewResolver(t *testing.T) {
	a := moderr.Define("DuplicateError")
	b := moderr.Define("DuplicateError")
	r := moderr.NewResolver(a, nil, b)

	if got := r.Types(); len(got) != 2 {
		t.Errorf("want 2 types, got %d", len(got))
	}
	if got, ok := r.Resolve("DuplicateError"); !ok || got != a {
		t.Error("want first type to win")
	}
	if got, ok := r.Resolve("Unknown"); ok || got != nil {
		t.Error("want unknown name not to resolve")
	}
	if r.Fallback() != nil {
		t.Error("want no fallback")
	}
}

func TestResolver_Unmarshal(t *testing.T) {
	httpError := moderr.Define("HTTPError",
		moderr.Defaults(moderr.Properties{"status": 500}),
		moderr.SerializeKeys("message", "name", "stack"),
	)
	notFound := httpError.Extend("NotFoundError", moderr.Defaults(moderr.Properties{"status": 404}))
	r := moderr.NewResolver(httpError, notFound)

	t.Run("round trip", func(t *testing.T) {
		orig := notFound.New("user not found", moderr.Properties{"user_id": "u123"})

		data, err := json.Marshal(orig)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}

		restored, err := r.Unmarshal(data)
		if err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}

		if !errors.Is(restored, notFound) || !errors.Is(restored, httpError) {
			t.Error("want restored error to be of NotFoundError")
		}
		if restored.Message() != "user not found" {
			t.Errorf("want message, got %q", restored.Message())
		}
		if restored.Name() != "NotFoundError" {
			t.Errorf("want name NotFoundError, got %q", restored.Name())
		}
		if got, _ := restored.Get("user_id"); got != "u123" {
			t.Errorf("want user_id, got %v", got)
		}
		if got, _ := restored.Get("status"); got != float64(404) {
			t.Errorf("want status 404, got %v", got)
		}
		if restored.Stack() == nil || restored.Stack().String() != orig.Stack().String() {
			t.Error("want stack to be restored from its text")
		}
		if _, ok := restored.Properties()["name"]; ok {
			t.Error("want name not to be stored as a property")
		}
	})

	t.Run("defaults fill missing properties", func(t *testing.T) {
		restored, err := r.Unmarshal([]byte(`{"name":"HTTPError","message":"boom"}`))
		if err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}

		if got, _ := restored.Get("status"); got != 500 {
			t.Errorf("want default status, got %v", got)
		}
		if restored.Stack() != nil {
			t.Error("want no stack when none was serialized")
		}
	})

	t.Run("unknown name without fallback", func(t *testing.T) {
		_, err := r.Unmarshal([]byte(`{"name":"Unknown","message":"boom"}`))

		if !errors.Is(err, moderr.ErrTypeNotFound) {
			t.Fatalf("want ErrTypeNotFound, got %v", err)
		}
		if name, _ := moderr.Property[string](err, "type_name"); name != "Unknown" {
			t.Errorf("want type_name property, got %q", name)
		}
	})

	t.Run("unknown name with fallback", func(t *testing.T) {
		restored, err := r.WithFallback(moderr.Base).Unmarshal([]byte(`{"name":"Unknown","message":"boom"}`))
		if err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}

		if restored.Type() != moderr.Base {
			t.Error("want fallback type")
		}
		if restored.Name() != "Unknown" {
			t.Errorf("want serialized name to be kept, got %q", restored.Name())
		}
	})

	t.Run("missing name without fallback", func(t *testing.T) {
		data, err := json.Marshal(moderr.Define("PlainError").New("boom"))
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}

		_, err = r.Unmarshal(data)
		if !errors.Is(err, moderr.ErrTypeNotFound) {
			t.Fatalf("want ErrTypeNotFound for an error serialized without its name, got %v", err)
		}
		if name, ok := moderr.Property[string](err, "type_name"); !ok || name != "" {
			t.Errorf("want empty type_name property, got %q", name)
		}
	})

	t.Run("missing name with fallback", func(t *testing.T) {
		restored, err := r.WithFallback(httpError).Unmarshal([]byte(`{"message":"boom"}`))
		if err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}

		if restored.Name() != "HTTPError" {
			t.Errorf("want fallback name, got %q", restored.Name())
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		for _, data := range []string{`{`, `[1,2]`, `null`, `"text"`} {
			_, err := r.Unmarshal([]byte(data))
			if !errors.Is(err, moderr.ErrDecodeFailure) {
				t.Errorf("%s: want ErrDecodeFailure, got %v", data, err)
			}
		}
	})
}

func TestResolver_Restore(t *testing.T) {
	typ := moderr.Define("RestoredError")
	r := moderr.NewResolver(typ)

	restored, err := r.Restore(map[string]any{"name": "RestoredError", "message": "boom", "code": 7})
	if err != nil {
		t.Fatalf("failed to restore: %v", err)
	}

	if !typ.Match(restored) {
		t.Error("want restored error to be of RestoredError")
	}
	if got, _ := restored.Get("code"); got != 7 {
		t.Errorf("want code 7, got %v", got)
	}
}
