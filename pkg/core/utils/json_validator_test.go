package utils

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	t.Run("bare object", func(t *testing.T) {
		got, err := ExtractJSONObject(`{"a": 1}`)
		if err != nil {
			t.Fatal(err)
		}
		if got != `{"a": 1}` {
			t.Errorf("got %q", got)
		}
	})

	t.Run("wrapped in prose and fences", func(t *testing.T) {
		raw := "Here is the result:\n```json\n{\"a\": {\"b\": 2}}\n```\nHope that helps!"
		got, err := ExtractJSONObject(raw)
		if err != nil {
			t.Fatal(err)
		}
		if got != `{"a": {"b": 2}}` {
			t.Errorf("got %q", got)
		}
	})

	t.Run("braces inside strings ignored", func(t *testing.T) {
		raw := `{"note": "uses { and } freely", "n": 1} trailing`
		got, err := ExtractJSONObject(raw)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(got, "trailing") {
			t.Errorf("extraction ran past the object: %q", got)
		}
		var parsed map[string]interface{}
		if err := json.Unmarshal([]byte(got), &parsed); err != nil {
			t.Errorf("extracted substring is not valid JSON: %v", err)
		}
	})

	t.Run("unbalanced returns tail", func(t *testing.T) {
		got, err := ExtractJSONObject(`prefix {"a": [1, 2`)
		if err != nil {
			t.Fatal(err)
		}
		if got != `{"a": [1, 2` {
			t.Errorf("got %q", got)
		}
	})

	t.Run("no object", func(t *testing.T) {
		if _, err := ExtractJSONObject("plain text only"); err == nil {
			t.Error("expected error for input without an object")
		}
	})
}

func TestSmartParse(t *testing.T) {
	type payload struct {
		Summary string   `json:"summary"`
		Risks   []string `json:"risks"`
	}

	t.Run("standard json", func(t *testing.T) {
		var out payload
		if _, err := SmartParse(`{"summary": "ok", "risks": ["r1"]}`, &out); err != nil {
			t.Fatal(err)
		}
		if out.Summary != "ok" || len(out.Risks) != 1 {
			t.Errorf("parsed = %+v", out)
		}
	})

	t.Run("repairable json", func(t *testing.T) {
		var out payload
		if _, err := SmartParse(`{"summary": "ok", "risks": ["r1",],}`, &out); err != nil {
			t.Fatal(err)
		}
		if out.Summary != "ok" {
			t.Errorf("parsed = %+v", out)
		}
	})

	t.Run("hjson style", func(t *testing.T) {
		var out payload
		input := "{\n  summary: ok\n  risks: [r1, r2]\n}"
		if _, err := SmartParse(input, &out); err != nil {
			t.Fatal(err)
		}
		if out.Summary != "ok" || len(out.Risks) != 2 {
			t.Errorf("parsed = %+v", out)
		}
	})
}

func TestMustRepairJSON_NeverErrors(t *testing.T) {
	got := MustRepairJSON(`{"a": 1,}`)
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Errorf("repaired output is not valid JSON: %v", err)
	}
}
