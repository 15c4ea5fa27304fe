package docs

import (
	"strings"
	"testing"
)

func TestAllTopicsComplete(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("no topics registered")
	}
	seen := make(map[string]bool)
	for _, topic := range all {
		if topic.Name == "" || topic.Title == "" || topic.Summary == "" || topic.Content == "" {
			t.Errorf("topic %q has empty fields: %+v", topic.Name, topic)
		}
		if seen[topic.Name] {
			t.Errorf("duplicate topic %q", topic.Name)
		}
		seen[topic.Name] = true
	}
}

func TestGet(t *testing.T) {
	topic, err := Get("cli-protocol")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !strings.Contains(topic.Content, "Unknown function:") {
		t.Fatalf("unexpected content: %q", topic.Content[:40])
	}

	if _, err := Get("nope"); err == nil {
		t.Fatal("expected error for unknown topic")
	}
}
