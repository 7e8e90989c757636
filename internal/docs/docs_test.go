package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	t.Parallel()

	got := strings.Join(Topics(), ",")
	if got != "cli,config,keys,reminders" {
		t.Fatalf("Topics() = %s", got)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	md, ok := Get(" KEYS ")
	if !ok || !strings.HasPrefix(md, "# Keys") {
		t.Fatalf("Get(keys) = %q, %v", md, ok)
	}
	for _, topic := range []string{"", "nope", "../docs", "content/keys"} {
		if _, ok := Get(topic); ok {
			t.Fatalf("Get(%q) should fail", topic)
		}
	}
}
