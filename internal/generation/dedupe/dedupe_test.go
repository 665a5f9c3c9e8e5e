package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	title string
	url   string
}

func keys(i item) []string { return []string{i.url, TitleKey(i.title)} }

func TestBy_KeepsFirstOccurrenceInOrder(t *testing.T) {
	in := []item{
		{"Go Tour", "https://go.dev/tour"},
		{"Effective Go", "https://go.dev/doc/effective_go"},
		{"go tour!", "https://other.example"},
		{"Another", "https://go.dev/doc/effective_go"},
		{"Last", ""},
	}
	got := By(in, keys)
	assert.Equal(t, []item{in[0], in[1], in[4]}, got)
}

func TestBy_Idempotent(t *testing.T) {
	in := []item{{"A", "1"}, {"a", "2"}, {"B", "1"}, {"C", "3"}}
	once := By(in, keys)
	assert.Equal(t, once, By(once, keys))
}

func TestBy_EmptyKeysNeverCollide(t *testing.T) {
	in := []item{{"", ""}, {"", ""}, {"!!!", ""}}
	assert.Len(t, By(in, keys), 3)
}

func TestBy_Empty(t *testing.T) {
	assert.Empty(t, By([]item(nil), keys))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Strings([]string{"a", " b", "", "a", "b "}))
}

func TestTitleKey(t *testing.T) {
	assert.Equal(t, "personalfinancetracker", TitleKey("Personal Finance-Tracker!"))
	assert.Equal(t, "", TitleKey("  ??  "))
}
