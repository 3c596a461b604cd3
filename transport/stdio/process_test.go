package stdio

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanLines_SplitsOnNewlineAndSkipsBlank(t *testing.T) {
	input := "first\n\nsecond\nthird"
	var mu sync.Mutex
	var lines []string
	var done bool

	scanLines(strings.NewReader(input), func(line []byte) {
		mu.Lock()
		lines = append(lines, string(line))
		mu.Unlock()
	}, func() {
		mu.Lock()
		done = true
		mu.Unlock()
	})

	assert.Equal(t, []string{"first", "second", "third"}, lines)
	assert.True(t, done)
}

func TestScanLines_EmptyReaderStillCallsOnDone(t *testing.T) {
	called := false
	scanLines(strings.NewReader(""), func(line []byte) {
		t.Fatalf("unexpected line callback")
	}, func() {
		called = true
	})
	assert.True(t, called)
}
