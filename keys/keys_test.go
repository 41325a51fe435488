package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryMappedKeyHasABinding(t *testing.T) {
	for str, name := range GlobalKeyStringsMap {
		binding, ok := GlobalkeyBindings[name]
		assert.True(t, ok, "key %q maps to KeyName %d with no binding", str, name)
		assert.Contains(t, binding.Keys(), str,
			"binding for %q does not list the mapped key string", str)
	}
}

func TestBackAndPanelKeysAreDistinct(t *testing.T) {
	// Back pops history; panel left moves along the order. They are
	// different operations and must not share key strings.
	for _, k := range GlobalkeyBindings[KeyBack].Keys() {
		assert.NotContains(t, GlobalkeyBindings[KeyPanelLeft].Keys(), k)
	}
}
