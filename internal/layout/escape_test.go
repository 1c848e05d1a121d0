package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	assert.Equal(t, "a&amp;b", escape("a&b"))
	assert.Equal(t, "&lt;td&gt;", escape("<td>"))
	assert.Equal(t, "it&#39;s", escape("it's"))
	assert.Equal(t, "&quot;x&quot;", escape(`"x"`))
	assert.Equal(t, "plain", escape("plain"))
	assert.Equal(t, "", escape(""))
}

func TestNormalizeLang(t *testing.T) {
	assert.Equal(t, "en-US", normalizeLang("en_US"))
	assert.Equal(t, "de", normalizeLang("de"))
	assert.Equal(t, "", normalizeLang(""))
	// Unparseable tags pass through.
	assert.Equal(t, "??", normalizeLang("??"))
}
