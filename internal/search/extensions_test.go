package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtensions(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		invalid []string
	}{
		{name: "blank means unconstrained", input: "", want: nil},
		{name: "whitespace only", input: "   ", want: nil},
		{name: "simple list", input: "py,txt", want: []string{"py", "txt"}},
		{name: "dot prefixed and mixed case", input: " .TXT , Md ", want: []string{"txt", "md"}},
		{name: "empty tokens skipped", input: "py,,txt,", want: []string{"py", "txt"}},
		{name: "single invalid token", input: "p!y,txt", invalid: []string{"p!y"}},
		{name: "all invalid tokens reported", input: "p!y,txt,b@d,x y", invalid: []string{"p!y", "b@d", "x y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExtensions(tt.input)
			if len(tt.invalid) > 0 {
				require.Error(t, err)
				var cfgErr *ConfigurationError
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, tt.invalid, cfgErr.InvalidTokens)
				for _, tok := range tt.invalid {
					assert.Contains(t, err.Error(), tok)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtensionSetAllows(t *testing.T) {
	set, err := newExtensionSet([]string{"txt", ".PY"})
	require.NoError(t, err)

	assert.True(t, set.allows("report.txt"))
	assert.True(t, set.allows("report.TXT"), "extension comparison is case-insensitive")
	assert.True(t, set.allows("script.py"))
	assert.False(t, set.allows("report.md"))
	assert.False(t, set.allows("report"), "no extension never passes a configured filter")

	var unconstrained extensionSet
	assert.True(t, unconstrained.allows("anything.xyz"))
	assert.True(t, unconstrained.allows("noext"))
}

func TestNewExtensionSetRejectsInvalidTokens(t *testing.T) {
	_, err := newExtensionSet([]string{"ok", "no/pe", "b d"})
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{"no/pe", "b d"}, cfgErr.InvalidTokens)
}
