package bjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) *Parse {
	t.Helper()
	p, err := ParseText([]byte(text), ParseOptions{})
	require.NoError(t, err)
	return p
}

func mustRender(t *testing.T, p *Parse) string {
	t.Helper()
	out, err := Render(p)
	require.NoError(t, err)
	return string(out)
}

func TestParseTextRoundTripsStrictJSON(t *testing.T) {
	cases := []string{
		`null`, `true`, `false`, `0`, `-12`, `3.5`, `"hi"`,
		`[]`, `{}`, `[1,2,3]`, `{"a":1,"b":[2,3]}`,
		`{"nested":{"x":[1,{"y":true}]}}`,
	}
	for _, c := range cases {
		p := mustParse(t, c)
		assert.Equal(t, c, mustRender(t, p))
		assert.False(t, p.NonStandard(), c)
	}
}

func TestParseTextAcceptsJSON5Extensions(t *testing.T) {
	p := mustParse(t, `{a: 'single', b: .5, c: 5., d: 0x1A, e: Infinity, f: NaN,}`)
	assert.True(t, p.NonStandard())
	got := mustRender(t, p)
	assert.Equal(t, `{"a":"single","b":0.5,"c":5.0,"d":26,"e":9e999,"f":null}`, got)
}

func TestParseTextRejectsTrailingGarbage(t *testing.T) {
	_, err := ParseText([]byte(`1 2`), ParseOptions{})
	assert.Error(t, err)
}

func TestParseTextRejectsUnterminatedContainer(t *testing.T) {
	_, err := ParseText([]byte(`[1,2`), ParseOptions{})
	assert.Error(t, err)
}

func TestParseTextEnforcesMaxDepth(t *testing.T) {
	deep := ""
	for i := 0; i < 5; i++ {
		deep += "["
	}
	for i := 0; i < 5; i++ {
		deep += "]"
	}
	_, err := ParseText([]byte(deep), ParseOptions{MaxDepth: 3})
	assert.Error(t, err)
}

func TestParseTextSkipsCommentsAndExtendedWhitespace(t *testing.T) {
	p := mustParse(t, "/* c */ [1, // trailing\n 2]")
	assert.True(t, p.NonStandard())
	assert.Equal(t, `[1,2]`, mustRender(t, p))
}
