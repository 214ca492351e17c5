// sdmx/navigator_test.go
package sdmx

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseXML(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	require.NotNil(t, doc.Root())
	return doc.Root()
}

func TestFindFirstStandardPrefix(t *testing.T) {
	root := parseXML(t, `
		<message xmlns:structure="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/structure">
			<structure:Dataflows>
				<structure:Dataflow id="DF_TEST"/>
			</structure:Dataflows>
		</message>`)

	nav := NewNavigator()
	el := nav.FindFirst(root, "Dataflow")
	require.NotNil(t, el)
	assert.Equal(t, "DF_TEST", AttrDefault(el, "id", ""))
}

func TestFindFirstShortPrefixVariant(t *testing.T) {
	root := parseXML(t, `
		<message xmlns:str="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/structure">
			<str:Dataflows><str:Dataflow id="DF_STR"/></str:Dataflows>
		</message>`)

	el := NewNavigator().FindFirst(root, "Dataflow")
	require.NotNil(t, el)
	assert.Equal(t, "DF_STR", AttrDefault(el, "id", ""))
}

func TestFindFirstLocalNameFallback(t *testing.T) {
	// Provider declared the structure namespace under an unexpected prefix.
	root := parseXML(t, `
		<message xmlns:s="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/structure">
			<s:Dataflows><s:Dataflow id="DF_ODD"/></s:Dataflows>
		</message>`)

	el := NewNavigator().FindFirst(root, "Dataflow")
	require.NotNil(t, el)
	assert.Equal(t, "DF_ODD", AttrDefault(el, "id", ""))
}

func TestFindFirstNoPrefixAtAll(t *testing.T) {
	root := parseXML(t, `<message><Dataflows><Dataflow id="DF_BARE"/></Dataflows></message>`)

	el := NewNavigator().FindFirst(root, "Dataflow")
	require.NotNil(t, el)
	assert.Equal(t, "DF_BARE", AttrDefault(el, "id", ""))
}

func TestFindAllPathResolution(t *testing.T) {
	root := parseXML(t, `
		<root xmlns:structure="urn:x">
			<structure:Dimension id="FREQ">
				<structure:ConceptIdentity><Ref id="FREQ_CONCEPT"/></structure:ConceptIdentity>
			</structure:Dimension>
			<Ref id="UNRELATED"/>
		</root>`)

	nav := NewNavigator()
	dim := nav.FindFirst(root, "Dimension")
	require.NotNil(t, dim)

	ref := nav.FindFirst(dim, "ConceptIdentity/Ref")
	require.NotNil(t, ref)
	assert.Equal(t, "FREQ_CONCEPT", AttrDefault(ref, "id", ""))
}

func TestFindAllReturnsEmptyNotError(t *testing.T) {
	root := parseXML(t, `<root><Other/></root>`)

	nav := NewNavigator()
	assert.Empty(t, nav.FindAll(root, "Dataflow"))
	assert.Nil(t, nav.FindFirst(root, "Dataflow"))
	assert.Empty(t, nav.FindAll(nil, "Dataflow"))
}

func TestAttrAbsenceIsNotAnError(t *testing.T) {
	root := parseXML(t, `<el id="X" xml:lang="en"/>`)

	v, ok := Attr(root, "id")
	assert.True(t, ok)
	assert.Equal(t, "X", v)

	_, ok = Attr(root, "missing")
	assert.False(t, ok)
	assert.Equal(t, "fallback", AttrDefault(root, "missing", "fallback"))

	// Namespaced attributes match on local name.
	assert.Equal(t, "en", AttrDefault(root, "lang", ""))

	_, ok = Attr(nil, "id")
	assert.False(t, ok)
}

func TestConfigurablePrefixes(t *testing.T) {
	root := parseXML(t, `
		<message xmlns:weird="urn:x">
			<other:Dataflow id="DF_O" xmlns:other="urn:y"/>
			<weird:Dataflow id="DF_W"/>
		</message>`)

	// A navigator configured for the provider's prefix hits it directly,
	// before any fallback, so the right element wins when local names clash.
	nav := NewNavigator("weird")
	el := nav.FindFirst(root, "Dataflow")
	require.NotNil(t, el)
	assert.Equal(t, "DF_W", AttrDefault(el, "id", ""))
}
