package xsbe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/couling/xsbe/value"
	"github.com/couling/xsbe/xmltree"
)

// Scenario 1: flatten parse.
func TestScenarioFlattenParse(t *testing.T) {
	schema := `<xsbe:schema-by-example xmlns:xsbe="http://xsbe.couling.uk">
		<xsbe:root>
			<person id="20" xsbe:type="flatten"><name>Philip</name></person>
		</xsbe:root>
	</xsbe:schema-by-example>`
	dt := mustCompile(t, schema)

	got, err := DecodeString(dt, `<person id="21"><name>Alan</name></person>`)
	require.NoError(t, err)
	require.True(t, value.Equal(got, value.Map{"id": value.Int(21), "name": value.String("Alan")}))
}

// Scenario 2: repeating with rename.
func TestScenarioRepeatingWithRename(t *testing.T) {
	schema := `<xsbe:schema-by-example xmlns:xsbe="http://xsbe.couling.uk">
		<xsbe:root>
			<people>
				<person xsbe:type="repeating" xsbe:name="people">Philip</person>
			</people>
		</xsbe:root>
	</xsbe:schema-by-example>`
	dt := mustCompile(t, schema)

	got, err := DecodeString(dt, `<people><person>Alan</person><person>Also Alan</person></people>`)
	require.NoError(t, err)
	require.True(t, value.Equal(got, value.Map{
		"people": value.List{value.String("Alan"), value.String("Also Alan")},
	}))
}

// Scenario 3: value-from duplicate detection.
func TestScenarioValueFromDuplicate(t *testing.T) {
	schema := `<xsbe:schema-by-example xmlns:xsbe="http://xsbe.couling.uk">
		<xsbe:root>
			<people>
				<person name="Philip" xsbe:value-from="name"/>
			</people>
		</xsbe:root>
	</xsbe:schema-by-example>`
	dt := mustCompile(t, schema)

	_, err := DecodeString(dt, `<people><person name="A"/><person name="B"/></people>`)
	require.Error(t, err)
	xerr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, DuplicateElement, xerr.Kind)
}

// Scenario 4: scalar inference int, then rejection.
func TestScenarioBadScalar(t *testing.T) {
	dt := mustCompile(t, `<value>27</value>`)

	_, err := DecodeString(dt, `<value>lorem ipsum</value>`)
	require.Error(t, err)
	xerr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, BadScalar, xerr.Kind)
}

// Scenario 5: date inference is frozen at compile time.
func TestScenarioDateKindFrozenAtCompile(t *testing.T) {
	dt := mustCompile(t, `<value>2020-12-31</value>`)
	require.Equal(t, TextKind, dt.Root.Kind)

	_, err := DecodeString(dt, `<value>Mon, 16 Nov 2009 13:32:02 +0400</value>`)
	require.Error(t, err)
	xerr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, BadScalar, xerr.Kind)
}

// Scenario 6: emit with flatten root.
func TestScenarioEmitFlattenRoot(t *testing.T) {
	schema := `<xsbe:schema-by-example xmlns:xsbe="http://xsbe.couling.uk">
		<xsbe:root>
			<person id="20" xsbe:type="flatten"><name>Philip</name></person>
		</xsbe:root>
	</xsbe:schema-by-example>`
	dt := mustCompile(t, schema)

	tree, err := EncodeToXML(dt, value.Map{"id": value.Int(21), "name": value.String("Alan")})
	require.NoError(t, err)

	want, err := xmltree.ParseString(`<person id="21"><name>Alan</name></person>`)
	require.NoError(t, err)
	require.True(t, xmltree.Equal(want, tree), "got %+v", tree)
}

func TestIncorrectRoot(t *testing.T) {
	dt := mustCompile(t, `<value>27</value>`)
	_, err := DecodeString(dt, `<other>27</other>`)
	require.Error(t, err)
	xerr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, IncorrectRoot, xerr.Kind)
}

func TestUnexpectedElementSuppressedByIgnoreUnexpected(t *testing.T) {
	schema := `<xsbe:schema-by-example xmlns:xsbe="http://xsbe.couling.uk">
		<xsbe:root><person><name>Philip</name></person></xsbe:root>
	</xsbe:schema-by-example>`
	dt := mustCompile(t, schema)

	input := `<person><name>Alan</name><extra>ignored</extra></person>`

	_, err := DecodeString(dt, input)
	require.Error(t, err)
	xerr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, UnexpectedElement, xerr.Kind)

	got, err := DecodeString(dt, input, IgnoreUnexpected(true))
	require.NoError(t, err)
	require.True(t, value.Equal(got, value.Map{"name": value.String("Alan")}))
}

func TestDuplicateElementStillObservedWithIgnoreUnexpected(t *testing.T) {
	schema := `<xsbe:schema-by-example xmlns:xsbe="http://xsbe.couling.uk">
		<xsbe:root><person><name>Philip</name></person></xsbe:root>
	</xsbe:schema-by-example>`
	dt := mustCompile(t, schema)

	_, err := DecodeString(dt, `<person><name>A</name><name>B</name></person>`, IgnoreUnexpected(true))
	require.Error(t, err)
	xerr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, DuplicateElement, xerr.Kind, "ignore_unexpected must not silence DuplicateElement")
}

func TestRoundTripDataToXMLToData(t *testing.T) {
	schema := `<xsbe:schema-by-example xmlns:xsbe="http://xsbe.couling.uk">
		<xsbe:root>
			<people>
				<person xsbe:type="repeating" id="1" active="true">Philip</person>
			</people>
		</xsbe:root>
	</xsbe:schema-by-example>`
	dt := mustCompile(t, schema)

	original := value.Map{
		"person": value.List{
			value.Map{"id": value.Int(5), "active": value.Bool(true), value.ValueKey: value.String("Alan")},
			value.Map{"id": value.Int(6), "active": value.Bool(false), value.ValueKey: value.String("Bob")},
		},
	}

	tree, err := EncodeToXML(dt, original)
	require.NoError(t, err)

	roundTripped, err := DecodeFromXML(dt, tree)
	require.NoError(t, err)

	require.True(t, value.Equal(original, roundTripped), "round trip mismatch: %+v vs %+v", original, roundTripped)
}

func TestMandatoryElementMissingFails(t *testing.T) {
	schema := `<xsbe:schema-by-example xmlns:xsbe="http://xsbe.couling.uk">
		<xsbe:root>
			<person><name xsbe:type="mandatory">Philip</name></person>
		</xsbe:root>
	</xsbe:schema-by-example>`
	dt := mustCompile(t, schema)

	_, err := DecodeString(dt, `<person></person>`)
	require.Error(t, err)
	xerr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, MissingElement, xerr.Kind)
}

func TestDefaultAppliedWhenOptionalChildAbsent(t *testing.T) {
	schema := `<xsbe:schema-by-example xmlns:xsbe="http://xsbe.couling.uk">
		<xsbe:root>
			<person><nickname xsbe:default="Unknown">Philip</nickname></person>
		</xsbe:root>
	</xsbe:schema-by-example>`
	dt := mustCompile(t, schema)

	got, err := DecodeString(dt, `<person></person>`)
	require.NoError(t, err)
	require.True(t, value.Equal(got, value.Map{"nickname": value.String("Unknown")}))
}
