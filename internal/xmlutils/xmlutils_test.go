package xmlutils_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/oas-tools/oasctl/internal/xmlutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<saw:ibot xmlns:saw="com.siebel.analytics.web/report/v1.1" xmlns:cond="com.siebel.analytics.web/condition/v1.1">
  <saw:recipients>
    <saw:specificRecipients>
      <saw:user name="alice"/>
    </saw:specificRecipients>
  </saw:recipients>
  <cond:condition name="threshold"/>
</saw:ibot>`

func TestFindDescendant(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		tag string

		wantNil  bool
		wantAttr string
	}{
		"Direct child":                {tag: "recipients"},
		"Nested descendant":           {tag: "specificRecipients"},
		"Deeply nested descendant":    {tag: "user", wantAttr: "alice"},
		"Different namespace prefix":  {tag: "condition", wantAttr: "threshold"},
		"Missing element":             {tag: "emailRecipients", wantNil: true},
		"Root tag is not a candidate": {tag: "ibot", wantNil: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc := etree.NewDocument()
			require.NoError(t, doc.ReadFromString(sampleDoc), "Setup: could not parse document")

			el := xmlutils.FindDescendant(doc.Root(), tc.tag)
			if tc.wantNil {
				assert.Nil(t, el, "FindDescendant should not find the element")
				return
			}
			require.NotNil(t, el, "FindDescendant should find the element")
			assert.Equal(t, tc.tag, el.Tag, "the local tag name should match")
			if tc.wantAttr != "" {
				assert.Equal(t, tc.wantAttr, el.SelectAttrValue("name", ""), "the right element should be found")
			}
		})
	}
}

func TestFindDescendantNilElement(t *testing.T) {
	t.Parallel()

	assert.Nil(t, xmlutils.FindDescendant(nil, "recipients"), "a nil element has no descendants")
}
