package domain_test

import (
	"encoding/json"
	"testing"

	"htmm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionRef_MarshalNumeric(t *testing.T) {
	data, err := json.Marshal(domain.NumericRef(4567))
	require.NoError(t, err)
	assert.Equal(t, "4567", string(data))
}

func TestVersionRef_MarshalComposite(t *testing.T) {
	data, err := json.Marshal(domain.CompositeRef("v-abc", 2))
	require.NoError(t, err)
	assert.Equal(t, `"v-abc:2"`, string(data))
}

func TestVersionRef_UnmarshalNumber(t *testing.T) {
	var ref domain.VersionRef
	require.NoError(t, json.Unmarshal([]byte("4567"), &ref))
	assert.Equal(t, domain.NumericRef(4567), ref)
}

func TestVersionRef_UnmarshalComposite(t *testing.T) {
	var ref domain.VersionRef
	require.NoError(t, json.Unmarshal([]byte(`"v-abc:2"`), &ref))
	assert.Equal(t, domain.CompositeRef("v-abc", 2), ref)
}

func TestVersionRef_UnmarshalStringWithoutIndex(t *testing.T) {
	var ref domain.VersionRef
	require.NoError(t, json.Unmarshal([]byte(`"v-abc"`), &ref))
	assert.Equal(t, domain.CompositeRef("v-abc", 0), ref)
}

func TestVersionRef_Equal(t *testing.T) {
	assert.True(t, domain.NumericRef(1).Equal(domain.NumericRef(1)))
	assert.False(t, domain.NumericRef(1).Equal(domain.NumericRef(2)))
	assert.True(t, domain.CompositeRef("v", 1).Equal(domain.CompositeRef("v", 1)))
	assert.False(t, domain.CompositeRef("v", 1).Equal(domain.CompositeRef("v", 2)))
	assert.False(t, domain.CompositeRef("v", 0).Equal(domain.NumericRef(0)))
}

func TestVersionRef_RoundTrip(t *testing.T) {
	for _, ref := range []domain.VersionRef{
		domain.NumericRef(99),
		domain.CompositeRef("abc", 0),
		domain.CompositeRef("a:b", 3),
	} {
		data, err := json.Marshal(ref)
		require.NoError(t, err)

		var got domain.VersionRef
		require.NoError(t, json.Unmarshal(data, &got))
		assert.True(t, ref.Equal(got), "round trip of %s", ref)
	}
}
