package framer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingSplitAcrossFeeds(t *testing.T) {
	var got []string
	f := NewRing(func(doc []byte) { got = append(got, string(doc)) }, nil, 16)

	require.NoError(t, f.Feed([]byte(`{"a":`)))
	assert.Empty(t, got)
	require.NoError(t, f.Feed([]byte(`1}`)))
	require.Len(t, got, 1)
	assert.Equal(t, `{"a":1}`, got[0])
}

func TestRingMultipleDocumentsWithWhitespace(t *testing.T) {
	var got []string
	f := NewRing(func(doc []byte) { got = append(got, string(doc)) }, nil, 16)

	require.NoError(t, f.Feed([]byte("  {\"a\":1}  \n  {\"b\":2}\t")))
	require.Len(t, got, 2)
	assert.Equal(t, `{"a":1}`, got[0])
	assert.Equal(t, `{"b":2}`, got[1])
}

func TestRingTopLevelArray(t *testing.T) {
	var got []string
	f := NewRing(func(doc []byte) { got = append(got, string(doc)) }, nil, 16)

	input := `[{"id":1},{"id":2}]`
	require.NoError(t, f.Feed([]byte(input)))
	require.Len(t, got, 1)
	assert.Equal(t, input, got[0])
}

func TestRingGrowsPastInitialCapacityForLargeDocument(t *testing.T) {
	var got []string
	f := NewRing(func(doc []byte) { got = append(got, string(doc)) }, nil, 64)

	var b strings.Builder
	b.WriteString(`{"values":[`)
	for i := 0; i < 100000; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", i)
	}
	b.WriteString(`]}`)
	doc := b.String()

	require.NoError(t, f.Feed([]byte(doc)))
	require.Len(t, got, 1)
	assert.Equal(t, doc, got[0])
	assert.Greater(t, f.Cap(), 64)
}

func TestRingEscapedQuotesFedByteByByte(t *testing.T) {
	var got []string
	f := NewRing(func(doc []byte) { got = append(got, string(doc)) }, nil, 8)

	doc := `{"msg":"say \"hi\""}`
	for i := 0; i < len(doc); i++ {
		require.NoError(t, f.Feed([]byte{doc[i]}))
	}
	require.Len(t, got, 1)
	assert.Equal(t, doc, got[0])
}

func TestRingDrainIsWrapAroundSafe(t *testing.T) {
	var got []string
	f := NewRing(func(doc []byte) { got = append(got, string(doc)) }, nil, 16)

	for i := 0; i < 20; i++ {
		doc := fmt.Sprintf(`{"n":%d}`, i)
		require.NoError(t, f.Feed([]byte(doc)))
	}
	require.Len(t, got, 20)
	for i, doc := range got {
		assert.Equal(t, fmt.Sprintf(`{"n":%d}`, i), doc)
	}
}

func TestRingMaxCapacityOverflowReportsError(t *testing.T) {
	var errs []error
	f := NewRing(nil, func(err error) { errs = append(errs, err) }, 8, WithMaxCapacity(16))

	err := f.Feed([]byte(strings.Repeat("x", 64)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOverflow)
	require.Len(t, errs, 1)
}

func TestRingClearResetsState(t *testing.T) {
	var got []string
	f := NewRing(func(doc []byte) { got = append(got, string(doc)) }, nil, 16)

	require.NoError(t, f.Feed([]byte(`{"a":`)))
	f.Clear()
	require.NoError(t, f.Feed([]byte(`{"b":2}`)))
	require.Len(t, got, 1)
	assert.Equal(t, `{"b":2}`, got[0])
}
