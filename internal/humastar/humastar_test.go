package humastar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSignals(t *testing.T) {
	s, err := ParseSignals([]byte(`{"dataset":"peaks.geojson","zoom":12,"usemax":true}`))
	require.NoError(t, err)

	assert.Equal(t, "peaks.geojson", s.String("dataset"))
	assert.Equal(t, 12.0, s.Float("zoom"))
	assert.True(t, s.Bool("usemax"))
	assert.False(t, s.Bool("usemin"))
	assert.Equal(t, "", s.String("zoom"), "wrong type reads as zero")

	_, err = ParseSignals([]byte(`{`))
	assert.Error(t, err)
}

func TestSignalsInput_Parse(t *testing.T) {
	in := &SignalsInput{RawBody: []byte(`nope`)}
	_, err := in.Parse()
	assert.ErrorContains(t, err, "Invalid request data")
}

func TestPageBody_Links(t *testing.T) {
	p := PageBody[string]{Total: 25, Offset: 10, Limit: 10}
	assert.Equal(t, []string{
		`</x?offset=0&limit=10>; rel="first"`,
		`</x?offset=0&limit=10>; rel="prev"`,
		`</x?offset=20&limit=10>; rel="next"`,
		`</x?offset=20&limit=10>; rel="last"`,
	}, p.PaginationLinks("/x"))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := Paginate(items, 1, 2)
	assert.Equal(t, []int{2, 3}, p.Data)
	assert.Equal(t, 5, p.Total)

	p = Paginate(items, 4, 10)
	assert.Equal(t, []int{5}, p.Data)

	p = Paginate(items, 9, 2)
	assert.Empty(t, p.Data)
	assert.NotNil(t, p.Data)

	p = Paginate(items, -3, 0)
	assert.Equal(t, items, p.Data)
	assert.Equal(t, 5, p.Limit)
}
