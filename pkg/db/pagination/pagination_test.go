package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Page
		want Page
	}{
		{name: "defaults", in: Page{}, want: Page{Page: 1, Limit: 20}},
		{name: "clamps limit", in: Page{Page: 3, Limit: 500}, want: Page{Page: 3, Limit: 50}},
		{name: "negative page", in: Page{Page: -2, Limit: 5}, want: Page{Page: 1, Limit: 5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize(20, 50))
		})
	}
}

func TestNewResultComputesPages(t *testing.T) {
	res := NewResult([]int{1, 2}, 41, Page{Page: 2, Limit: 20})
	assert.Equal(t, 3, res.Pages)
	assert.Equal(t, int64(41), res.Total)
	assert.Equal(t, 20, Page{Page: 2, Limit: 20}.Offset())

	empty := NewResult[int](nil, 0, Page{Page: 1, Limit: 20})
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.Pages)
}
