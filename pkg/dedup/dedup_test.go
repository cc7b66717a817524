package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	id   string
	name string
}

func TestByKey(t *testing.T) {
	tests := []struct {
		name string
		in   []row
		want []row
	}{
		{
			name: "empty input",
			in:   nil,
			want: []row{},
		},
		{
			name: "no duplicates",
			in:   []row{{"1", "a"}, {"2", "b"}},
			want: []row{{"1", "a"}, {"2", "b"}},
		},
		{
			name: "first occurrence wins",
			in:   []row{{"1", "a"}, {"2", "b"}, {"1", "c"}, {"3", "d"}, {"2", "e"}},
			want: []row{{"1", "a"}, {"2", "b"}, {"3", "d"}},
		},
		{
			name: "all same key",
			in:   []row{{"7", "x"}, {"7", "y"}, {"7", "z"}},
			want: []row{{"7", "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ByKey(tt.in, func(r row) string { return r.id })
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), len(tt.in))
		})
	}
}

func TestByKeyDoesNotMutateInput(t *testing.T) {
	in := []int{3, 1, 3, 2, 1}
	got := ByKey(in, func(v int) int { return v })

	assert.Equal(t, []int{3, 1, 2}, got)
	assert.Equal(t, []int{3, 1, 3, 2, 1}, in)
}
