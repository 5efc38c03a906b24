package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"a": 1}
	b := map[string]int{"b": 2, "c": 3}

	all := maps.Collect(IterSeq2Concat(maps.All(a), maps.All(b)))
	assert.Equal(map[string]int{"a": 1, "b": 2, "c": 3}, all)

	count := 0
	for range IterSeq2Concat(maps.All(a), maps.All(b)) {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestFirstGap(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		values []int
		gap    int
	}){
		{"empty", nil, 0},
		{"dense", []int{0, 1, 2}, 3},
		{"middle", []int{0, 2}, 1},
		{"first", []int{1, 2}, 0},
		{"multiple", []int{0, 1, 3, 5}, 2},
	}

	for _, entry := range table {
		assert.Equal(entry.gap, FirstGap(slices.Values(entry.values)), entry.name)
	}
}
