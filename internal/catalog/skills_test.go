package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsControlledSkill(t *testing.T) {
	assert.True(t, IsControlledSkill("Teaching"))
	assert.True(t, IsControlledSkill("First Aid"))
	assert.False(t, IsControlledSkill("teaching"))
	assert.False(t, IsControlledSkill("Underwater Basket Weaving"))
}

func TestMergeSkills(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		custom   string
		want     []string
	}{
		{"selection only", []string{"Teaching", "Music"}, "", []string{"Teaching", "Music"}},
		{"custom only", nil, "Juggling, Stilt Walking", []string{"Juggling", "Stilt Walking"}},
		{"custom trimmed and empties dropped", nil, " Juggling ,, ,Music", []string{"Juggling", "Music"}},
		{"duplicates removed preserving order", []string{"Teaching", "Music"}, "Music, Teaching, Juggling", []string{"Teaching", "Music", "Juggling"}},
		{"all empty", nil, " , ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeSkills(tt.selected, tt.custom))
		})
	}
}
