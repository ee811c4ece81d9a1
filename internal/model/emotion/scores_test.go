package emotion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDominantPicksMaximum(t *testing.T) {
	cases := []struct {
		name   string
		scores Scores
		want   Name
	}{
		{"joy", New(0.01, 0.01, 0.02, 0.9, 0.01), Joy},
		{"anger", New(0.8, 0.1, 0.1, 0.1, 0.1), Anger},
		{"sadness last", New(0.1, 0.1, 0.1, 0.1, 0.2), Sadness},
		{"fear", New(0, 0, 0.3, 0.29, 0), Fear},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.scores.Dominant())
			assert.Equal(t, string(tc.want), tc.scores.DominantEmotion)
		})
	}
}

func TestDominantTieBreaksOnOrder(t *testing.T) {
	assert.Equal(t, Anger, New(0, 0, 0, 0, 0).Dominant())
	assert.Equal(t, Disgust, New(0.1, 0.5, 0.2, 0.5, 0.5).Dominant())
	assert.Equal(t, Fear, New(0.1, 0.2, 0.7, 0.7, 0.1).Dominant())
	assert.Equal(t, Joy, New(0.1, 0.2, 0.3, 0.4, 0.4).Dominant())
}

func TestFromMapDefaultsMissingKeys(t *testing.T) {
	s := FromMap(map[string]float64{"joy": 0.4, "fear": 0.2})

	assert.Zero(t, s.Anger)
	assert.Zero(t, s.Disgust)
	assert.Zero(t, s.Sadness)
	assert.Equal(t, 0.2, s.Fear)
	assert.Equal(t, 0.4, s.Joy)
	assert.Equal(t, "joy", s.DominantEmotion)
}

func TestEmptyCarriesSentinel(t *testing.T) {
	s := Empty()
	assert.Equal(t, None, s.DominantEmotion)
	assert.False(t, s.HasDominant())
	assert.True(t, New(0.1, 0, 0, 0, 0).HasDominant())
}

func TestScoresJSONKeepsPrecision(t *testing.T) {
	original := New(0.0123456789012345, 1e-9, 0.333333333333333, 0.987654321, 0.1+0.2)

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Scores
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, original, decoded)
}
