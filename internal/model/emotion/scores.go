package emotion

// Name identifies one of the five emotion categories returned by the provider.
type Name string

const (
	Anger   Name = "anger"
	Disgust Name = "disgust"
	Fear    Name = "fear"
	Joy     Name = "joy"
	Sadness Name = "sadness"
)

// None is the dominant label of a record that carries no usable scores.
const None = "none"

// Order is the fixed iteration order used for dominant emotion selection.
// When two scores tie, the one listed first wins.
var Order = [...]Name{Anger, Disgust, Fear, Joy, Sadness}

// Scores holds the per-emotion scores for one analyzed text.
type Scores struct {
	Anger           float64 `json:"anger"`
	Disgust         float64 `json:"disgust"`
	Fear            float64 `json:"fear"`
	Joy             float64 `json:"joy"`
	Sadness         float64 `json:"sadness"`
	DominantEmotion string  `json:"dominant_emotion"`
}

// New builds a Scores record from raw values and fills in the dominant emotion.
func New(anger, disgust, fear, joy, sadness float64) Scores {
	s := Scores{
		Anger:   anger,
		Disgust: disgust,
		Fear:    fear,
		Joy:     joy,
		Sadness: sadness,
	}
	s.DominantEmotion = string(s.Dominant())
	return s
}

// FromMap builds a Scores record from a provider payload keyed by emotion name.
// Missing keys count as 0.
func FromMap(values map[string]float64) Scores {
	return New(
		values[string(Anger)],
		values[string(Disgust)],
		values[string(Fear)],
		values[string(Joy)],
		values[string(Sadness)],
	)
}

// Value returns the score stored for name.
func (s Scores) Value(name Name) float64 {
	switch name {
	case Anger:
		return s.Anger
	case Disgust:
		return s.Disgust
	case Fear:
		return s.Fear
	case Joy:
		return s.Joy
	case Sadness:
		return s.Sadness
	default:
		return 0
	}
}

// Dominant returns the emotion with the highest score, scanning in Order so the
// first maximum wins.
func (s Scores) Dominant() Name {
	best := Order[0]
	bestScore := s.Value(best)
	for _, name := range Order[1:] {
		if v := s.Value(name); v > bestScore {
			best = name
			bestScore = v
		}
	}
	return best
}

// HasDominant reports whether the record carries a real dominant label.
func (s Scores) HasDominant() bool {
	return s.DominantEmotion != "" && s.DominantEmotion != None
}

// Empty returns the record used when no scores are available.
func Empty() Scores {
	return Scores{DominantEmotion: None}
}
