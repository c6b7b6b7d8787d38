package priority

import (
	"math"
	"time"

	"github.com/tmuir/focusdo/internal/model"
)

// Scored pairs a task with its raw score and normalized display
// priority. Display is 0-10 for normal tasks and exactly OverdueScore
// for overdue ones.
type Scored struct {
	Task    model.Task
	Score   float64
	Display float64
}

// ScoreAll computes raw scores for a batch of tasks. Display is left
// unset; call Normalize to fill it.
func ScoreAll(tasks []model.Task, now time.Time) []Scored {
	scored := make([]Scored, len(tasks))
	for i, t := range tasks {
		scored[i] = Scored{Task: t, Score: Score(t, now)}
	}
	return scored
}

// Normalize maps raw scores onto the bounded display scale. Overdue
// tasks pass through with Display = OverdueScore; every other task is
// scaled against the batch maximum so the highest normal score lands
// at 10. The transform is monotonic: relative ordering among normal
// tasks is preserved.
func Normalize(scored []Scored) []Scored {
	maxNormal := 1.0
	for _, s := range scored {
		if s.Score != OverdueScore && s.Score > maxNormal {
			maxNormal = s.Score
		}
	}

	out := make([]Scored, len(scored))
	for i, s := range scored {
		if s.Score == OverdueScore {
			s.Display = OverdueScore
		} else {
			s.Display = round2(s.Score / maxNormal * 10)
		}
		out[i] = s
	}
	return out
}

// Rank scores and normalizes a batch in one call. It is cheap enough
// to run on every display refresh.
func Rank(tasks []model.Task, now time.Time) []Scored {
	return Normalize(ScoreAll(tasks, now))
}

// round2 rounds to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
