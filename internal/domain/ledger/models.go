package ledger

import "fmt"

// Kind tags which catalog a completion target belongs to.
type Kind int

const (
	KindQuest Kind = iota + 1
	KindQuiz
)

func (k Kind) String() string {
	switch k {
	case KindQuest:
		return "quest"
	case KindQuiz:
		return "quiz"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Target identifies something that can be completed once per user.
type Target struct {
	Kind Kind
	ID   string
	Name string
}

func Quest(id, name string) Target {
	return Target{Kind: KindQuest, ID: id, Name: name}
}

func Quiz(id, name string) Target {
	return Target{Kind: KindQuiz, ID: id, Name: name}
}

// PhaseReward is the synthetic quest target for the reward of the n-th
// (1-based) phase.
func PhaseReward(n int) Target {
	id := fmt.Sprintf("Phase %d Reward", n)
	return Quest(id, id)
}

type Record struct {
	UserID    string
	Target    Target
	Completed bool
	Reward    int64
	Exp       int64
}

type Totals struct {
	Completed int
	Reward    int64
	Exp       int64
}
