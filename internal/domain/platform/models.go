package platform

// Session is the per-account authentication context passed to every remote
// call. It is owned by a single account run and never shared.
type Session struct {
	Address        string
	AccessToken    string
	CurrentPhaseID string
}

func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}

type AccountStatus string

const (
	StatusActivated   AccountStatus = "ACTIVATED"
	StatusUnactivated AccountStatus = "UNACTIVATED"
)

type Challenge struct {
	Message string
	Nonce   string
}

// Identity is the user payload returned by login and activation.
type Identity struct {
	AccessToken string
	Status      AccountStatus
	ID          string
	UID         int64
	InviteCode  string
	InvitedBy   string
}

type Ecosystem struct {
	ID             string
	CurrentPhaseID string
	Phases         []Phase
}

type Phase struct {
	ID            string
	CertificateID string
	Courses       []Course
	Quizzes       []PhaseQuiz
}

type Course struct {
	ID string
}

type PhaseQuiz struct {
	ID       string
	QuizList []Quiz
}

type Quiz struct {
	ID   string
	Name string
}

type QuizSubmission struct {
	Reward   int64
	Exp      int64
	Terminal bool
}

type LessonCompletion struct {
	QuizID         string
	CourseID       string
	PhaseID        string
	CompleteCourse bool
}

type PhaseQuizOutcome int

const (
	OutcomeFailed PhaseQuizOutcome = iota
	OutcomeTerminal
	OutcomeProgressed
)

func (o PhaseQuizOutcome) String() string {
	switch o {
	case OutcomeTerminal:
		return "terminal"
	case OutcomeProgressed:
		return "progressed"
	}
	return "failed"
}

type Progress struct {
	K int
	N int
}

type PhaseQuizSubmission struct {
	Reward   int64
	Exp      int64
	Outcome  PhaseQuizOutcome
	Progress Progress
	TryAgain bool
}

// Accepted reports whether the submission counts as passing the exam step:
// a terminal payload, or partial progress with no retry requested.
func (s PhaseQuizSubmission) Accepted() bool {
	switch s.Outcome {
	case OutcomeTerminal:
		return true
	case OutcomeProgressed:
		return s.Progress.K != s.Progress.N && !s.TryAgain
	}
	return false
}

type Reward struct {
	Coins int64
	Exp   int64
}

type QuestClaim struct {
	Reward         int64
	Exp            int64
	AlreadyClaimed bool
}

type Certificate struct {
	ID              string
	Name            string
	ChainID         int64
	ContractAddress string
	IsClaimed       bool
	IsMinted        bool
	ClaimNumber     int64
	ClaimUsername   string
}

type MintRequest struct {
	ContractAddress string
	Username        string
	CertificateNo   int64
	Signature       string
}

type MintReceipt struct {
	TxHash      string
	ExplorerURL string
}
