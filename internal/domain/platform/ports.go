package platform

import (
	"context"
	"math/big"
)

// Actions is everything the progression machine can ask of the learning
// platform. Implementations classify failures with RetryableError and
// FatalError.
type Actions interface {
	LoginChallenge(ctx context.Context, s *Session, address string) (Challenge, error)
	Login(ctx context.Context, s *Session, address string, challenge Challenge, signature string) (Identity, error)
	ActivateAccount(ctx context.Context, s *Session, refCode string) (Identity, error)

	FetchEcosystem(ctx context.Context, s *Session) (Ecosystem, error)
	EcosystemCompleted(ctx context.Context, s *Session, ecosystemID string) (bool, error)
	FetchCourseQuizzes(ctx context.Context, s *Session, courseID string) ([]Quiz, error)
	QuestionCount(ctx context.Context, s *Session, quizID string) (int, error)
	SubmitQuizAnswer(ctx context.Context, s *Session, quizID string, index int) (QuizSubmission, error)
	CompleteLesson(ctx context.Context, s *Session, lesson LessonCompletion) error
	SubmitPhaseQuiz(ctx context.Context, s *Session, phaseQuizID, quizID string) (PhaseQuizSubmission, error)
	ClaimPhaseReward(ctx context.Context, s *Session, phaseID string) (Reward, error)
	SwitchActivePhase(ctx context.Context, s *Session, phaseID string) error

	ClaimQuestReward(ctx context.Context, s *Session, questID string) (QuestClaim, error)
	CoinBalance(ctx context.Context, s *Session) (int64, error)

	CertificateStatus(ctx context.Context, s *Session, ecosystemID, certificateID string) (Certificate, error)
	ClaimCertificate(ctx context.Context, s *Session, certificateID, username string) error
	CertificateSignature(ctx context.Context, s *Session, certificateID, address string) (string, error)

	CreatePet(ctx context.Context, s *Session, name string) error
	FeedPet(ctx context.Context, s *Session, amount int64) error
}

// Wallet signs login challenges and mints certificates on chain.
type Wallet interface {
	Address() string
	ChainID() int64
	SignMessage(message string) (string, error)
	Balance(ctx context.Context) (*big.Int, error)
	MintCertificate(ctx context.Context, req MintRequest) (MintReceipt, error)
}
