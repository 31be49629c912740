package progression

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/questpilot/hackquest-bot/internal/domain/ledger"
	"github.com/questpilot/hackquest-bot/internal/domain/platform"
	"github.com/questpilot/hackquest-bot/questpilot/utils"
)

// courseQuizzes is the quiz list of one course. Fetched is false when the
// list could not be loaded in this run.
type courseQuizzes struct {
	Course  platform.Course
	Quizzes []platform.Quiz
	Fetched bool
}

// CompleteEcosystem walks every phase of the ecosystem in order. A phase
// whose gate fails is left for the next run.
func (r *Runner) CompleteEcosystem(ctx context.Context, user *User, eco platform.Ecosystem) error {
	done, err := retry(ctx, r, "ecosystem completed", func() (bool, error) {
		return r.actions.EcosystemCompleted(ctx, r.session, eco.ID)
	})
	if err != nil {
		if err := r.skip(ctx, err, "Failed to check ecosystem completion"); err != nil {
			return err
		}
	} else if done {
		r.log.Info("Ecosystem already completed", slog.String("ecosystem", eco.ID))
		return nil
	}

	for i := range eco.Phases {
		if err := r.completePhase(ctx, user, eco, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) completePhase(ctx context.Context, user *User, eco platform.Ecosystem, i int) error {
	phase := eco.Phases[i]
	n := i + 1
	log := r.log.With(slog.Int("phase", n))

	log.Info("Completing phase units")
	courses, err := r.completeUnits(ctx, log, user, n, phase.Courses)
	if err != nil {
		return err
	}
	ok, err := r.unitsCompleted(ctx, user, courses)
	if err != nil {
		return err
	}
	if !ok {
		log.Info("Phase units incomplete, skipping phase")
		return nil
	}

	if len(phase.Quizzes) > 0 {
		if err := r.completePhaseQuizzes(ctx, log, user, n, phase.Quizzes); err != nil {
			return err
		}
		ok, err = r.phaseQuizzesCompleted(ctx, user, phase.Quizzes)
		if err != nil {
			return err
		}
		if !ok {
			log.Info("Phase quizzes incomplete, skipping phase")
			return nil
		}
	}

	if phase.CertificateID != "" {
		proceed, err := r.claimCertificate(ctx, log, user, eco.ID, phase.CertificateID)
		if err != nil {
			return err
		}
		if !proceed {
			return nil
		}
	}

	if err := r.claimPhaseReward(ctx, log, user, n, phase.ID); err != nil {
		return err
	}

	if i < len(eco.Phases)-1 {
		next := eco.Phases[i+1]
		err := retryDo(ctx, r, "switch phase", func() error {
			return r.actions.SwitchActivePhase(ctx, r.session, next.ID)
		})
		if err != nil {
			if err := r.skip(ctx, err, "Failed to switch active phase", slog.String("next", next.ID)); err != nil {
				return err
			}
		} else {
			r.session.CurrentPhaseID = next.ID
			log.Info("Switched active phase", slog.String("next", next.ID))
		}
	}

	return r.refreshBalance(ctx, user)
}

func (r *Runner) completeUnits(ctx context.Context, log *slog.Logger, user *User, n int, courses []platform.Course) ([]courseQuizzes, error) {
	result := make([]courseQuizzes, 0, len(courses))
	for _, course := range courses {
		quizzes, err := retry(ctx, r, "fetch course quizzes", func() ([]platform.Quiz, error) {
			return r.actions.FetchCourseQuizzes(ctx, r.session, course.ID)
		})
		if err != nil {
			if err := r.skip(ctx, err, "Failed to fetch course quizzes", slog.String("course", course.ID)); err != nil {
				return nil, err
			}
			result = append(result, courseQuizzes{Course: course})
			continue
		}
		result = append(result, courseQuizzes{Course: course, Quizzes: quizzes, Fetched: true})

		if err := r.ensureQuizzes(ctx, user, n, quizzes); err != nil {
			return nil, err
		}

		for pos, quiz := range quizzes {
			if err := r.completeUnit(ctx, log, user, course.ID, quiz, pos, len(quizzes)); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

func (r *Runner) ensureQuizzes(ctx context.Context, user *User, n int, quizzes []platform.Quiz) error {
	if err := r.svc.ledger.Ensure(ctx, user.ID, ledger.PhaseReward(n)); err != nil {
		return err
	}
	for _, quiz := range quizzes {
		if err := r.svc.ledger.Ensure(ctx, user.ID, ledger.Quiz(quiz.ID, quiz.Name)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) completeUnit(ctx context.Context, log *slog.Logger, user *User, courseID string, quiz platform.Quiz, pos, total int) error {
	target := ledger.Quiz(quiz.ID, quiz.Name)
	log = log.With(slog.String("quiz", quiz.Name))

	done, err := r.svc.ledger.IsCompleted(ctx, user.ID, target)
	if err != nil {
		return err
	}
	if done {
		log.Debug("Unit lesson already completed")
		return nil
	}

	count, err := r.questionCount(ctx, quiz.ID)
	if err != nil {
		return r.skip(ctx, err, "Failed to get question count")
	}

	var reward, exp int64
	accepted := 0
	for index := 0; index < count; index++ {
		sub, err := retry(ctx, r, "submit quiz", func() (platform.QuizSubmission, error) {
			return r.actions.SubmitQuizAnswer(ctx, r.session, quiz.ID, index)
		})
		if err != nil {
			if err := r.skip(ctx, err, "Failed to submit quiz answer", slog.Int("index", index)); err != nil {
				return err
			}
			continue
		}
		accepted++
		reward += sub.Reward
		exp += sub.Exp
		if !sub.Terminal {
			log.Debug("Quiz answer not final", slog.Int("index", index))
		}
		if err := utils.SleepRange(ctx, r.svc.opts.AnswerDelay); err != nil {
			return err
		}
	}

	if count > 0 && accepted == 0 {
		log.Warn("No quiz answers accepted, leaving lesson for next run", slog.Int("questions", count))
		return nil
	}

	if err := r.svc.ledger.MarkCompleted(ctx, user.ID, target, reward, exp); err != nil {
		return err
	}
	r.svc.observer.Claimed("quiz", reward, exp)

	lesson := lessonCompletion(quiz.ID, courseID, r.session.CurrentPhaseID, pos, total)
	err = retryDo(ctx, r, "complete lesson", func() error {
		return r.actions.CompleteLesson(ctx, r.session, lesson)
	})
	if err != nil {
		if err := r.skip(ctx, err, "Failed to complete lesson"); err != nil {
			return err
		}
	} else {
		log.Info("Completed unit lesson",
			slog.Int("questions", count),
			slog.Int64("reward", reward),
			slog.Int64("exp", exp))
	}

	if count > 0 {
		return utils.SleepRange(ctx, r.svc.opts.TaskDelay)
	}
	return nil
}

// lessonCompletion sets the positional flags of a lesson within its
// course: the first and last lessons carry the phase id and the last one
// closes the course.
func lessonCompletion(quizID, courseID, phaseID string, pos, total int) platform.LessonCompletion {
	lesson := platform.LessonCompletion{QuizID: quizID, CourseID: courseID}
	if pos == 0 || pos == total-1 {
		lesson.PhaseID = phaseID
	}
	if pos == total-1 {
		lesson.CompleteCourse = true
	}
	return lesson
}

func (r *Runner) questionCount(ctx context.Context, quizID string) (int, error) {
	if n, ok := r.svc.cachedQuestionCount(quizID); ok {
		return n, nil
	}
	n, err := retry(ctx, r, "question count", func() (int, error) {
		return r.actions.QuestionCount(ctx, r.session, quizID)
	})
	if err != nil {
		return 0, err
	}
	r.svc.rememberQuestionCount(quizID, n)
	return n, nil
}

func (r *Runner) unitsCompleted(ctx context.Context, user *User, courses []courseQuizzes) (bool, error) {
	for _, c := range courses {
		if !c.Fetched {
			return false, nil
		}
		ok, err := r.allCompleted(ctx, user, c.Quizzes)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (r *Runner) phaseQuizzesCompleted(ctx context.Context, user *User, phaseQuizzes []platform.PhaseQuiz) (bool, error) {
	for _, pq := range phaseQuizzes {
		ok, err := r.allCompleted(ctx, user, pq.QuizList)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (r *Runner) allCompleted(ctx context.Context, user *User, quizzes []platform.Quiz) (bool, error) {
	for _, quiz := range quizzes {
		done, err := r.svc.ledger.IsCompleted(ctx, user.ID, ledger.Quiz(quiz.ID, quiz.Name))
		if err != nil || !done {
			return false, err
		}
	}
	return true, nil
}

// completePhaseQuizzes retries the whole exam step: every attempt walks the
// quizzes again and skips those already recorded.
func (r *Runner) completePhaseQuizzes(ctx context.Context, log *slog.Logger, user *User, n int, phaseQuizzes []platform.PhaseQuiz) error {
	log.Info("Completing phase quizzes")

	err := retryDo(ctx, r, "phase quizzes", func() error {
		for _, pq := range phaseQuizzes {
			if err := r.ensureQuizzes(ctx, user, n, pq.QuizList); err != nil {
				return err
			}
			for _, quiz := range pq.QuizList {
				if err := r.submitPhaseQuiz(ctx, log, user, pq.ID, quiz); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return r.skip(ctx, err, "Failed to complete phase quizzes")
	}
	log.Info("Completed phase quizzes")
	return nil
}

func (r *Runner) submitPhaseQuiz(ctx context.Context, log *slog.Logger, user *User, phaseQuizID string, quiz platform.Quiz) error {
	target := ledger.Quiz(quiz.ID, quiz.Name)
	done, err := r.svc.ledger.IsCompleted(ctx, user.ID, target)
	if err != nil {
		return err
	}
	if done {
		log.Debug("Phase quiz already completed", slog.String("quiz", quiz.Name))
		return nil
	}

	sub, err := r.actions.SubmitPhaseQuiz(ctx, r.session, phaseQuizID, quiz.ID)
	if err != nil {
		return err
	}
	if !sub.Accepted() {
		return platform.Retryable("submit phase quiz",
			fmt.Errorf("%w: %s %d/%d", platform.ErrNotClaimable, sub.Outcome, sub.Progress.K, sub.Progress.N))
	}

	if err := r.svc.ledger.MarkCompleted(ctx, user.ID, target, sub.Reward, sub.Exp); err != nil {
		return err
	}
	r.svc.observer.Claimed("quiz", sub.Reward, sub.Exp)
	log.Info("Submitted phase quiz", slog.String("quiz", quiz.Name))
	return utils.SleepRange(ctx, r.svc.opts.TaskDelay)
}

// claimCertificate reports whether the phase may continue to its reward.
// A failed claim does not stop the phase; a failed status lookup does.
func (r *Runner) claimCertificate(ctx context.Context, log *slog.Logger, user *User, ecosystemID, certificateID string) (bool, error) {
	cert, err := retry(ctx, r, "certificate status", func() (platform.Certificate, error) {
		return r.actions.CertificateStatus(ctx, r.session, ecosystemID, certificateID)
	})
	if err != nil {
		return false, r.skip(ctx, err, "Failed to fetch certificate status", slog.String("certificate", certificateID))
	}
	if cert.IsClaimed {
		log.Debug("Certificate already claimed", slog.String("certificate", cert.Name))
		return true, nil
	}

	err = retryDo(ctx, r, "claim certificate", func() error {
		return r.actions.ClaimCertificate(ctx, r.session, certificateID, user.Username)
	})
	if err != nil {
		return true, r.skip(ctx, err, "Failed to claim certificate", slog.String("certificate", cert.Name))
	}
	log.Info("Claimed certificate", slog.String("certificate", cert.Name))
	return true, nil
}

func (r *Runner) claimPhaseReward(ctx context.Context, log *slog.Logger, user *User, n int, phaseID string) error {
	target := ledger.PhaseReward(n)
	if err := r.svc.ledger.Ensure(ctx, user.ID, target); err != nil {
		return err
	}
	done, err := r.svc.ledger.IsCompleted(ctx, user.ID, target)
	if err != nil {
		return err
	}
	if done {
		log.Debug("Phase reward already claimed")
		return nil
	}

	reward, err := retry(ctx, r, "claim phase reward", func() (platform.Reward, error) {
		return r.actions.ClaimPhaseReward(ctx, r.session, phaseID)
	})
	if err != nil {
		return r.skip(ctx, err, "Failed to claim phase reward")
	}
	if err := r.svc.ledger.MarkCompleted(ctx, user.ID, target, reward.Coins, reward.Exp); err != nil {
		return err
	}
	r.svc.observer.Claimed("phase", reward.Coins, reward.Exp)
	log.Info("Claimed phase reward",
		slog.Int64("coins", reward.Coins),
		slog.Int64("exp", reward.Exp))
	return nil
}
