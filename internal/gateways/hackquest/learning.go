package hackquest

import (
	"context"
	"fmt"

	"github.com/questpilot/hackquest-bot/internal/domain/platform"
	"github.com/questpilot/hackquest-bot/questpilot/config"
	"github.com/tidwall/gjson"
)

func ecosystemWhere(ecosystemID string) map[string]any {
	return map[string]any{
		"where": map[string]any{
			"ecosystemId_lang": map[string]any{
				"ecosystemId": ecosystemID,
				"lang":        config.ContentLanguage,
			},
		},
	}
}

// FetchEcosystem resolves the active ecosystem and its phase graph.
func (c *Client) FetchEcosystem(ctx context.Context, s *platform.Session) (platform.Ecosystem, error) {
	data, err := c.query(ctx, s, "FindActiveEcosystem", findActiveEcosystemQuery, nil, true)
	if err != nil {
		return platform.Ecosystem{}, err
	}
	id := data.Get("ecosystem.id").String()
	if id == "" {
		return platform.Ecosystem{}, platform.Retryable("FindActiveEcosystem", fmt.Errorf("%w: ecosystem id", platform.ErrNoData))
	}

	data, err = c.query(ctx, s, "FindActiveEcosystemInfo", findEcosystemInfoQuery, ecosystemWhere(id), true)
	if err != nil {
		return platform.Ecosystem{}, err
	}
	phases := data.Get("ecosystem.phases").Array()
	if len(phases) == 0 {
		return platform.Ecosystem{}, platform.Retryable("FindActiveEcosystemInfo", fmt.Errorf("%w: phases", platform.ErrNoData))
	}

	eco := platform.Ecosystem{
		ID:             id,
		CurrentPhaseID: data.Get("ecosystem.currentPhase.id").String(),
	}
	for n, p := range phases {
		phaseID := p.Get("id").String()
		if phaseID == "" {
			continue
		}
		eco.Phases = append(eco.Phases, parsePhase(n+1, p))
	}
	return eco, nil
}

func parsePhase(n int, p gjson.Result) platform.Phase {
	phase := platform.Phase{
		ID:            p.Get("id").String(),
		CertificateID: p.Get("certificateId").String(),
	}
	for _, course := range p.Get("courses").Array() {
		if id := course.Get("id").String(); id != "" {
			phase.Courses = append(phase.Courses, platform.Course{ID: id})
		}
	}
	for _, quiz := range p.Get("quizzes").Array() {
		pq := platform.PhaseQuiz{ID: quiz.Get("id").String()}
		if pq.ID == "" {
			continue
		}
		for j, page := range quiz.Get("quizList").Array() {
			pq.QuizList = append(pq.QuizList, platform.Quiz{
				ID:   page.Get("id").String(),
				Name: fmt.Sprintf("%d. Phase %d quiz", j+1, n),
			})
		}
		phase.Quizzes = append(phase.Quizzes, pq)
	}
	return phase
}

func (c *Client) EcosystemCompleted(ctx context.Context, s *platform.Session, ecosystemID string) (bool, error) {
	data, err := c.query(ctx, s, "ListActiveEcosystemInfos", listEcosystemsQuery, map[string]any{
		"lang": config.ContentLanguage,
	}, true)
	if err != nil {
		return false, err
	}
	for _, eco := range data.Get("ecosystems").Array() {
		if eco.Get("ecosystemId").String() == ecosystemID {
			return eco.Get("progress.status").String() == "COMPLETED", nil
		}
	}
	return false, nil
}

// FetchCourseQuizzes lists every lesson page of a course in unit order.
func (c *Client) FetchCourseQuizzes(ctx context.Context, s *platform.Session, courseID string) ([]platform.Quiz, error) {
	data, err := c.query(ctx, s, "FindCourseUnits", findCourseUnitsQuery, map[string]any{
		"where": map[string]any{"id": map[string]any{"equals": courseID}},
	}, true)
	if err != nil {
		return nil, err
	}
	units := data.Get("findCourseDetail.units").Array()
	if len(units) == 0 {
		return nil, platform.Retryable("FindCourseUnits", fmt.Errorf("%w: units of %s", platform.ErrNoData, courseID))
	}

	var quizzes []platform.Quiz
	for _, unit := range units {
		for _, page := range unit.Get("pages").Array() {
			id, title := page.Get("id").String(), page.Get("title").String()
			if id != "" && title != "" {
				quizzes = append(quizzes, platform.Quiz{ID: id, Name: title})
			}
		}
	}
	return quizzes, nil
}

// QuestionCount counts the question blocks in a lesson page. The content
// is either a list of sections or a map of section lists.
func (c *Client) QuestionCount(ctx context.Context, s *platform.Session, quizID string) (int, error) {
	data, err := c.query(ctx, s, "FindUniquePage", findPageQuery, map[string]any{
		"where": map[string]any{"id": quizID},
	}, true)
	if err != nil {
		return 0, err
	}
	content := data.Get("findUniquePage.content")
	if !content.Exists() || content.Type == gjson.Null {
		return 0, platform.Retryable("FindUniquePage", fmt.Errorf("%w: page content", platform.ErrNoData))
	}

	var sections []gjson.Result
	if content.IsObject() {
		content.ForEach(func(_, value gjson.Result) bool {
			sections = append(sections, value.Array()...)
			return true
		})
	} else {
		sections = content.Array()
	}

	count := 0
	for _, section := range sections {
		for _, child := range section.Get("children").Array() {
			if questionBlockTypes[child.Get("type").String()] {
				count++
			}
		}
	}
	return count, nil
}

// SubmitQuizAnswer answers one question. A response without treasure means
// the platform accepted the answer but granted nothing for it.
func (c *Client) SubmitQuizAnswer(ctx context.Context, s *platform.Session, quizID string, index int) (platform.QuizSubmission, error) {
	data, err := c.query(ctx, s, "SubmitQuiz", submitQuizMutation, map[string]any{
		"input": map[string]any{
			"lessonId":  quizID,
			"status":    true,
			"quizIndex": index,
		},
	}, true)
	if err != nil {
		return platform.QuizSubmission{}, err
	}
	treasure := data.Get("submitQuiz.treasure")
	if !treasure.Exists() || treasure.Type == gjson.Null {
		return platform.QuizSubmission{}, nil
	}
	return platform.QuizSubmission{
		Reward:   treasure.Get("coin").Int(),
		Exp:      treasure.Get("exp").Int(),
		Terminal: true,
	}, nil
}

func (c *Client) CompleteLesson(ctx context.Context, s *platform.Session, lesson platform.LessonCompletion) error {
	data, err := c.query(ctx, s, "CompleteLesson", completeLessonMutation, map[string]any{
		"input": map[string]any{
			"lessonId":       lesson.QuizID,
			"courseId":       lesson.CourseID,
			"completeCourse": lesson.CompleteCourse,
			"phaseId":        lesson.PhaseID,
			"lang":           config.ContentLanguage,
		},
	}, true)
	if err != nil {
		return err
	}
	if r := data.Get("completeLesson"); !r.Exists() || r.Type == gjson.Null {
		return platform.Retryable("CompleteLesson", platform.ErrNoData)
	}
	return nil
}

func (c *Client) SubmitPhaseQuiz(ctx context.Context, s *platform.Session, phaseQuizID, quizID string) (platform.PhaseQuizSubmission, error) {
	data, err := c.query(ctx, s, "SubmitPhaseQuiz", submitPhaseQuizMutation, map[string]any{
		"input": map[string]any{
			"phaseQuizId": phaseQuizID,
			"lessonId":    quizID,
			"status":      true,
		},
	}, true)
	if err != nil {
		return platform.PhaseQuizSubmission{}, err
	}
	payload := data.Get("submitPhaseQuiz")
	if !payload.Exists() || payload.Type == gjson.Null {
		return platform.PhaseQuizSubmission{}, platform.Retryable("SubmitPhaseQuiz", platform.ErrNoData)
	}
	return parsePhaseQuiz(payload), nil
}

// parsePhaseQuiz books only the treasure coins of a finished exam. The
// treasure exp is not credited to the ledger.
func parsePhaseQuiz(payload gjson.Result) platform.PhaseQuizSubmission {
	if treasure := payload.Get("treasure"); treasure.Exists() && treasure.Type != gjson.Null {
		return platform.PhaseQuizSubmission{
			Reward:  treasure.Get("coin").Int(),
			Outcome: platform.OutcomeTerminal,
		}
	}
	progress := payload.Get("progress").Array()
	if len(progress) < 2 {
		return platform.PhaseQuizSubmission{Outcome: platform.OutcomeFailed}
	}
	return platform.PhaseQuizSubmission{
		Outcome:  platform.OutcomeProgressed,
		Progress: platform.Progress{K: int(progress[0].Int()), N: int(progress[1].Int())},
		TryAgain: payload.Get("tryAgain").Bool(),
	}
}

func (c *Client) ClaimPhaseReward(ctx context.Context, s *platform.Session, phaseID string) (platform.Reward, error) {
	data, err := c.query(ctx, s, "ClaimPhaseReward", claimPhaseRewardMutation, map[string]any{
		"phaseId": phaseID,
	}, true)
	if err != nil {
		return platform.Reward{}, err
	}
	reward := data.Get("claimPhaseReward")
	if !reward.Exists() || reward.Type == gjson.Null {
		return platform.Reward{}, platform.Retryable("ClaimPhaseReward", platform.ErrNoData)
	}
	return platform.Reward{Coins: reward.Get("coin").Int()}, nil
}

func (c *Client) SwitchActivePhase(ctx context.Context, s *platform.Session, phaseID string) error {
	data, err := c.query(ctx, s, "SwitchCurrentPhase", switchPhaseMutation, map[string]any{
		"phaseId": phaseID,
	}, true)
	if err != nil {
		return err
	}
	if !data.Get("switchCurrentPhase").Bool() {
		return platform.Retryable("SwitchCurrentPhase", fmt.Errorf("%w: switch rejected", platform.ErrNotClaimable))
	}
	return nil
}
