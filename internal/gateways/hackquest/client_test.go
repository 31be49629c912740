package hackquest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/questpilot/hackquest-bot/internal/domain/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type capturedRequest struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
	Auth          string         `json:"-"`
}

// newTestClient serves every GraphQL operation from responses keyed by
// operation name and records what was sent.
func newTestClient(t *testing.T, responses map[string]string) (*Client, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req capturedRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		req.Auth = r.Header.Get("Authorization")
		captured = append(captured, req)

		resp, ok := responses[req.OperationName]
		if !ok {
			http.Error(w, "unknown operation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, resp)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(ClientConfig{
		Endpoint: srv.URL,
		PageURL:  srv.URL + "/quest",
		Limiter:  rate.NewLimiter(rate.Inf, 1),
	})
	require.NoError(t, err)
	return c, &captured
}

func authed() *platform.Session {
	return &platform.Session{Address: "0xabc", AccessToken: "token"}
}

func TestClient_Login(t *testing.T) {
	c, captured := newTestClient(t, map[string]string{
		"GetNonce":      `{"data":{"nonce":{"nonce":"n-1","message":"sign me"}}}`,
		"LoginByWallet": `{"data":{"loginByWallet":{"access_token":"tok","user":{"id":"u1","uid":42,"status":"UNACTIVATED","inviteCode":"INV"}}}}`,
	})
	s := &platform.Session{Address: "0xabc"}

	challenge, err := c.LoginChallenge(context.Background(), s, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, platform.Challenge{Message: "sign me", Nonce: "n-1"}, challenge)

	id, err := c.Login(context.Background(), s, "0xabc", challenge, "0xsig")
	require.NoError(t, err)
	assert.Equal(t, "tok", id.AccessToken)
	assert.Equal(t, platform.StatusUnactivated, id.Status)
	assert.Equal(t, "u1", id.ID)
	assert.Equal(t, int64(42), id.UID)
	assert.Equal(t, "INV", id.InviteCode)

	require.Len(t, *captured, 2)
	input := (*captured)[1].Variables["input"].(map[string]any)
	assert.Equal(t, "0xsig", input["signature"])
	assert.Equal(t, "n-1", input["nonce"])
	assert.Contains(t, walletTypes, input["walletType"])
	assert.Empty(t, (*captured)[1].Auth)
}

func TestClient_ActivateAccount(t *testing.T) {
	tests := []struct {
		name       string
		refCode    string
		wantInvite bool
	}{
		{name: "with invite code", refCode: "REF", wantInvite: true},
		{name: "without invite code", refCode: "", wantInvite: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, captured := newTestClient(t, map[string]string{
				"ActivateUser": `{"data":{"activateUser":{"access_token":"fresh","user":{"id":"u1","status":"ACTIVATED"}}}}`,
			})
			id, err := c.ActivateAccount(context.Background(), authed(), tt.refCode)
			require.NoError(t, err)
			assert.Equal(t, "fresh", id.AccessToken)

			_, hasInvite := (*captured)[0].Variables["inviteCode"]
			if hasInvite != tt.wantInvite {
				t.Errorf("ActivateAccount() sent inviteCode = %v, want %v", hasInvite, tt.wantInvite)
			}
			assert.Equal(t, "token", (*captured)[0].Variables["accessToken"])
		})
	}
}

func TestClient_AuthenticatedCallWithoutToken(t *testing.T) {
	c, captured := newTestClient(t, nil)

	_, err := c.FetchEcosystem(context.Background(), &platform.Session{})
	require.Error(t, err)
	assert.True(t, platform.IsFatal(err))
	assert.ErrorIs(t, err, platform.ErrUnauthenticated)
	assert.Empty(t, *captured)
}

func TestClient_StatusClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantFatal bool
	}{
		{name: "unauthorized is fatal", status: http.StatusUnauthorized, wantFatal: true},
		{name: "server error is retryable", status: http.StatusBadGateway, wantFatal: false},
		{name: "rate limit is retryable", status: http.StatusTooManyRequests, wantFatal: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c, err := NewClient(ClientConfig{Endpoint: srv.URL, Limiter: rate.NewLimiter(rate.Inf, 1)})
			require.NoError(t, err)

			_, err = c.EcosystemCompleted(context.Background(), authed(), "eco")
			require.Error(t, err)
			if platform.IsFatal(err) != tt.wantFatal {
				t.Errorf("EcosystemCompleted() error = %v, wantFatal %v", err, tt.wantFatal)
			}
			if !tt.wantFatal && !platform.IsRetryable(err) {
				t.Errorf("EcosystemCompleted() error = %v, want retryable", err)
			}
		})
	}
}

func TestClient_FetchEcosystem(t *testing.T) {
	c, captured := newTestClient(t, map[string]string{
		"FindActiveEcosystem": `{"data":{"ecosystem":{"id":"eco-1"}}}`,
		"FindActiveEcosystemInfo": `{"data":{"ecosystem":{"ecosystemId":"eco-1","currentPhase":{"id":"p1"},"phases":[
			{"id":"p1","certificateId":"cert-1","courses":[{"id":"c1"},{"id":"c2"}],"quizzes":[{"id":"pq1","quizList":[{"id":"q1"},{"id":"q2"}]}]},
			{"id":"p2","certificateId":null,"courses":[{"id":"c3"}],"quizzes":[]}
		]}}}`,
	})

	eco, err := c.FetchEcosystem(context.Background(), authed())
	require.NoError(t, err)

	assert.Equal(t, "eco-1", eco.ID)
	assert.Equal(t, "p1", eco.CurrentPhaseID)
	require.Len(t, eco.Phases, 2)
	assert.Equal(t, "cert-1", eco.Phases[0].CertificateID)
	assert.Equal(t, []platform.Course{{ID: "c1"}, {ID: "c2"}}, eco.Phases[0].Courses)
	require.Len(t, eco.Phases[0].Quizzes, 1)
	assert.Equal(t, []platform.Quiz{
		{ID: "q1", Name: "1. Phase 1 quiz"},
		{ID: "q2", Name: "2. Phase 1 quiz"},
	}, eco.Phases[0].Quizzes[0].QuizList)
	assert.Empty(t, eco.Phases[1].CertificateID)

	where := (*captured)[1].Variables["where"].(map[string]any)["ecosystemId_lang"].(map[string]any)
	assert.Equal(t, "eco-1", where["ecosystemId"])
	assert.Equal(t, "en", where["lang"])
	assert.Equal(t, "Bearer token", (*captured)[1].Auth)
}

func TestClient_EcosystemCompleted(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"ListActiveEcosystemInfos": `{"data":{"ecosystems":[
			{"ecosystemId":"other","progress":{"status":"COMPLETED"}},
			{"ecosystemId":"eco-1","progress":{"status":"IN_PROGRESS"}},
			{"ecosystemId":"eco-2","progress":{"status":"COMPLETED"}}
		]}}`,
	})

	tests := []struct {
		id   string
		want bool
	}{
		{id: "eco-1", want: false},
		{id: "eco-2", want: true},
		{id: "missing", want: false},
	}
	for _, tt := range tests {
		got, err := c.EcosystemCompleted(context.Background(), authed(), tt.id)
		require.NoError(t, err)
		if got != tt.want {
			t.Errorf("EcosystemCompleted(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestClient_FetchCourseQuizzes(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"FindCourseUnits": `{"data":{"findCourseDetail":{"id":"c1","units":[
			{"pages":[{"id":"a","title":"Intro"},{"id":"b","title":"Types"}]},
			{"pages":[{"id":"c","title":"Quiz"}]}
		]}}}`,
	})

	quizzes, err := c.FetchCourseQuizzes(context.Background(), authed(), "c1")
	require.NoError(t, err)
	assert.Equal(t, []platform.Quiz{
		{ID: "a", Name: "Intro"},
		{ID: "b", Name: "Types"},
		{ID: "c", Name: "Quiz"},
	}, quizzes)
}

func TestClient_QuestionCount(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{
			name:    "list of sections",
			content: `[{"children":[{"type":"Choice"},{"type":"Text"}]},{"children":[{"type":"QuizA"}]}]`,
			want:    2,
		},
		{
			name:    "map of section lists",
			content: `{"left":[{"children":[{"type":"ChoiceFill"}]}],"right":[{"children":[{"type":"QuizB"},{"type":"QuizC"}]}]}`,
			want:    3,
		},
		{
			name:    "no questions",
			content: `[{"children":[{"type":"Text"}]}]`,
			want:    0,
		},
		{
			name:    "missing content",
			content: `null`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, map[string]string{
				"FindUniquePage": `{"data":{"findUniquePage":{"id":"q1","content":` + tt.content + `}}}`,
			})
			got, err := c.QuestionCount(context.Background(), authed(), "q1")
			if (err != nil) != tt.wantErr {
				t.Errorf("QuestionCount() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("QuestionCount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_SubmitQuizAnswer(t *testing.T) {
	tests := []struct {
		name string
		resp string
		want platform.QuizSubmission
	}{
		{
			name: "treasure",
			resp: `{"data":{"submitQuiz":{"treasure":{"coin":3,"exp":10}}}}`,
			want: platform.QuizSubmission{Reward: 3, Exp: 10, Terminal: true},
		},
		{
			name: "no treasure",
			resp: `{"data":{"submitQuiz":{"treasure":null}}}`,
			want: platform.QuizSubmission{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, captured := newTestClient(t, map[string]string{"SubmitQuiz": tt.resp})
			got, err := c.SubmitQuizAnswer(context.Background(), authed(), "q1", 2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			input := (*captured)[0].Variables["input"].(map[string]any)
			assert.Equal(t, "q1", input["lessonId"])
			assert.Equal(t, float64(2), input["quizIndex"])
			assert.Equal(t, true, input["status"])
		})
	}
}

func TestClient_SubmitPhaseQuiz(t *testing.T) {
	tests := []struct {
		name         string
		resp         string
		wantOutcome  platform.PhaseQuizOutcome
		wantAccepted bool
		wantReward   int64
	}{
		{
			name:         "treasure is terminal",
			resp:         `{"data":{"submitPhaseQuiz":{"treasure":{"coin":5,"exp":20},"progress":[3,3]}}}`,
			wantOutcome:  platform.OutcomeTerminal,
			wantAccepted: true,
			wantReward:   5,
		},
		{
			name:         "progress advanced",
			resp:         `{"data":{"submitPhaseQuiz":{"treasure":null,"progress":[1,3],"tryAgain":false}}}`,
			wantOutcome:  platform.OutcomeProgressed,
			wantAccepted: true,
		},
		{
			name:         "try again",
			resp:         `{"data":{"submitPhaseQuiz":{"treasure":null,"progress":[1,3],"tryAgain":true}}}`,
			wantOutcome:  platform.OutcomeProgressed,
			wantAccepted: false,
		},
		{
			name:         "no progress",
			resp:         `{"data":{"submitPhaseQuiz":{"treasure":null}}}`,
			wantOutcome:  platform.OutcomeFailed,
			wantAccepted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, map[string]string{"SubmitPhaseQuiz": tt.resp})
			got, err := c.SubmitPhaseQuiz(context.Background(), authed(), "pq1", "q1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, got.Outcome)
			assert.Equal(t, tt.wantAccepted, got.Accepted())
			assert.Equal(t, tt.wantReward, got.Reward)
			assert.Zero(t, got.Exp)
		})
	}
}

func TestClient_SwitchActivePhase(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"SwitchCurrentPhase": `{"data":{"switchCurrentPhase":true}}`,
	})
	require.NoError(t, c.SwitchActivePhase(context.Background(), authed(), "p2"))

	c, _ = newTestClient(t, map[string]string{
		"SwitchCurrentPhase": `{"data":{"switchCurrentPhase":false}}`,
	})
	err := c.SwitchActivePhase(context.Background(), authed(), "p2")
	require.Error(t, err)
	assert.True(t, platform.IsRetryable(err))
}

func TestClient_ClaimQuestReward(t *testing.T) {
	tests := []struct {
		name          string
		resp          string
		want          platform.QuestClaim
		wantErr       bool
		wantClaimable bool
	}{
		{
			name: "claimed",
			resp: `{"data":{"claimMissionReward":{"coin":50,"exp":100}}}`,
			want: platform.QuestClaim{Reward: 50, Exp: 100},
		},
		{
			name: "already claimed",
			resp: `{"errors":[{"message":"The reward has been claimed!"}],"data":null}`,
			want: platform.QuestClaim{AlreadyClaimed: true},
		},
		{
			name:          "not yet claimable",
			resp:          `{"errors":[{"message":"Mission not completed"}],"data":null}`,
			wantErr:       true,
			wantClaimable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, map[string]string{"ClaimMissionReward": tt.resp})
			got, err := c.ClaimQuestReward(context.Background(), authed(), "mission")
			if (err != nil) != tt.wantErr {
				t.Errorf("ClaimQuestReward() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantClaimable {
				assert.ErrorIs(t, err, platform.ErrNotClaimable)
				assert.True(t, platform.IsRetryable(err))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_CertificateStatus(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"CertificateProgress": `{"data":{"certificate":[
			{"id":"other","name":"Other","chainId":1},
			{"id":"cert-1","name":"Linea Learner","chainId":11155111,"contract":"0xC0ffee",
			 "userCertification":{"claimed":true,"mint":false,"certificateId":77,"username":"quietotter427"}},
			{"id":"cert-2","name":"Unclaimed","chainId":11155111,"contract":"0xC0ffee","userCertification":null}
		]}}`,
	})

	cert, err := c.CertificateStatus(context.Background(), authed(), "eco", "cert-1")
	require.NoError(t, err)
	assert.Equal(t, platform.Certificate{
		ID:              "cert-1",
		Name:            "Linea Learner",
		ChainID:         11155111,
		ContractAddress: "0xC0ffee",
		IsClaimed:       true,
		ClaimNumber:     77,
		ClaimUsername:   "quietotter427",
	}, cert)

	cert, err = c.CertificateStatus(context.Background(), authed(), "eco", "cert-2")
	require.NoError(t, err)
	assert.False(t, cert.IsClaimed)

	_, err = c.CertificateStatus(context.Background(), authed(), "eco", "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, platform.ErrNoData)
}

func TestClient_CreatePet(t *testing.T) {
	tests := []struct {
		name    string
		resp    string
		wantErr bool
	}{
		{name: "created", resp: `{"data":{"createPet":{"id":"pet","name":"quack"}}}`},
		{name: "already exists", resp: `{"errors":[{"message":"Pet already exists"}],"data":null}`},
		{name: "other error", resp: `{"errors":[{"message":"Internal"}],"data":null}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, map[string]string{"CreatePet": tt.resp})
			err := c.CreatePet(context.Background(), authed(), "quack")
			if (err != nil) != tt.wantErr {
				t.Errorf("CreatePet() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClient_CoinBalance(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		want    int64
		wantErr bool
	}{
		{
			name: "coin span",
			page: `<html><body><div><span>Level 3</span><img alt="coin" src="/coin.png"><span> 1,250 </span></div></body></html>`,
			want: 1250,
		},
		{
			name:    "no coin icon",
			page:    `<html><body><span>42</span></body></html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cookie string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if c, err := r.Cookie("access_token"); err == nil {
					cookie = c.Value
				}
				_, _ = io.WriteString(w, tt.page)
			}))
			defer srv.Close()

			c, err := NewClient(ClientConfig{PageURL: srv.URL, Limiter: rate.NewLimiter(rate.Inf, 1)})
			require.NoError(t, err)

			got, err := c.CoinBalance(context.Background(), authed())
			if (err != nil) != tt.wantErr {
				t.Errorf("CoinBalance() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "token", cookie)
		})
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchEcosystem(ctx, authed())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
