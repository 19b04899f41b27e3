package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"spicysweet/internal/config"
	"spicysweet/internal/game"
	"spicysweet/internal/model"
	"spicysweet/internal/store"
)

// GeneratorService produces per-phase question sets via the Gemini API,
// gated by the session's generation lock. When no API key is configured
// it serves the built-in content so a session never blocks on
// generation.
type GeneratorService struct {
	config *config.AIConfig
	store  store.SessionStore
	client *http.Client
}

// NewGeneratorService creates a new generator service
func NewGeneratorService(st store.SessionStore) *GeneratorService {
	cfg := config.DefaultAIConfig()
	return &GeneratorService{
		config: cfg,
		store:  st,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// GenerateForSession runs the whole lock-gated flow: acquire the lock
// in one transaction, generate outside any transaction, then write the
// result and release in a second transaction. Exactly one of several
// racing callers acquires; the rest get ErrLockHeld immediately and
// wait for the broadcast isGenerating flag to clear instead of polling.
func (s *GeneratorService) GenerateForSession(ctx context.Context, code, callerID string, req *model.GenerationRequest) (*model.Session, error) {
	purpose := fmt.Sprintf("generate %s content", req.Phase)
	_, err := s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.AcquireLock(sess, callerID, purpose, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}

	result, genErr := s.Generate(ctx, req)

	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		if genErr == nil && result != nil && result.Data != nil {
			if sess.CustomContent == nil {
				sess.CustomContent = &model.ContentSet{}
			}
			mergeContent(sess.CustomContent, result.Data)
		} else if genErr != nil {
			// Generation failure is not fatal: the session falls back
			// to its built-in content for this phase.
			log.Printf("[generator] generation failed for %s/%s: %v", code, req.Phase, genErr)
		}
		return game.ReleaseLock(sess, callerID)
	})
}

// ValidateMemoryForSession resolves the phase5 duel. With the API
// configured it grades both teams' answers semantically outside any
// transaction and passes the verdicts in; otherwise the built-in fuzzy
// matcher grades inside the transaction. The Resolved guard makes a
// retried validation a committed rejection, never a double award.
func (s *GeneratorService) ValidateMemoryForSession(ctx context.Context, code, callerID string) (*model.Session, error) {
	var grades map[model.Team][]bool
	if s.config.IsEnabled() {
		sess, err := s.store.Read(ctx, code)
		if err != nil {
			return nil, err
		}
		if sess.Memory != nil && len(sess.Memory.Answers) > 0 {
			grades = s.GradeMemoryAnswers(ctx, sess.MemoryPairs(), sess.Memory.Answers)
		}
	}
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.ValidateMemoryAnswers(sess, callerID, grades, time.Now().UTC())
	})
}

// ExtendForSession pushes the lock expiry forward for a long job.
func (s *GeneratorService) ExtendForSession(ctx context.Context, code, callerID string) (*model.Session, error) {
	return s.store.Transact(ctx, code, func(sess *model.Session) error {
		return game.ExtendLock(sess, callerID, time.Now().UTC())
	})
}

// Generate produces a ContentSet populated only for the requested phase.
func (s *GeneratorService) Generate(ctx context.Context, req *model.GenerationRequest) (*model.GenerationResult, error) {
	if !s.config.IsEnabled() {
		return s.mockGenerate(req), nil
	}

	prompt := buildGenerationPrompt(req)
	response, usage, err := s.callGemini(ctx, s.config.Models.ContentGen, prompt)
	if err != nil {
		return s.mockGenerate(req), nil
	}

	var set model.ContentSet
	if err := json.Unmarshal([]byte(response), &set); err != nil {
		log.Printf("[generator] unparseable model output: %v", err)
		return s.mockGenerate(req), nil
	}
	if empty(&set, req.Phase) {
		return s.mockGenerate(req), nil
	}
	return &model.GenerationResult{Data: &set, Usage: usage}, nil
}

// GradeMemoryAnswers grades phase5 answers semantically when the API is
// configured; otherwise it defers to the fuzzy matcher.
func (s *GeneratorService) GradeMemoryAnswers(ctx context.Context, pairs []model.MemoryPair, answers map[model.Team][]string) map[model.Team][]bool {
	grades := make(map[model.Team][]bool, len(answers))
	for team, got := range answers {
		results := make([]bool, len(pairs))
		for i := range pairs {
			if i >= len(got) {
				continue
			}
			if s.config.IsEnabled() {
				ok, err := s.gradeOne(ctx, pairs[i], got[i])
				if err == nil {
					results[i] = ok
					continue
				}
			}
			results[i] = game.AnswerMatches(got[i], pairs[i].Answer)
		}
		grades[team] = results
	}
	return grades
}

func (s *GeneratorService) gradeOne(ctx context.Context, pair model.MemoryPair, got string) (bool, error) {
	prompt := fmt.Sprintf(`Question: %q
Expected answer: %q
Player answer: %q

Does the player answer mean the same thing as the expected answer?
Respond with JSON only: {"match": true|false}`, pair.Question, pair.Answer, got)

	response, _, err := s.callGemini(ctx, s.config.Models.Grading, prompt)
	if err != nil {
		return false, err
	}
	var verdict struct {
		Match bool `json:"match"`
	}
	if err := json.Unmarshal([]byte(response), &verdict); err != nil {
		return false, err
	}
	return verdict.Match, nil
}

func (s *GeneratorService) mockGenerate(req *model.GenerationRequest) *model.GenerationResult {
	defaults := game.DefaultContent()
	set := &model.ContentSet{}
	switch req.Phase {
	case model.Phase1:
		set.Rapid = defaults.Rapid
	case model.Phase2:
		set.Sort = defaults.Sort
	case model.Phase3:
		set.Menus = defaults.Menus
	case model.Phase4:
		set.Buzzer = defaults.Buzzer
	case model.Phase5:
		set.Memory = defaults.Memory
	}
	return &model.GenerationResult{
		Data:  set,
		Usage: &model.GenerationUsage{Model: "mock"},
	}
}

func buildGenerationPrompt(req *model.GenerationRequest) string {
	var sb strings.Builder
	sb.WriteString("You write questions for a team trivia party game, two teams: spicy and sweet.\n")
	fmt.Fprintf(&sb, "Language: %s. Difficulty: %s.\n", req.Language, req.Difficulty)
	if req.Topic != "" {
		fmt.Fprintf(&sb, "Topic: %s.\n", req.Topic)
	}
	sb.WriteString("Respond with JSON only, no prose.\n")

	switch req.Phase {
	case model.Phase1:
		sb.WriteString(`Write 5 multiple-choice questions as {"phase1":[{"prompt":"...","choices":["a","b","c","d"],"correctIndex":0}]}`)
	case model.Phase2:
		sb.WriteString(`Write 6 classification items as {"phase2":[{"prompt":"...","categoryA":"Spicy","categoryB":"Sweet","answer":"A"|"B"|"both"}]}`)
	case model.Phase3:
		sb.WriteString(`Write 3 theme menus of 3 open questions each as {"phase3":[{"id":"slug","title":"...","questions":[{"prompt":"...","answer":"..."}]}]}`)
	case model.Phase4:
		sb.WriteString(`Write 4 open buzzer questions as {"phase4":[{"prompt":"...","answer":"..."}]}`)
	case model.Phase5:
		sb.WriteString(`Write 5 short memory pairs as {"phase5":[{"question":"...","answer":"one or two words"}]}`)
	}
	return sb.String()
}

func empty(set *model.ContentSet, phase model.Phase) bool {
	switch phase {
	case model.Phase1:
		return len(set.Rapid) == 0
	case model.Phase2:
		return len(set.Sort) == 0
	case model.Phase3:
		return len(set.Menus) == 0
	case model.Phase4:
		return len(set.Buzzer) == 0
	case model.Phase5:
		return len(set.Memory) == 0
	}
	return true
}

func mergeContent(dst, src *model.ContentSet) {
	if len(src.Rapid) > 0 {
		dst.Rapid = src.Rapid
	}
	if len(src.Sort) > 0 {
		dst.Sort = src.Sort
	}
	if len(src.Menus) > 0 {
		dst.Menus = src.Menus
	}
	if len(src.Buzzer) > 0 {
		dst.Buzzer = src.Buzzer
	}
	if len(src.Memory) > 0 {
		dst.Memory = src.Memory
	}
}

// geminiRequest is the generateContent payload
type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		ResponseMIMEType string `json:"responseMimeType"`
	} `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse is the subset of the API response we consume
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
}

// callGemini sends a prompt and returns the raw JSON text of the first
// candidate plus usage metadata.
func (s *GeneratorService) callGemini(ctx context.Context, modelName, prompt string) (string, *model.GenerationUsage, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	reqBody.GenerationConfig.ResponseMIMEType = "application/json"

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", nil, err
	}

	url := s.config.ModelEndpoint(modelName) + "?key=" + s.config.APIKey
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}
	if resp.StatusCode >= 400 {
		return "", nil, fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(body))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", nil, fmt.Errorf("failed to parse gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", nil, fmt.Errorf("empty gemini response")
	}

	usage := &model.GenerationUsage{
		Model:        modelName,
		PromptTokens: parsed.UsageMetadata.PromptTokenCount,
		OutputTokens: parsed.UsageMetadata.CandidatesTokenCount,
	}
	return parsed.Candidates[0].Content.Parts[0].Text, usage, nil
}
