// Package exam builds question sets and grades them from their tokens.
// Grading reads no stored state: everything needed travels in the tokens.
package exam

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mind-engage/reasoned/internal/question"
	"github.com/mind-engage/reasoned/internal/quota"
	"github.com/mind-engage/reasoned/internal/token"
)

const (
	DefaultExam  = question.ExamUTBK
	DefaultTrack = question.TrackSaintek
	DefaultLevel = 1.5
	DefaultTTL   = 30 * time.Minute
)

// Accounts is the caller store the orchestrator meters against.
type Accounts interface {
	quota.Counter
	Caller(ctx context.Context, username string) (quota.Caller, error)
}

type Service struct {
	registry *question.Registry
	tokens   *token.Service
	accounts Accounts
	policy   quota.Policy
	gate     *quota.Gate
	log      *zap.Logger
	now      func() time.Time
	ttl      time.Duration

	minN, maxN, defaultN int

	rejected atomic.Int64
}

type Option func(*Service)

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }
func WithTTL(d time.Duration) Option        { return func(s *Service) { s.ttl = d } }
func WithFreeLimit(n int) Option            { return func(s *Service) { s.policy.FreeLimit = n } }
func WithLogger(l *zap.Logger) Option       { return func(s *Service) { s.log = l } }

// WithSetSize bounds n and sets the value used when a request omits it.
func WithSetSize(minN, maxN, defaultN int) Option {
	return func(s *Service) { s.minN, s.maxN, s.defaultN = minN, maxN, defaultN }
}

func NewService(reg *question.Registry, tokens *token.Service, accounts Accounts, opts ...Option) *Service {
	s := &Service{
		registry: reg,
		tokens:   tokens,
		accounts: accounts,
		policy:   quota.Policy{FreeLimit: quota.DefaultFreeLimit},
		gate:     quota.NewGate(),
		log:      zap.NewNop(),
		now:      time.Now,
		ttl:      DefaultTTL,
		minN:     10,
		maxN:     30,
		defaultN: 10,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Policy exposes the quota policy in force.
func (s *Service) Policy() quota.Policy { return s.policy }

// Meta returns the exam → track → subject taxonomy.
func (s *Service) Meta() question.Taxonomy { return question.Meta() }

// RejectedTokens counts tokens that failed verification since start.
func (s *Service) RejectedTokens() int64 { return s.rejected.Load() }

type setPlan struct {
	exam, track string
	subject     question.Subject
	level       question.Level
	n           int
	draws       []question.Subject
}

// GenerateSet checks quota, generates the set and then records one attempt.
// The check, the generation and the increment run under a per-caller lock.
func (s *Service) GenerateSet(ctx context.Context, username string, req GenerateRequest) (SetResponse, error) {
	release, err := s.gate.Acquire(ctx, username)
	if err != nil {
		return SetResponse{}, err
	}
	defer release()

	caller, err := s.accounts.Caller(ctx, username)
	if err != nil {
		return SetResponse{}, fmt.Errorf("load caller: %w", err)
	}
	if err := s.policy.Check(caller); err != nil {
		return SetResponse{}, err
	}

	rng := newRand(req.Seed)
	plan, err := s.plan(rng, req)
	if err != nil {
		return SetResponse{}, err
	}

	expires := s.now().Add(s.ttl).Unix()
	out := make([]PublicQuestion, 0, plan.n)
	for _, subj := range plan.draws {
		if err := ctx.Err(); err != nil {
			return SetResponse{}, err
		}
		q, err := s.registry.Generate(rng, subj, plan.level)
		if err != nil {
			return SetResponse{}, err
		}
		tok, err := s.tokens.Mint(payloadFor(subj, q, expires))
		if err != nil {
			return SetResponse{}, fmt.Errorf("mint token: %w", err)
		}
		out = append(out, PublicQuestion{
			Subject:  subj,
			Category: q.Category,
			Prompt:   q.Prompt,
			Options:  q.Options,
			Token:    tok,
		})
	}

	if err := s.policy.Consume(ctx, s.accounts, caller); err != nil {
		return SetResponse{}, err
	}
	s.log.Info("set generated",
		zap.String("user", username),
		zap.String("exam", plan.exam),
		zap.String("subject", string(plan.subject)),
		zap.Int("n", plan.n),
		zap.Bool("exempt", caller.Exempt()),
	)

	return SetResponse{
		SetID:     uuid.NewString(),
		Exam:      plan.exam,
		Track:     plan.track,
		Subject:   plan.subject,
		Level:     float64(plan.level),
		N:         plan.n,
		Questions: out,
	}, nil
}

// plan validates req and draws the subject for every slot.
func (s *Service) plan(rng *rand.Rand, req GenerateRequest) (setPlan, error) {
	p := setPlan{
		exam:    upper(req.Exam, DefaultExam),
		track:   upper(req.Track, DefaultTrack),
		subject: question.ParseSubject(req.Subject),
		n:       req.N,
	}
	if p.subject == "" {
		p.subject = question.Mix
	}
	if p.n == 0 {
		p.n = s.defaultN
	}
	if p.n < s.minN || p.n > s.maxN {
		return p, invalid("n", "must be between %d and %d", s.minN, s.maxN)
	}

	lvl := DefaultLevel
	if req.Level != nil {
		lvl = *req.Level
	}
	if math.IsNaN(lvl) || math.IsInf(lvl, 0) {
		return p, invalid("level", "must be a finite number")
	}
	p.level = question.ClampLevel(lvl)

	allowed, err := question.AllowedSubjects(p.exam, p.track)
	if err != nil {
		return p, &ValidationError{Field: "exam", Msg: err.Error()}
	}

	p.draws = make([]question.Subject, p.n)
	if p.subject == question.Mix {
		for _, subj := range allowed {
			if !s.registry.Has(subj) {
				return p, fmt.Errorf("%w: %s", question.ErrUnknownSubject, subj)
			}
		}
		for i := range p.draws {
			p.draws[i] = allowed[rng.Intn(len(allowed))]
		}
		return p, nil
	}

	if !s.registry.Has(p.subject) {
		return p, fmt.Errorf("%w: %s", question.ErrUnknownSubject, p.subject)
	}
	if !slices.Contains(allowed, p.subject) {
		return p, fmt.Errorf("%w: %s not in %s/%s", ErrSubjectNotAllowed, p.subject, p.exam, p.track)
	}
	for i := range p.draws {
		p.draws[i] = p.subject
	}
	return p, nil
}

// newRand returns a request-scoped source. A nil seed draws one from the
// shared top-level source.
func newRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

func upper(s, def string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return def
	}
	return s
}

// open verifies tok and enforces expiry.
func (s *Service) open(op, tok string) (Payload, error) {
	var p Payload
	if err := s.tokens.Read(strings.TrimSpace(tok), &p); err != nil {
		n := s.rejected.Add(1)
		s.log.Warn("token rejected", zap.String("op", op), zap.Int64("rejected_total", n))
		return Payload{}, err
	}
	if s.now().Unix() > p.ExpiresAt {
		return Payload{}, ErrTokenExpired
	}
	return p, nil
}
