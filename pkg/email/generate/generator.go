// Package generate drives the language model through a bounded repair loop
// until it produces a structurally valid email document or the attempt
// budget runs out.
package generate

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/mailcraft/pkg/ai/llm"
	"github.com/Abraxas-365/mailcraft/pkg/brand"
	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
	"github.com/Abraxas-365/mailcraft/pkg/email/validate"
	"github.com/Abraxas-365/mailcraft/pkg/logx"
)

type state string

const (
	stateDrafting      state = "drafting"
	stateAwaitingModel state = "awaiting_model"
	stateValidating    state = "validating"
	stateRepairing     state = "repairing"
	stateAccepted      state = "accepted"
	stateFailed        state = "failed"
)

const (
	defaultMaxAttempts = 3
	defaultTimeout     = 90 * time.Second
)

// temperatureFor decreases randomness as repair narrows the search.
func temperatureFor(attempt int) float32 {
	switch attempt {
	case 1:
		return 0.7
	case 2:
		return 0.5
	default:
		return 0.3
	}
}

// Result is one accepted generation: the document, the non-blocking findings
// that survived acceptance, and run bookkeeping.
type Result struct {
	Spec     *spec.EmailSpec
	Warnings []spec.Issue
	Attempts int
	RunID    string
}

// Generator owns the attempt loop. Construct with New; the zero value has no
// provider and fails every call with LLM_CONFIG_MISSING.
type Generator struct {
	provider    llm.Provider
	model       string
	maxAttempts int
	timeout     time.Duration
	tracer      Tracer
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(g *Generator) { g.model = model }
}

// WithMaxAttempts sets the attempt budget.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithTimeout bounds the whole generation run, all attempts included.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithTracer replaces the default log-backed tracer. Tests inject a recording
// tracer to assert on the emitted event stream.
func WithTracer(t Tracer) Option {
	return func(g *Generator) {
		if t != nil {
			g.tracer = t
		}
	}
}

// New builds a Generator around a provider.
func New(provider llm.Provider, opts ...Option) *Generator {
	g := &Generator{
		provider:    provider,
		maxAttempts: defaultMaxAttempts,
		timeout:     defaultTimeout,
		tracer:      logTracer{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs the bounded repair loop and returns the first accepted
// document. Warnings never block; any error issue triggers a repair attempt
// with the full issue list as feedback. A repeated error signature fails
// fast instead of burning the remaining budget.
func (g *Generator) Generate(ctx context.Context, b brand.BrandContext, intent brand.CampaignIntent, plan brand.Plan) (*Result, error) {
	if g.provider == nil {
		return nil, generateErrors.New(ErrConfigMissing)
	}
	if err := brand.ValidateInput(b, intent, plan); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	emit := func(name string, fields logx.Fields) {
		if fields == nil {
			fields = logx.Fields{}
		}
		fields["run_id"] = runID
		fields["brand"] = b.Name
		g.tracer.Event(name, fields)
	}
	emit(EventRunStarted, logx.Fields{"state": string(stateDrafting)})

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	messages := []llm.Message{
		llm.NewSystemMessage(systemPrompt),
		llm.NewUserMessage(userPrompt(b, intent, plan)),
	}

	signatures := make(map[string]bool)
	vctx := validate.Context{Brand: &b, Intent: &intent, Plan: &plan}

	var lastCallErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		temp := temperatureFor(attempt)
		emit(EventCallingModel, logx.Fields{
			"state":       string(stateAwaitingModel),
			"attempt":     attempt,
			"temperature": temp,
		})

		opts := []llm.Option{
			llm.WithTemperature(temp),
			llm.WithJSONResponseFormat(),
		}
		if g.model != "" {
			opts = append(opts, llm.WithModel(g.model))
		}

		resp, err := g.provider.Chat(ctx, messages, opts...)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				emit(EventTimeout, logx.Fields{"attempt": attempt, "error": err.Error()})
				return nil, generateErrors.NewWithCause(ErrTimeout, err).
					WithDetail("attempt", attempt)
			}
			emit(EventCallFailed, logx.Fields{"attempt": attempt, "error": err.Error()})
			lastCallErr = err
			continue
		}

		raw := strings.TrimSpace(resp.Message.Content)
		if raw == "" {
			emit(EventEmptyResponse, logx.Fields{"attempt": attempt})
			lastCallErr = errors.New("empty model response")
			continue
		}

		emit(EventValidating, logx.Fields{"state": string(stateValidating), "attempt": attempt})
		doc, issues := g.validateCandidate(raw, vctx)
		errIssues := spec.Errors(issues)
		if len(errIssues) == 0 {
			emit(EventAccepted, logx.Fields{
				"state":    string(stateAccepted),
				"attempt":  attempt,
				"warnings": len(issues),
			})
			return &Result{
				Spec:     doc,
				Warnings: spec.Warnings(issues),
				Attempts: attempt,
				RunID:    runID,
			}, nil
		}

		sig := errorSignature(errIssues)
		if signatures[sig] {
			emit(EventSignatureRepeated, logx.Fields{"attempt": attempt, "signature": sig})
			return nil, g.outputInvalid(errIssues, attempt)
		}
		signatures[sig] = true

		emit(EventRejected, logx.Fields{
			"state":   string(stateRepairing),
			"attempt": attempt,
			"errors":  len(errIssues),
		})
		messages = append(messages,
			llm.NewAssistantMessage(raw),
			llm.NewUserMessage(repairPrompt(raw, errIssues)),
		)
		lastCallErr = nil
	}

	emit(EventExhausted, logx.Fields{"state": string(stateFailed)})
	if lastCallErr != nil {
		return nil, generateErrors.NewWithCause(ErrFailed, lastCallErr).
			WithDetail("attempts", g.maxAttempts)
	}
	return nil, generateErrors.New(ErrOutputInvalid).
		WithDetail("attempts", g.maxAttempts)
}

// validateCandidate parses and validates one raw model output. A parse
// failure is reported as a synthetic issue so it feeds repair like any
// other finding.
func (g *Generator) validateCandidate(raw string, vctx validate.Context) (*spec.EmailSpec, []spec.Issue) {
	doc, err := spec.Decode([]byte(raw))
	if err != nil {
		return nil, []spec.Issue{
			spec.NewError("PARSE_FAILED", "output is not valid JSON: "+err.Error(), ""),
		}
	}

	issues := spec.ValidateSchema(doc)
	if spec.HasErrors(issues) {
		return doc, issues
	}
	return doc, append(issues, validate.Validate(doc, vctx)...)
}

func (g *Generator) outputInvalid(errIssues []spec.Issue, attempts int) error {
	e := generateErrors.New(ErrOutputInvalid).
		WithDetail("attempts", attempts).
		WithDetail("repeated", true)
	codes := make([]string, 0, len(errIssues))
	for _, is := range errIssues {
		codes = append(codes, is.Code)
	}
	return e.WithDetail("codes", strings.Join(codes, ","))
}

// errorSignature reduces a rejection to the set of error codes. Schema
// findings keep their path, two shape problems at different fields are
// different mistakes; structural codes describe document-wide rules and
// compare by code alone, so the same rule tripping at a new path still
// counts as the model repeating itself.
func errorSignature(errIssues []spec.Issue) string {
	seen := make(map[string]bool, len(errIssues))
	keys := make([]string, 0, len(errIssues))
	for _, is := range errIssues {
		key := is.Code
		if isSchemaCode(is.Code) {
			key = is.Path + ":" + is.Code
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}

func isSchemaCode(code string) bool {
	switch code {
	case spec.CodeRequired, spec.CodeOutOfRange, spec.CodeInvalidEnum,
		spec.CodeInvalidColor, spec.CodeInvalidLayout:
		return true
	}
	return false
}
