package tenk

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Generator is the narrow capability the model client needs from a
// generative text service: one blocking prompt-in, text-out call.
// The gemini subpackage provides the production implementation; tests
// substitute a deterministic stub.
type Generator interface {
	Generate(ctx context.Context, prompt string, wantJSON bool) (string, error)
}

// RetryPolicy bounds how a failed oracle call is retried.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, first call included.
	MaxAttempts int
	// Backoff is the base delay before a retry; attempt n waits n times it.
	Backoff time.Duration
}

// DefaultRetryPolicy tolerates two transient failures per call.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Backoff: 2 * time.Second}

// OracleError reports an oracle call that still failed once all retry
// attempts were exhausted.
type OracleError struct {
	Attempts int
	Err      error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *OracleError) Unwrap() error { return e.Err }

// FormatError reports an oracle response that violates the JSON contract:
// unparseable text, or a value that is neither an integer nor the "N/A"
// sentinel. It is never retried, a malformed answer is not a transient
// condition.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return "malformed oracle response: " + e.Reason
	}
	return fmt.Sprintf("malformed oracle response: %s: %v", e.Reason, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// notAvailable is the sentinel the oracle is instructed to answer when a
// value cannot be found in the document.
const notAvailable = "N/A"

// ModelClient extracts financial item values from a document through a
// generative text oracle.
type ModelClient struct {
	gen   Generator
	retry RetryPolicy
}

// NewModelClient wraps a generator with a retry policy. A zero policy means
// DefaultRetryPolicy.
func NewModelClient(gen Generator, retry RetryPolicy) *ModelClient {
	if retry.MaxAttempts <= 0 {
		retry = DefaultRetryPolicy
	}
	return &ModelClient{gen: gen, retry: retry}
}

// Extract asks the oracle for the requested items over the document, which
// should be the financial statements section of a 10-K. The returned map
// holds exactly the normalized key of every requested item, each mapped to
// its plain-dollar value or to nil when the oracle could not find it.
//
// Transport failures are retried per the client's policy and surface as an
// *OracleError once exhausted; a response violating the JSON contract
// surfaces immediately as a *FormatError.
func (m *ModelClient) Extract(ctx context.Context, document string, items ItemSet) (YearFinancials, error) {
	prompt := buildPrompt(document, items)

	text, err := m.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return normalize(text, items)
}

// generate calls the oracle, retrying with an incremental backoff. The
// context is honored between attempts so a caller can abort during the
// backoff sleep.
func (m *ModelClient) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= m.retry.MaxAttempts; attempt++ {
		text, err := m.gen.Generate(ctx, prompt, true)
		if err == nil {
			return text, nil
		}
		lastErr = err
		log.Printf("oracle attempt %d/%d failed: %v", attempt, m.retry.MaxAttempts, err)

		if attempt == m.retry.MaxAttempts {
			break
		}
		select {
		case <-time.After(time.Duration(attempt) * m.retry.Backoff):
		case <-ctx.Done():
			return "", &OracleError{Attempts: attempt, Err: ctx.Err()}
		}
	}
	return "", &OracleError{Attempts: m.retry.MaxAttempts, Err: lastErr}
}

// buildPrompt embeds the requested items and the document into the
// instruction. The oracle is told the exact JSON key to answer with for
// each item, and to expand values stated in millions to full dollar units.
func buildPrompt(document string, items ItemSet) string {
	reqs := make([]string, len(items))
	for i, item := range items {
		reqs[i] = fmt.Sprintf("%s (`%s`)", item, Key(item))
	}

	var b strings.Builder
	b.WriteString("## Instructions\n")
	b.WriteString("Given the following financial document, in the relevant year, what is the company's: ")
	b.WriteString(strings.Join(reqs, ", "))
	b.WriteString("?\n")
	b.WriteString("Respond with a JSON object mapping each requested key to its value. ")
	b.WriteString("Return each value in US dollars without commas. For example, if the document ")
	b.WriteString("states a statistic as being $420,000 in millions of dollars, return 420000000000. ")
	b.WriteString("If you cannot find adequate information for a particular requested value, ")
	b.WriteString("reply \"" + notAvailable + "\" instead.\n\n")
	b.WriteString("## Document\n")
	b.WriteString(document)
	return b.String()
}

// normalize parses the oracle's JSON answer and coerces it into a
// YearFinancials whose key set is exactly the normalized requested items.
func normalize(text string, items ItemSet) (YearFinancials, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, &FormatError{Reason: "not a JSON object", Err: err}
	}

	out := make(YearFinancials, len(items))
	for _, key := range items.Keys() {
		v, ok := raw[key]
		if !ok {
			// An omitted key means the same as the sentinel: not found.
			log.Printf("oracle response omits %q, treating as not found", key)
			out[key] = nil
			continue
		}
		amount, missing, err := coerce(v)
		if err != nil {
			return nil, &FormatError{Reason: fmt.Sprintf("value of %q", key), Err: err}
		}
		if missing {
			out[key] = nil
		} else {
			out[key] = &amount
		}
	}
	return out, nil
}

// coerce turns one JSON value into a dollar amount, accepting the integer
// itself, its decimal string form, or the not-available sentinel.
func coerce(v any) (amount int64, missing bool, err error) {
	var s string
	switch v := v.(type) {
	case json.Number:
		s = v.String()
	case string:
		if strings.TrimSpace(v) == notAvailable {
			return 0, true, nil
		}
		s = v
	case nil:
		return 0, true, nil
	default:
		return 0, false, fmt.Errorf("unexpected type %T", v)
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, false, fmt.Errorf("not a number: %q", s)
	}
	if !d.IsInteger() {
		return 0, false, fmt.Errorf("not an integer dollar amount: %q", s)
	}
	return d.IntPart(), false, nil
}
