package generate

import (
	"net/http"

	"github.com/Abraxas-365/mailcraft/pkg/errx"
)

var generateErrors = errx.NewRegistry("")

var (
	// ErrConfigMissing is raised when no language-model provider is wired in.
	ErrConfigMissing = generateErrors.Register(
		"LLM_CONFIG_MISSING",
		errx.TypeInternal,
		http.StatusServiceUnavailable,
		"No language model provider is configured",
	)

	// ErrTimeout is raised when the external call exceeded its budget.
	ErrTimeout = generateErrors.Register(
		"LLM_TIMEOUT",
		errx.TypeTimeout,
		http.StatusGatewayTimeout,
		"Language model call exceeded its time budget",
	)

	// ErrFailed covers transport-level failure: the call errored or the
	// attempt budget ran out without a classifiable validation failure.
	ErrFailed = generateErrors.Register(
		"LLM_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Language model call failed",
	)

	// ErrOutputInvalid covers content-level failure: parse, schema or
	// structural errors that persisted to exhaustion or repeated verbatim.
	ErrOutputInvalid = generateErrors.Register(
		"LLM_OUTPUT_INVALID",
		errx.TypeBusiness,
		http.StatusUnprocessableEntity,
		"Language model output never validated",
	)
)
