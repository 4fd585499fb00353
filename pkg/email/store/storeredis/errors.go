package storeredis

import (
	"net/http"

	"github.com/Abraxas-365/mailcraft/pkg/errx"
)

var storeRedisErrors = errx.NewRegistry("DRAFT_CACHE")

var (
	ErrMarshal = storeRedisErrors.Register(
		"MARSHAL", errx.TypeInternal, http.StatusInternalServerError,
		"Failed to encode or decode draft",
	)
	ErrCacheWrite = storeRedisErrors.Register(
		"WRITE", errx.TypeInternal, http.StatusInternalServerError,
		"Failed to write draft to cache",
	)
	ErrCacheRead = storeRedisErrors.Register(
		"READ", errx.TypeInternal, http.StatusInternalServerError,
		"Failed to read draft from cache",
	)
)
