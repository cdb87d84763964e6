package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"studio/shared"
	"studio/shared/constant"
	"studio/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
)

func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(writer, request)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := a.config.App.RateLimiter.WindowSeconds

			userAgent := a.getUA(request)
			clientIP := a.getClientIP(request)
			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, clientIP, userAgent)

			count, err := a.cache.Increment(request.Context(), cacheKey, windowSecs)
			if err != nil {
				// If cache fails, allow the request to continue
				log.Warn().Err(err).Msg("rate limiter unavailable")
				next.ServeHTTP(writer, request)

				return
			}

			if count > int64(maxReqs) {
				response.WithRequestLimitExceeded(writer)

				return
			}

			writer.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			writer.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(maxReqs)-count), 10))
			writer.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			next.ServeHTTP(writer, request)
		})
	}
}

func (a *appMiddleware) getUA(request *http.Request) string {
	ua := request.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

func (a *appMiddleware) getClientIP(request *http.Request) string {
	// Check for X-Forwarded-For header first (most common proxy header)
	if xff := request.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		if commaIdx := strings.Index(xff, ","); commaIdx > 0 {
			return strings.TrimSpace(xff[:commaIdx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := request.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return request.RemoteAddr
}
