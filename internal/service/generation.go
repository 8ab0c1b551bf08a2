package service

import (
	"context"
	"fmt"
	"time"

	"brightsprout_backend/internal/llm"
	"brightsprout_backend/internal/util"
)

// invokeModel runs one bounded model call. The misconfiguration guard
// fires before any network activity; a timeout is indistinguishable from
// any other transient generation failure.
func invokeModel(ctx context.Context, provider llm.Provider, timeout time.Duration, prompt string) (string, error) {
	if provider == nil {
		return "", fmt.Errorf("%w: Gemini API key not configured", util.ErrMisconfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := provider.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrGenerationUnavailable, err)
	}
	return raw, nil
}
