package models

import (
	"context"
	"sync"
	"time"
)

// MediaURLGenerator interface for generating signed URLs
type MediaURLGenerator interface {
	GetSignedURL(ctx context.Context, path string, duration time.Duration) (string, error)
}

var (
	urlGenerator MediaURLGenerator
	registryMu   sync.RWMutex
)

// RegisterMediaURLGenerator sets the URL generator for media assets
func RegisterMediaURLGenerator(generator MediaURLGenerator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	urlGenerator = generator
}
