package api

import "sync"

// TokenHolder is a mutable TokenSource shared between the session store
// (which writes tokens on login/logout) and the Client (which reads them on
// every request). Safe for concurrent use.
type TokenHolder struct {
	mu    sync.RWMutex
	token string
}

func (h *TokenHolder) Set(token string) {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
}

func (h *TokenHolder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}
