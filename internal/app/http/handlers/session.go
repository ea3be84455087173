package handlers

import "sync"

// sessionGuard remembers the last processed request id per session so a
// re-posted event returns the cached response instead of running the
// pipeline twice.
type sessionGuard struct {
	mu       sync.Mutex
	sessions map[string]sessionState
}

type sessionState struct {
	lastRequestID string
	lastResponse  QuoteEventResponse
}

func newSessionGuard() *sessionGuard {
	return &sessionGuard{sessions: make(map[string]sessionState)}
}

func (g *sessionGuard) cached(session, requestID string) (QuoteEventResponse, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	st, ok := g.sessions[session]
	if ok && st.lastRequestID == requestID {
		return st.lastResponse, true
	}
	return QuoteEventResponse{}, false
}

func (g *sessionGuard) remember(session, requestID string, resp QuoteEventResponse) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessions[session] = sessionState{lastRequestID: requestID, lastResponse: resp}
}
