package ws

import "sync"

// Presence is the in-process directory of live connections per user. A user
// may hold several connections at once (two tabs, phone plus laptop); the
// user counts as present while at least one remains. Entries live only as
// long as the process and are rebuilt as clients reconnect.
type Presence struct {
	mu     sync.RWMutex
	byUser map[string]map[*Client]bool
}

// NewPresence creates an empty directory.
func NewPresence() *Presence {
	return &Presence{byUser: make(map[string]map[*Client]bool)}
}

// Register adds a connection for the user.
func (p *Presence) Register(client *Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.byUser[client.UserID]; !ok {
		p.byUser[client.UserID] = make(map[*Client]bool)
	}
	p.byUser[client.UserID][client] = true
}

// Unregister removes exactly the given connection. A disconnect from a stale
// tab never clears a newer connection of the same user.
func (p *Presence) Unregister(client *Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if clients, ok := p.byUser[client.UserID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(p.byUser, client.UserID)
		}
	}
}

// Lookup returns the user's live connections, or nil when absent.
func (p *Presence) Lookup(userID string) []*Client {
	p.mu.RLock()
	defer p.mu.RUnlock()
	clients, ok := p.byUser[userID]
	if !ok {
		return nil
	}
	out := make([]*Client, 0, len(clients))
	for c := range clients {
		out = append(out, c)
	}
	return out
}

// Online reports whether the user has at least one live connection.
func (p *Presence) Online(userID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.byUser[userID]) > 0
}

// Shutdown closes every connection and empties the directory.
func (p *Presence) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, clients := range p.byUser {
		for c := range clients {
			_ = c.Close()
		}
	}
	p.byUser = make(map[string]map[*Client]bool)
}
