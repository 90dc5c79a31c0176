package collect

import "sync"

// RoundRobinProxies cycles through a fixed proxy list. An empty list means
// direct connections.
type RoundRobinProxies struct {
	mu      sync.Mutex
	proxies []string
	next    int
}

// NewRoundRobinProxies builds a rotator over the given proxy URLs.
func NewRoundRobinProxies(proxies []string) *RoundRobinProxies {
	return &RoundRobinProxies{proxies: proxies}
}

// GetProxy returns the next proxy in rotation, or "" when none are
// configured.
func (p *RoundRobinProxies) GetProxy() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}
	proxy := p.proxies[p.next]
	p.next = (p.next + 1) % len(p.proxies)
	return proxy
}
