package auth

import (
	"testing"

	"github.com/mfadel/weblet/pkg/wire"
)

// staticAuthenticator always returns a fixed result.
type staticAuthenticator struct {
	result Result
}

func (s staticAuthenticator) Authenticate(*wire.Request) Result {
	return s.result
}

func request(headers map[string]string) *wire.Request {
	h := make(wire.Header)
	for k, v := range headers {
		h.Set(k, v)
	}
	return &wire.Request{Method: "GET", Path: "/x", Header: h}
}

func TestChainStopsOnFirstYes(t *testing.T) {
	chain := &Chain{
		Authenticators: []Authenticator{
			staticAuthenticator{Result{Decision: Abstain}},
			staticAuthenticator{Result{Decision: Yes, Identity: &Identity{Subject: "alice"}}},
			staticAuthenticator{Result{Decision: No, Err: ErrUnauthenticated}},
		},
	}

	result := chain.Authenticate(request(nil))
	if result.Decision != Yes {
		t.Fatalf("Decision = %v, want Yes", result.Decision)
	}
	if result.Identity.Subject != "alice" {
		t.Errorf("Subject = %q, want \"alice\"", result.Identity.Subject)
	}
}

func TestChainStopsOnFirstNo(t *testing.T) {
	chain := &Chain{
		Authenticators: []Authenticator{
			staticAuthenticator{Result{Decision: No, Err: ErrUnauthenticated}},
			staticAuthenticator{Result{Decision: Yes, Identity: &Identity{Subject: "alice"}}},
		},
	}

	if result := chain.Authenticate(request(nil)); result.Decision != No {
		t.Errorf("Decision = %v, want No", result.Decision)
	}
}

func TestChainAllAbstainUsesDefault(t *testing.T) {
	abstain := staticAuthenticator{Result{Decision: Abstain}}

	closed := &Chain{Authenticators: []Authenticator{abstain}, DefaultDecision: No}
	if result := closed.Authenticate(request(nil)); result.Decision != No {
		t.Errorf("closed chain Decision = %v, want No", result.Decision)
	}

	open := &Chain{Authenticators: []Authenticator{abstain}, DefaultDecision: Yes}
	result := open.Authenticate(request(nil))
	if result.Decision != Yes {
		t.Fatalf("open chain Decision = %v, want Yes", result.Decision)
	}
	if result.Identity == nil || result.Identity.Subject == "" {
		t.Error("open chain returned Yes without an identity")
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name      string
		headers   map[string]string
		wantToken string
		wantOK    bool
	}{
		{"no header", nil, "", false},
		{"basic scheme", map[string]string{"Authorization": "Basic abc"}, "", false},
		{"bearer", map[string]string{"Authorization": "Bearer tok-123"}, "tok-123", true},
		{"empty bearer", map[string]string{"Authorization": "Bearer "}, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, ok := BearerToken(request(tc.headers))
			if token != tc.wantToken || ok != tc.wantOK {
				t.Errorf("BearerToken() = (%q, %v), want (%q, %v)", token, ok, tc.wantToken, tc.wantOK)
			}
		})
	}
}

func TestMiddlewareHaltsOnRejection(t *testing.T) {
	chain := &Chain{DefaultDecision: No}
	mw := Middleware(chain, nil)

	v := mw(request(nil))
	if !v.Halted() {
		t.Fatal("middleware continued for a rejected request")
	}
	if v.Response().Status != 401 {
		t.Errorf("halt status = %d, want 401", v.Response().Status)
	}
}

func TestMiddlewareContinuesOnSuccess(t *testing.T) {
	chain := &Chain{
		Authenticators: []Authenticator{
			staticAuthenticator{Result{Decision: Yes, Identity: &Identity{Subject: "alice"}}},
		},
	}
	mw := Middleware(chain, nil)

	req := request(nil)
	v := mw(req)
	if v.Halted() {
		t.Fatal("middleware halted an authenticated request")
	}
	if v.Request() != req {
		t.Error("middleware did not pass the request through")
	}
}

func TestMiddlewareBypassSkipsAuth(t *testing.T) {
	chain := &Chain{DefaultDecision: No} // rejects everything
	mw := Middleware(chain, nil, "/metrics")

	req := request(nil)
	req.Path = "/metrics"
	if v := mw(req); v.Halted() {
		t.Error("bypassed path was rejected")
	}

	req2 := request(nil)
	if v := mw(req2); !v.Halted() {
		t.Error("non-bypassed path was accepted")
	}
}

func TestMiddlewareRejectsEmptySubject(t *testing.T) {
	chain := &Chain{
		Authenticators: []Authenticator{
			staticAuthenticator{Result{Decision: Yes, Identity: &Identity{}}},
		},
	}
	mw := Middleware(chain, nil)

	if v := mw(request(nil)); !v.Halted() {
		t.Error("identity with empty subject was accepted")
	}
}
