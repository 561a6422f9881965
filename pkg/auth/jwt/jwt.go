// Package jwt provides a JWT authenticator validating HS256 bearer
// tokens against a shared secret, with optional issuer and audience
// checks.
package jwt

import (
	"fmt"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/mfadel/weblet/pkg/auth"
	"github.com/mfadel/weblet/pkg/wire"
)

// Config holds the JWT authenticator configuration.
type Config struct {
	// Secret is the HMAC signing secret (required).
	Secret string

	// Issuer is the expected iss claim. If empty, issuer is not validated.
	Issuer string

	// Audience is the expected aud claim. If empty, audience is not
	// validated.
	Audience string

	// SubjectClaim is the claim used as the identity subject.
	// Default: "sub".
	SubjectClaim string
}

// Authenticator validates HS256 JWT bearer tokens.
type Authenticator struct {
	config Config
}

// New creates a JWT authenticator. Returns an error when no secret is
// configured, since an empty HMAC key would accept trivially forged
// tokens.
func New(cfg Config) (*Authenticator, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt: secret is required")
	}
	if cfg.SubjectClaim == "" {
		cfg.SubjectClaim = "sub"
	}
	return &Authenticator{config: cfg}, nil
}

// Authenticate extracts a bearer token, validates signature and
// registered claims, and returns an identity built from the subject
// claim.
//
// Decision outcomes:
//   - Abstain: no Authorization header or not a Bearer scheme
//   - No: bearer token present but invalid (expired, wrong issuer, bad
//     signature, missing subject)
//   - Yes: valid token with a populated Identity
func (a *Authenticator) Authenticate(req *wire.Request) auth.Result {
	token, ok := auth.BearerToken(req)
	if !ok {
		return auth.Result{Decision: auth.Abstain}
	}
	if token == "" {
		return auth.Result{Decision: auth.No, Err: auth.ErrUnauthenticated}
	}

	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{"HS256"}),
	}
	if a.config.Issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(a.config.Issuer))
	}
	if a.config.Audience != "" {
		opts = append(opts, jwtlib.WithAudience(a.config.Audience))
	}

	claims := jwtlib.MapClaims{}
	_, err := jwtlib.ParseWithClaims(token, claims, func(t *jwtlib.Token) (interface{}, error) {
		return []byte(a.config.Secret), nil
	}, opts...)
	if err != nil {
		return auth.Result{Decision: auth.No, Err: fmt.Errorf("%w: %v", auth.ErrUnauthenticated, err)}
	}

	subject, _ := claims[a.config.SubjectClaim].(string)
	if subject == "" {
		return auth.Result{Decision: auth.No, Err: fmt.Errorf("%w: missing %q claim", auth.ErrUnauthenticated, a.config.SubjectClaim)}
	}

	return auth.Result{
		Decision: auth.Yes,
		Identity: &auth.Identity{Subject: subject},
	}
}
