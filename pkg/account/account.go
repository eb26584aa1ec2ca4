// Package account wraps the owner API endpoints used to list, inspect and command the vehicles
// that belong to a Tesla account.
//
// Read operations (listings and state snapshots) return errors to the caller. Vehicle commands
// never return errors: any failure, including transport failures, is reported as false.
package account

import (
	"context"
	_ "embed" // Used to embed version for use with user agent
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"runtime/debug"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/teslamotors/vehicle-assistant/internal/log"
	"github.com/teslamotors/vehicle-assistant/pkg/connector/inet"
)

var (
	//go:embed version.txt
	libraryVersion string
)

// ErrMissingToken indicates an Account was requested without an OAuth token.
var ErrMissingToken = errors.New("vehicle API access token is required")

// DefaultHost is the owner API server used when the token does not name a regional Fleet API
// server.
const DefaultHost = "owner-api.teslamotors.com"

func buildUserAgent(app string) string {
	library := strings.TrimSpace("tesla-assistant/" + libraryVersion)
	build, ok := debug.ReadBuildInfo()
	if !ok {
		return library
	}
	path := strings.Split(build.Path, "/")
	if len(path) == 0 {
		return library
	}

	if app == "" {
		app = path[len(path)-1]
		var version string
		if build.Main.Version != "(devel)" && build.Main.Version != "" {
			version = build.Main.Version
		} else {
			for _, info := range build.Settings {
				if info.Key == "vcs.revision" {
					if len(info.Value) > 8 {
						version = info.Value[0:8]
					}
					break
				}
			}
		}

		if version != "" {
			app = fmt.Sprintf("%s/%s", app, version)
		}
	}
	if app == "" {
		return library
	}
	return fmt.Sprintf("%s %s", app, library)
}

// Account allows interaction with the vehicles of a Tesla account.
type Account struct {
	// The default UserAgent is constructed from build information, but can be overridden.
	UserAgent string
	// Host is the API server domain. It is updated when the server redirects the account to a
	// different region.
	Host    string
	Subject string

	authHeader string
	scheme     string
	client     *http.Client
}

// Option customizes an Account.
type Option func(*Account)

// WithBaseURL sends requests to baseURL (e.g., "http://localhost:4443") instead of the server
// derived from the token.
func WithBaseURL(baseURL string) Option {
	return func(a *Account) {
		scheme, host, ok := strings.Cut(strings.TrimSuffix(baseURL, "/"), "://")
		if !ok {
			scheme, host = "https", scheme
		}
		a.scheme = scheme
		a.Host = host
	}
}

// WithHTTPClient replaces the HTTP client used for all requests.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Account) {
		a.client = client
	}
}

// We don't verify JWTs; the server does that. Claims are only used to pick an API server.
type oauthPayload struct {
	jwt.RegisteredClaims
	OUCode string `json:"ou_code"`
}

var domainRegEx = regexp.MustCompile(`^[A-Za-z0-9-.]+$`) // We're mostly interested in stopping paths; the http package handles the rest.

func (p *oauthPayload) domain() string {
	domain := DefaultHost
	ouCodeMatch := fmt.Sprintf(".%s.", strings.ToLower(p.OUCode))
	for _, u := range p.Audience {
		if strings.HasPrefix(u, "https://auth.tesla.") {
			continue
		}
		d, _ := strings.CutPrefix(u, "https://")
		d, _ = strings.CutSuffix(d, "/")
		if !domainRegEx.MatchString(d) {
			continue
		}

		if inet.ValidTeslaDomainSuffix(d) && strings.HasPrefix(d, "fleet-api.") {
			domain = d
			// Prefer domains that contain the ou_code (region)
			if strings.Contains(domain, ouCodeMatch) {
				return domain
			}
		}
	}
	return domain
}

// hostForToken returns the API server for oauthToken. Tokens that are not JWTs (such as legacy
// owner API tokens) always use DefaultHost.
func hostForToken(oauthToken string) (host, subject string) {
	var payload oauthPayload
	if _, _, err := jwt.NewParser().ParseUnverified(oauthToken, &payload); err != nil {
		log.Debug("Token is not a JWT (%s); using %s", err, DefaultHost)
		return DefaultHost, ""
	}
	return payload.domain(), payload.Subject
}

// New returns an [Account] authenticated with oauthToken.
//
// Optional userAgent can be passed in - otherwise it will be generated from build information.
func New(oauthToken, userAgent string, options ...Option) (*Account, error) {
	oauthToken = strings.TrimSpace(oauthToken)
	if oauthToken == "" {
		return nil, ErrMissingToken
	}
	host, subject := hostForToken(oauthToken)
	acct := &Account{
		UserAgent:  buildUserAgent(userAgent),
		Host:       host,
		Subject:    subject,
		authHeader: "Bearer " + oauthToken,
		scheme:     "https",
		client:     &http.Client{},
	}
	for _, option := range options {
		option(acct)
	}
	return acct, nil
}

func (a *Account) url(endpoint string) string {
	return fmt.Sprintf("%s://%s/%s", a.scheme, a.Host, strings.TrimPrefix(endpoint, "/"))
}

func (a *Account) send(ctx context.Context, method, endpoint string, payload interface{}) (*inet.Reply, error) {
	reply, err := inet.Request(ctx, a.client, method, a.UserAgent, a.authHeader, a.url(endpoint), payload)
	if err != nil {
		return nil, err
	}
	if domain, ok := inet.RedirectDomain(reply); ok {
		log.Debug("Received HTTP Status 421. Updating server URL to %s.", domain)
		a.Host = domain
	}
	return reply, nil
}

// Get sends an HTTP GET request to endpoint and returns the body of the response.
//
// The endpoint should contain only the path (e.g., "api/1/vehicles"); the domain is determined
// by a.Host. Replies with a status other than 200 result in an error.
func (a *Account) Get(ctx context.Context, endpoint string) ([]byte, error) {
	reply, err := a.send(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if err := inet.CheckStatus(reply); err != nil {
		return nil, err
	}
	return reply.Body, nil
}

// Post sends an HTTP POST request to endpoint.
//
// The payload may be nil, a []byte, or a value that supports JSON serialization. The reply is
// returned regardless of its status code.
func (a *Account) Post(ctx context.Context, endpoint string, payload interface{}) (*inet.Reply, error) {
	return a.send(ctx, http.MethodPost, endpoint, payload)
}
