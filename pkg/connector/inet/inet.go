// Package inet sends requests to Tesla's owner API over HTTPS.
package inet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/teslamotors/vehicle-assistant/internal/log"
)

// MaxResponseLength caps the maximum byte-length of responses read from the server.
const MaxResponseLength = 100000

func ReadWithContext(ctx context.Context, r io.Reader, p []byte) ([]byte, error) {
	bytesRead := 0
	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		n, err := r.Read(p[bytesRead:])
		bytesRead += n
		if err == io.EOF {
			return p[:bytesRead], nil
		}
		if err != nil {
			return p[:bytesRead], err
		}
		if bytesRead == len(p) {
			return p[:bytesRead], nil
		}
	}
}

var (
	ErrVehicleNotAwake  = errors.New("vehicle unavailable: vehicle is offline or asleep")
	ErrResponseTooLarge = errors.New("response exceeds maximum length")
)

/*
The regular expression below extracts domains from HTTP bodies:

	{
	  "response": null,
	  "error": "user out of region, use base URL: https://fleet-api.prd.na.vn.cloud.tesla.com, see https://...",
	  "error_description": ""
	}
*/
var baseDomainRE = regexp.MustCompile(`use base URL: https://([-a-z0-9.]*)`)

type HttpError struct {
	Code    int
	Message string
}

func (e *HttpError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Code)
	}
	return e.Message
}

func (e *HttpError) Temporary() bool {
	return e.Code == http.StatusServiceUnavailable ||
		e.Code == http.StatusGatewayTimeout ||
		e.Code == http.StatusRequestTimeout ||
		e.Code == http.StatusMisdirectedRequest
}

// Reply holds the status and body of a server response.
type Reply struct {
	StatusCode int
	Body       []byte
}

// OK returns true if the server answered with HTTP 200.
func (r *Reply) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Request sends an HTTP request to url and reads the reply.
//
// The payload may be nil, a []byte sent verbatim, or any value that supports JSON serialization.
// A reply is returned for every status code; the error is only set if the request could not be
// sent or the body could not be read. Use [CheckStatus] to treat non-200 replies as errors.
func Request(ctx context.Context, client *http.Client, method, userAgent, authHeader, url string, payload interface{}) (*Reply, error) {
	var body io.Reader
	if payload != nil {
		encoded, ok := payload.([]byte)
		if !ok {
			var err error
			if encoded, err = json.Marshal(payload); err != nil {
				return nil, err
			}
		}
		log.Debug("Sending %s request to %s: %s", method, url, encoded)
		body = bytes.NewReader(encoded)
	} else {
		log.Debug("Sending %s request to %s", method, url)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error constructing request to %s: %w", url, err)
	}
	request.Header.Set("User-Agent", userAgent)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", authHeader)
	request.Header.Set("Accept", "*/*")

	result, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", url, err)
	}
	defer result.Body.Close()

	buffer := make([]byte, MaxResponseLength+1)
	buffer, err = ReadWithContext(ctx, result.Body, buffer)
	if err != nil {
		return nil, err
	}
	if len(buffer) == MaxResponseLength+1 {
		return nil, ErrResponseTooLarge
	}

	log.Debug("Server returned %d: %s: %s", result.StatusCode, http.StatusText(result.StatusCode), buffer)
	return &Reply{StatusCode: result.StatusCode, Body: buffer}, nil
}

// CheckStatus returns nil if reply has status 200 and a descriptive error otherwise.
func CheckStatus(reply *Reply) error {
	switch reply.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusServiceUnavailable:
		return ErrVehicleNotAwake
	case http.StatusRequestTimeout:
		if bytes.Contains(reply.Body, []byte("vehicle is offline")) {
			return ErrVehicleNotAwake
		}
	}
	return &HttpError{Code: reply.StatusCode, Message: string(reply.Body)}
}

// RedirectDomain extracts the replacement server domain from an HTTP 421 reply.
func RedirectDomain(reply *Reply) (string, bool) {
	if reply == nil || reply.StatusCode != http.StatusMisdirectedRequest {
		return "", false
	}
	matches := baseDomainRE.FindSubmatch(reply.Body)
	if len(matches) != 2 || !ValidTeslaDomainSuffix(string(matches[1])) {
		return "", false
	}
	return string(matches[1]), true
}

func ValidTeslaDomainSuffix(domain string) bool {
	return strings.HasSuffix(domain, ".tesla.com") || strings.HasSuffix(domain, ".tesla.cn") || strings.HasSuffix(domain, ".teslamotors.com")
}
