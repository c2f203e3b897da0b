package casts

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// threadPath is the provider endpoint listing the casts of a thread
const threadPath = "/v2/user-thread-casts"

// maxResponseBytes caps how much of a provider response is read
const maxResponseBytes = 4 << 20

// thread_schema.json only covers the envelope; cast_schema.json is applied
// per entry so a malformed entry that is never rendered cannot fail a request.
var (
	//go:embed thread_schema.json
	threadSchemaJSON []byte
	//go:embed cast_schema.json
	castSchemaJSON []byte

	threadSchema = mustLoadSchema("thread", threadSchemaJSON)
	castSchema   = mustLoadSchema("cast", castSchemaJSON)
)

func mustLoadSchema(name string, schemaBytes []byte) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaBytes))
	if err != nil {
		panic(fmt.Sprintf("casts: invalid %s schema: %v", name, err))
	}
	return schema
}

// errUnexpectedShape is wrapped in a FetchError when the response fails schema validation
var errUnexpectedShape = errors.New("response does not match the expected thread shape")

// httpClient implements Client against the provider's public HTTP API
type httpClient struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewHTTPClient creates a provider client from cfg.
// The config is assumed to be validated.
func NewHTTPClient(cfg Config) Client {
	return &httpClient{
		client:    &http.Client{Timeout: cfg.FetchTimeout},
		baseURL:   strings.TrimSuffix(cfg.APIBaseURL, "/"),
		userAgent: cfg.UserAgent,
	}
}

// ListThreadCasts performs one GET against the thread listing endpoint.
// There is no retry; every failure comes back as a *FetchError.
func (c *httpClient) ListThreadCasts(ctx context.Context, q ThreadQuery) ([]Cast, error) {
	params := url.Values{}
	params.Set("castHashPrefix", q.CastHashPrefix)
	params.Set("username", q.Username)
	params.Set("limit", strconv.Itoa(q.Limit))

	apiURL := c.baseURL + threadPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, newFetchError("create request", 0, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, newFetchError("request thread", 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Limit error body to 1KB to prevent unbounded reads
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("[CAST-FETCH] Provider returned %d for %s/%s: %s", resp.StatusCode, q.Username, q.CastHashPrefix, string(body))
		return nil, newFetchError("request thread", resp.StatusCode, fmt.Errorf("unexpected status code: %s", strings.TrimSpace(string(body))))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, newFetchError("read response", resp.StatusCode, err)
	}

	if err := validateAgainst(threadSchema, body); err != nil {
		return nil, newFetchError("validate response", resp.StatusCode, err)
	}

	var thread threadResponse
	if err := json.Unmarshal(body, &thread); err != nil {
		return nil, newFetchError("decode response", resp.StatusCode, err)
	}

	casts := make([]Cast, 0, len(thread.Result.Casts))
	for i, raw := range thread.Result.Casts {
		casts = append(casts, decodeThreadEntry(i, raw, resp.StatusCode))
	}
	return casts, nil
}

// decodeThreadEntry decodes one thread entry. An entry that does not match the
// cast schema keeps only its castType and carries the mismatch in shapeErr.
func decodeThreadEntry(index int, raw json.RawMessage, status int) Cast {
	if err := validateAgainst(castSchema, raw); err != nil {
		return Cast{
			CastType: entryCastType(raw),
			shapeErr: newFetchError("validate cast", status, fmt.Errorf("entry %d: %w", index, err)),
		}
	}

	var c Cast
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cast{
			CastType: entryCastType(raw),
			shapeErr: newFetchError("decode cast", status, fmt.Errorf("entry %d: %w", index, err)),
		}
	}
	return c
}

// entryCastType reads castType from an entry that failed full decoding
func entryCastType(raw json.RawMessage) string {
	var head struct {
		CastType string `json:"castType"`
	}
	_ = json.Unmarshal(raw, &head)
	return head.CastType
}

// validateAgainst checks doc against schema and joins every violation into one error
func validateAgainst(schema *gojsonschema.Schema, doc []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		// Not JSON at all
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if !result.Valid() {
		var errorMessages []string
		for _, desc := range result.Errors() {
			errorMessages = append(errorMessages, desc.String())
		}
		return fmt.Errorf("%w: %s", errUnexpectedShape, strings.Join(errorMessages, "; "))
	}

	return nil
}
