package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/morikuni/failure/v2"
	"github.com/motemen/go-loghttp"

	"github.com/ziadkadry99/packdocs/internal/logging"
)

// Loader performs the single fetch of a catalog document.
type Loader struct {
	Client *http.Client
}

// NewLoader returns a Loader whose HTTP requests are logged at debug level.
func NewLoader() *Loader {
	return &Loader{
		Client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &loghttp.Transport{
				Transport: http.DefaultTransport,
				LogRequest: func(req *http.Request) {
					logging.Debug("HTTP request", "method", req.Method, "url", req.URL.String())
				},
				LogResponse: func(resp *http.Response) {
					logging.Debug("HTTP response", "url", resp.Request.URL.String(), "status", resp.Status)
				},
			},
		},
	}
}

// Load fetches the document once with a default Loader.
func Load(ctx context.Context, source string) (*Catalog, error) {
	return NewLoader().Load(ctx, source)
}

// IsRemote reports whether source is an http(s) URL rather than a file path.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads source (a file path or http(s) URL) and decodes it. There is no retry;
// every failure carries LoadErrorMessage for display.
func (l *Loader) Load(ctx context.Context, source string) (*Catalog, error) {
	start := time.Now()
	defer logging.LogPerformance("catalog.Load", start)

	var (
		body io.ReadCloser
		err  error
	)
	if IsRemote(source) {
		body, err = l.fetch(ctx, source)
	} else {
		body, err = os.Open(source)
	}
	if err != nil {
		return nil, failure.Wrap(err, failure.WithCode(ErrFetch),
			failure.Message(LoadErrorMessage),
			failure.Context{"source": source})
	}
	defer body.Close()

	cat, err := Decode(body)
	if err != nil {
		return nil, failure.Wrap(err, failure.WithCode(ErrDecode),
			failure.Message(LoadErrorMessage),
			failure.Context{"source": source})
	}

	logging.Debug("catalog loaded", "source", source, "packs", len(cat.Packs), "servers", len(cat.MCPServers))
	return cat, nil
}

func (l *Loader) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// Decode parses a catalog document and fills optional collections with empty slices.
func Decode(r io.Reader) (*Catalog, error) {
	var cat Catalog
	if err := json.NewDecoder(r).Decode(&cat); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	cat.normalize()
	return &cat, nil
}

func (c *Catalog) normalize() {
	if c.Packs == nil {
		c.Packs = []Pack{}
	}
	if c.MCPServers == nil {
		c.MCPServers = []MCPServer{}
	}
	for i := range c.Packs {
		p := &c.Packs[i]
		if p.Skills == nil {
			p.Skills = []Skill{}
		}
		if p.Agents == nil {
			p.Agents = []Agent{}
		}
	}
	for i := range c.MCPServers {
		s := &c.MCPServers[i]
		if s.Args == nil {
			s.Args = []string{}
		}
		if s.Env == nil {
			s.Env = []string{}
		}
	}
}
