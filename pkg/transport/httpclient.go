package transport

import (
	"compress/flate"
	"compress/gzip"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/andybalholm/brotli"

	"github.com/richard-senior/leaguestats/internal/logger"
)

// CABundleEnv names an optional PEM bundle appended to the system roots, for corporate proxies
// that re-sign TLS traffic.
const CABundleEnv = "LEAGUESTATS_CA_BUNDLE"

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

var (
	clientMu   sync.Mutex
	httpClient *http.Client
)

// Document is a fetched and decoded HTTP body.
type Document struct {
	URL         string
	ContentType string
	Body        []byte
}

func extraRootCAs() *x509.CertPool {
	rootCAs, err := x509.SystemCertPool()
	if err != nil {
		logger.Warn("Failed to get system cert pool", err)
		rootCAs = x509.NewCertPool()
	}
	path := os.Getenv(CABundleEnv)
	if path == "" {
		return rootCAs
	}
	pem, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Proceeding without extra CA bundle", err)
		return rootCAs
	}
	if ok := rootCAs.AppendCertsFromPEM(pem); !ok {
		logger.Warn("Failed to append CA bundle", path)
	} else {
		logger.Info("Added CA bundle to root CAs", path)
	}
	return rootCAs
}

// GetHTTPClient returns the shared client, building it on first use.
func GetHTTPClient() *http.Client {
	clientMu.Lock()
	defer clientMu.Unlock()
	if httpClient != nil {
		return httpClient
	}
	httpClient = &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{RootCAs: extraRootCAs()},
			Proxy:           http.ProxyFromEnvironment,
		},
		Timeout: 30 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("stopped after 10 redirects")
			}
			return nil
		},
	}
	return httpClient
}

// SetHTTPClient replaces the shared client; nil restores the default on next use.
func SetHTTPClient(c *http.Client) {
	clientMu.Lock()
	defer clientMu.Unlock()
	httpClient = c
}

// Get fetches url and transparently decodes gzip, deflate and brotli bodies.
func Get(url string, accept string) (*Document, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")

	resp, err := GetHTTPClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request for %s returned status %d", url, resp.StatusCode)
	}

	reader, err := decodeBody(resp)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return &Document{URL: url, ContentType: resp.Header.Get("Content-Type"), Body: data}, nil
}

// Head returns the response headers for url without downloading the body.
func Head(url string) (http.Header, error) {
	req, err := http.NewRequest(http.MethodHead, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := GetHTTPClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HEAD %s returned status %d", url, resp.StatusCode)
	}
	return resp.Header, nil
}

// GetHtml fetches a web page.
func GetHtml(url string) ([]byte, error) {
	doc, err := Get(url, "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return nil, err
	}
	return doc.Body, nil
}

func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch enc := resp.Header.Get("Content-Encoding"); enc {
	case "gzip":
		r, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return r, nil
	case "deflate":
		return flate.NewReader(resp.Body), nil
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	case "", "identity":
		return io.NopCloser(resp.Body), nil
	default:
		logger.Warn("Unknown content encoding:", enc)
		return io.NopCloser(resp.Body), nil
	}
}
