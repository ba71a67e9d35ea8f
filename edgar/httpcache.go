package edgar

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"
)

// diskCache implements a simple disk cache for HTTP responses. EDGAR rate
// limits aggressively (10 requests per second, with bans for abusers), so
// every successful response is replayed from disk for the rest of the day.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// The key includes the day, so the local cache expires daily.
	key := fmt.Sprintf("%s %s %s", time.Now().Format("2006-01-02"), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk.
func (c *diskCache) put(key string, resp *http.Response) error {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}

// daily returns a client that caches all responses until the end of the day.
func daily() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}
