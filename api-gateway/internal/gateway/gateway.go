package gateway

import (
	"encoding/json"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	OrderSvcURL string
	StatsSvcURL string
	FrontendDir string
}

type Gateway struct {
	config Config
	client HTTPClient
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	return &Gateway{
		config: config,
		client: client,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"service":   "api-gateway",
		"order_svc": g.config.OrderSvcURL,
		"stats_svc": g.config.StatsSvcURL,
	})
}

// hopHeaders apply to a single connection and are not forwarded (RFC 9110, 7.6.1).
var hopHeaders = []string{
	"Connection",
	"Proxy-Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

func copyEndToEndHeaders(dst, src http.Header) {
	for k, v := range src {
		dst[k] = append([]string(nil), v...)
	}
	for _, field := range src.Values("Connection") {
		for _, name := range strings.Split(field, ",") {
			if name = strings.TrimSpace(name); name != "" {
				dst.Del(name)
			}
		}
	}
	for _, h := range hopHeaders {
		dst.Del(h)
	}
}

func setForwardedHeaders(req *http.Request, in *http.Request) {
	if ip, _, err := net.SplitHostPort(in.RemoteAddr); err == nil {
		if prior := in.Header.Get("X-Forwarded-For"); prior != "" {
			ip = prior + ", " + ip
		}
		req.Header.Set("X-Forwarded-For", ip)
	}
	req.Header.Set("X-Forwarded-Host", in.Host)
	proto := "http"
	if in.TLS != nil {
		proto = "https"
	}
	req.Header.Set("X-Forwarded-Proto", proto)
}

// ProxyRequest forwards r to the upstream at targetURL, keeping path and query.
func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	target := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	log.Printf("[gateway] %s %s -> %s", r.Method, r.URL.Path, target)

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		log.Printf("[gateway] ERROR: failed to create request: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	copyEndToEndHeaders(req.Header, r.Header)
	setForwardedHeaders(req, r)

	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("[gateway] ERROR: upstream %s unavailable: %v", targetURL, err)
		http.Error(w, "upstream service unavailable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	copyEndToEndHeaders(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("[gateway] ERROR: failed to copy response from %s: %v", targetURL, err)
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	log.Printf("[gateway] route %s %s", r.Method, path)

	// /api/menu/category/{category} is the category filter as a path.
	if strings.HasPrefix(path, "/api/menu/category/") && r.Method == http.MethodGet {
		category := strings.TrimPrefix(path, "/api/menu/category/")
		r.URL.Path = "/api/menu"
		r.URL.RawQuery = url.Values{"category": {category}}.Encode()
		log.Printf("[gateway] rewrote %s to /api/menu?%s", path, r.URL.RawQuery)
		g.ProxyRequest(w, r, g.config.OrderSvcURL)
		return
	}

	if strings.HasPrefix(path, "/api/stats/") {
		g.ProxyRequest(w, r, g.config.StatsSvcURL)
		return
	}

	if path == "/api/menu" || strings.HasPrefix(path, "/api/menu/") ||
		path == "/api/profiles" || strings.HasPrefix(path, "/api/profiles/") ||
		strings.HasPrefix(path, "/api/auth/") {
		g.ProxyRequest(w, r, g.config.OrderSvcURL)
		return
	}

	if strings.HasPrefix(path, "/api/") {
		log.Printf("[gateway] unmatched API route: %s", path)
		http.Error(w, "API route not found", http.StatusNotFound)
		return
	}

	http.ServeFile(w, r, filepath.Join(g.config.FrontendDir, "index.html"))
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(g.config.FrontendDir))))
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}
