package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"steam-extract/pkg/api"
	"steam-extract/pkg/cache"
	"steam-extract/pkg/config"
	"steam-extract/pkg/export"
	"steam-extract/pkg/pipeline"
	"steam-extract/pkg/scrapers/steamdb"
	"steam-extract/pkg/steamapi"
	"steam-extract/pkg/subject"

	scalargo "github.com/bdpiprava/scalar-go"
	"github.com/golang/groupcache/lru"
	"golang.org/x/time/rate"
)

var (
	scraperSemaphore = make(chan struct{}, 3)
	sessions         *registry
)

// maxSessions bounds how many apps keep a live client. Evicting the least
// recently used app only drops its supersede bookkeeping; its cache entry stays.
const maxSessions = 256

// registry holds one fetch client per app, so a new refresh for an app
// supersedes only that app's in-flight refresh.
type registry struct {
	mu       sync.Mutex
	cfg      *config.Config
	store    cache.Store
	limiter  *rate.Limiter
	pages    pipeline.PageSource
	sessions *lru.Cache
	// admin only invalidates; it never fetches, so it supersedes nothing
	admin *steamapi.Client
}

func newRegistry(cfg *config.Config, store cache.Store, pages pipeline.PageSource) *registry {
	limit := rate.Inf
	if cfg.APIRPS > 0 {
		limit = rate.Limit(cfg.APIRPS)
	}
	r := &registry{
		cfg:      cfg,
		store:    store,
		limiter:  rate.NewLimiter(limit, 1),
		pages:    pages,
		sessions: lru.New(maxSessions),
	}
	r.admin = r.newClient()
	return r
}

func (r *registry) newClient() *steamapi.Client {
	return steamapi.NewClient(steamapi.Options{
		Endpoint:  r.cfg.APIURL,
		Store:     r.store,
		Namespace: r.cfg.CacheNamespace,
		Limiter:   r.limiter,
		Timeout:   r.cfg.APITimeout,
	})
}

func (r *registry) service(appID string) *pipeline.Service {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.sessions.Get(appID); ok {
		return v.(*pipeline.Service)
	}
	svc := pipeline.NewService(r.newClient(), r.pages)
	r.sessions.Add(appID, svc)
	return svc
}

func (r *registry) invalidate(appID string) error {
	return r.admin.Invalidate(appID)
}

func (r *registry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions.Len()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := cache.New(cfg.CacheDBPath)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	defer store.Close()

	log.Printf("Cache initialized at %s (namespace %s)", cfg.CacheDBPath, cfg.CacheNamespace)

	sessions = newRegistry(cfg, store, pageSource(cfg))

	http.HandleFunc("/", rootHandler)

	ip := GetOutboundIP()
	if ip != nil {
		fmt.Printf("Local Network URL: http://%s%s\n", ip.String(), cfg.Addr)
	} else {
		fmt.Println("Could not determine local IP address.")
	}
	fmt.Printf("Access URL: http://localhost%s\n", cfg.Addr)
	fmt.Printf("API Docs: http://localhost%s/\n", cfg.Addr)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           nil,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Fatal(server.ListenAndServe())
}

func pageSource(cfg *config.Config) pipeline.PageSource {
	if !cfg.ScrapeEnabled {
		return nil
	}
	return steamdb.NewLoader(cfg.CatalogBaseURL, cfg.BrowserEnabled)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	// API requests go to the app handler
	if strings.HasPrefix(r.URL.Path, "/apps/") {
		appHandler(w, r)
		return
	}

	// Serve Scalar docs on root path
	html, err := scalargo.NewV2(
		scalargo.WithSpecDir("./"),
		scalargo.WithMetaDataOpts(
			scalargo.WithTitle("Steam Extract API"),
		),
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}

func GetOutboundIP() net.IP {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		addrs, _ := net.InterfaceAddrs()
		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
				if ipnet.IP.To4() != nil {
					return ipnet.IP
				}
			}
		}
		return nil
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)

	return localAddr.IP
}

const pathUsage = "Invalid path. Expected /apps/{id}, /apps/{id}/dlc, /apps/{id}/export/{format} or /apps/{id}/cache"

func appHandler(w http.ResponseWriter, r *http.Request) {
	// Path expected: /apps/{id}[/dlc | /export/{format} | /cache]
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	// parts[0] = "apps"
	// parts[1] = {id}
	// parts[2] = "dlc" | "export" | "cache"
	// parts[3] = {format}

	if len(parts) < 2 || len(parts) > 4 || parts[0] != "apps" {
		api.WriteBadRequest(w, pathUsage, r.URL.Path)
		return
	}

	appID, err := subject.Detect(parts[1])
	if err != nil {
		api.WriteBadRequest(w, fmt.Sprintf("Invalid app ID: %s. Must be numeric.", parts[1]), r.URL.Path)
		return
	}

	action := ""
	if len(parts) > 2 {
		action = parts[2]
	}

	switch {
	case action == "" && len(parts) == 2:
		if !requireMethod(w, r, http.MethodGet) {
			return
		}
		handleState(w, r, appID)
	case action == "dlc" && len(parts) == 3:
		if !requireMethod(w, r, http.MethodGet) {
			return
		}
		handleDlc(w, r, appID)
	case action == "export" && len(parts) == 4:
		if !requireMethod(w, r, http.MethodGet) {
			return
		}
		handleExport(w, r, appID, parts[3])
	case action == "cache" && len(parts) == 3:
		if !requireMethod(w, r, http.MethodDelete) {
			return
		}
		handleInvalidate(w, r, appID)
	default:
		api.WriteBadRequest(w, pathUsage, r.URL.Path)
	}
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		api.WriteMethodNotAllowed(w, "Method not allowed. Use "+method+".", r.URL.Path)
		return false
	}
	return true
}

func refresh(r *http.Request, appID string) (*pipeline.State, error) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	// Acquire semaphore to prevent system overload
	scraperSemaphore <- struct{}{}
	defer func() { <-scraperSemaphore }()

	return sessions.service(appID).Refresh(r.Context(), appID, force)
}

func handleState(w http.ResponseWriter, r *http.Request, appID string) {
	state, err := refresh(r, appID)
	if err != nil {
		api.WriteRemoteError(w, err, r.URL.Path)
		return
	}
	writeJSON(w, r, state)
}

func handleDlc(w http.ResponseWriter, r *http.Request, appID string) {
	state, err := refresh(r, appID)
	if err != nil {
		api.WriteRemoteError(w, err, r.URL.Path)
		return
	}
	writeJSON(w, r, state.Dlc)
}

func handleExport(w http.ResponseWriter, r *http.Request, appID, name string) {
	format, err := export.Lookup(name)
	if err != nil {
		api.WriteNotFound(w, fmt.Sprintf("Unknown export format %q. Available: %s", name, strings.Join(export.Names(), ", ")), r.URL.Path)
		return
	}

	state, err := refresh(r, appID)
	if err != nil {
		api.WriteRemoteError(w, err, r.URL.Path)
		return
	}
	doc, err := format.Render(state.ExportInput())
	if err != nil {
		api.WriteInternalServerError(w, err, r.URL.Path)
		return
	}

	w.Header().Set("Content-Type", format.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename))
	fmt.Fprint(w, doc)
}

func handleInvalidate(w http.ResponseWriter, r *http.Request, appID string) {
	if err := sessions.invalidate(appID); err != nil {
		api.WriteInternalServerError(w, errors.New("failed to clear cache entry"), r.URL.Path)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		api.WriteInternalServerError(w, fmt.Errorf("failed to encode response"), r.URL.Path)
	}
}
