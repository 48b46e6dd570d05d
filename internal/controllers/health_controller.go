package controllers

import (
	"comicbot/internal/follows"
	"comicbot/internal/selector"
	"comicbot/internal/structures"
	"fmt"
	json "github.com/goccy/go-json"
	"net/http"
	"time"
)

type HealthController struct {
	store     follows.StoreInterface
	selector  selector.SelectorInterface
	appName   string
	startTime time.Time
}

type healthResponse struct {
	Status         string  `json:"status"`
	Uptime         string  `json:"uptime"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	FollowedSeries int     `json:"followed_series"`
	OpenSessions   int     `json:"open_sessions"`
}

// Alive answers uptime pings on the root path.
func (hc *HealthController) Alive(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "%s is alive!", hc.appName)
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:         "ok",
		Uptime:         formatDuration(uptime),
		UptimeSeconds:  uptime.Seconds(),
		FollowedSeries: hc.store.Count(),
		OpenSessions:   hc.selector.OpenSessions(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(store follows.StoreInterface, sel selector.SelectorInterface, conf *structures.Config) *HealthController {
	return &HealthController{
		store:     store,
		selector:  sel,
		appName:   conf.AppName,
		startTime: time.Now(),
	}
}
