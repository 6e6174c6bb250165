package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/skip2/go-qrcode"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/scores"
)

const (
	defaultHost    = "0.0.0.0"
	defaultPort    = "8080"
	defaultSSHPort = "2222"
	topScores      = 10
	qrSize         = 256
)

//go:embed index.html
var htmlPage string

// scoreView is the JSON shape of one high score.
type scoreView struct {
	Player     string `json:"player"`
	Score      int    `json:"score"`
	Level      int    `json:"level"`
	Seconds    int64  `json:"seconds"`
	FinishedAt string `json:"finished_at"`
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "web"})

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_PORT", defaultSSHPort)

	var store *scores.Store
	if path := config.GetEnv("ASTEROIDS_DB", ""); path != "" {
		var err error
		store, err = scores.Open(path)
		if err != nil {
			logger.Fatal("open score store", "err", err)
		}
		defer store.Close()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
		page = strings.ReplaceAll(page, "{{.SSHPort}}", sshPort)
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("/scores", scoresHandler(store, logger))
	mux.HandleFunc("/qr.png", qrHandler(connectCommand(sshHost, sshPort), logger))

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// connectCommand is the command players paste into a terminal.
func connectCommand(host, port string) string {
	if port == "22" {
		return "ssh " + host
	}
	return fmt.Sprintf("ssh -p %s %s", port, host)
}

// scoresHandler serves the top results as JSON. Without a store the list is empty.
func scoresHandler(store *scores.Store, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views := []scoreView{}
		if store != nil {
			top, err := store.Top(r.Context(), topScores)
			if err != nil {
				logger.Error("load scores", "err", err)
				http.Error(w, "scores unavailable", http.StatusInternalServerError)
				return
			}
			for _, e := range top {
				views = append(views, scoreView{
					Player:     e.Player,
					Score:      e.Score,
					Level:      e.Level,
					Seconds:    int64(e.Duration.Seconds()),
					FinishedAt: e.FinishedAt.UTC().Format("2006-01-02T15:04:05Z"),
				})
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(views); err != nil {
			logger.Warn("write scores", "err", err)
		}
	}
}

// qrHandler serves a QR code of the connect command. The image is encoded once.
func qrHandler(content string, logger *log.Logger) http.HandlerFunc {
	png, err := qrcode.Encode(content, qrcode.Medium, qrSize)
	if err != nil {
		logger.Error("encode qr code", "err", err)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if png == nil {
			http.Error(w, "qr code unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write(png)
	}
}
