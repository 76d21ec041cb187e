// zappi_monitor polls the myenergi API for grid power, stores every
// reading, reports trailing-window statistics and pushes an alert when
// export power exceeds the configured threshold.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kstephens1/ZappiMon/pkg/config"
	"github.com/kstephens1/ZappiMon/pkg/griddb"
	"github.com/kstephens1/ZappiMon/pkg/monitor"
	"github.com/kstephens1/ZappiMon/pkg/myenergi"
	"github.com/kstephens1/ZappiMon/pkg/notify"
	"github.com/kstephens1/ZappiMon/pkg/stats"
	"github.com/kstephens1/ZappiMon/pkg/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// ws clients for broadcasting live readings
var (
	wsClients                   = make(map[*websocket.Conn]bool)
	wsClientsMutex sync.RWMutex = sync.RWMutex{}
)

func main() {
	// Load config
	if err := config.LoadZappiMonitorConfig(); err != nil {
		log.Fatalf("Failed to load zappi monitor config: %v", err)
	}
	cfg := config.ActiveZappiMonitorConfig

	// Initialize database
	store := griddb.Default()
	store.Migrate()

	client := myenergi.NewClient(cfg.DirectorURL, cfg.MyenergiUsername, cfg.MyenergiPassword)
	sender := notify.NewPushoverSender(cfg.PushoverAppToken, cfg.PushoverUserKey)

	window := time.Duration(cfg.StatsWindowHours) * time.Hour
	mon := monitor.New(client, store, sender, monitor.Config{
		ThresholdWatts: cfg.ExportThresholdWatts,
		StatsWindow:    window,
		OnReading:      BroadcastToWebSockets,
	})

	// Optional status API
	if cfg.ListenPort != 0 {
		go serveStatusAPI(cfg.ListenAddress, cfg.ListenPort, store, window)
	}

	ticker := time.NewTicker(time.Duration(cfg.PollIntervalSeconds) * time.Second)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("Starting ZappiMon: poll=%ds threshold=%dW window=%dh",
		cfg.PollIntervalSeconds, cfg.ExportThresholdWatts, cfg.StatsWindowHours)
	mon.Run(ticker.C, sigCh)
}

func serveStatusAPI(address string, port int, store *griddb.Store, window time.Duration) {
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response := map[string]string{
			"message": "ZappiMon Status API",
			"status":  "running",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})

	http.HandleFunc("/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		reading, err := store.LatestReading()
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{
				"error": err.Error(),
			})
			return
		}
		if reading == nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "No readings available yet",
			})
			return
		}
		json.NewEncoder(w).Encode(reading)
	})

	http.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		windowStats, err := stats.ComputeWindow(store, time.Now(), window)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{
				"error": err.Error(),
			})
			return
		}
		json.NewEncoder(w).Encode(windowStats)
	})

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket upgrade error: %v", err)
			return
		}

		AddWebSocketClient(conn)

		// Send current reading immediately if available
		if reading, err := store.LatestReading(); err == nil && reading != nil {
			if data, err := json.Marshal(reading); err == nil {
				conn.WriteMessage(websocket.TextMessage, data)
			}
		}

		// Keep connection alive
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				RemoveWebSocketClient(conn)
				break
			}
		}
	})

	listener := fmt.Sprintf("%s:%d", address, port)
	log.Printf("Starting ZappiMon status API on %s", listener)
	if err := http.ListenAndServe(listener, nil); err != nil {
		log.Printf("Status API stopped: %v", err)
	}
}

func BroadcastToWebSockets(reading types.GridReading) {
	wsClientsMutex.RLock()
	clients := make([]*websocket.Conn, 0, len(wsClients))
	for client := range wsClients {
		clients = append(clients, client)
	}
	wsClientsMutex.RUnlock()

	data, err := json.Marshal(reading)
	if err != nil {
		log.Printf("Error marshaling reading: %v", err)
		return
	}

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			RemoveWebSocketClient(client)
		}
	}
}

func AddWebSocketClient(conn *websocket.Conn) {
	wsClientsMutex.Lock()
	wsClients[conn] = true
	wsClientsMutex.Unlock()
}

func RemoveWebSocketClient(conn *websocket.Conn) {
	wsClientsMutex.Lock()
	delete(wsClients, conn)
	wsClientsMutex.Unlock()
	conn.Close()
}
