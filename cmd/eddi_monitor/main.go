// eddi_monitor watches the Eddi hot-water diverter's tank temperature
// and sends a rate-limited alert when the water runs cold.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kstephens1/ZappiMon/pkg/config"
	"github.com/kstephens1/ZappiMon/pkg/myenergi"
	"github.com/kstephens1/ZappiMon/pkg/notify"
)

const lowTempTitle = "EddiMon - Low water temperature"

func main() {
	// Load config
	if err := config.LoadEddiMonitorConfig(); err != nil {
		log.Fatalf("Failed to load eddi monitor config: %v", err)
	}
	cfg := config.ActiveEddiMonitorConfig

	client := myenergi.NewClient(cfg.DirectorURL, cfg.MyenergiUsername, cfg.MyenergiPassword)

	// Do not send the low-temp alert more than once per cooldown
	sender := notify.NewRateLimited(
		notify.NewPushoverSender(cfg.PushoverAppToken, cfg.PushoverUserKey),
		map[string]time.Duration{
			lowTempTitle: time.Duration(cfg.NotifyCooldownSeconds) * time.Second,
		},
	)

	ticker := time.NewTicker(time.Duration(cfg.PollIntervalSeconds) * time.Second)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("Starting EddiMon: poll=%ds low_temp=%d", cfg.PollIntervalSeconds, cfg.LowTempCelsius)
	checkTemperature(client, sender, cfg.LowTempCelsius)
	for {
		select {
		case s := <-sigCh:
			log.Printf("received %v, shutting down", s)
			return
		case <-ticker.C:
			checkTemperature(client, sender, cfg.LowTempCelsius)
		}
	}
}

func checkTemperature(client *myenergi.Client, sender notify.Sender, lowTemp int) {
	temperature, err := client.TankTemperature()
	if err != nil {
		log.Printf("Failed to retrieve Eddi temperature: %v", err)
		return
	}

	fmt.Printf("%s Eddi Temperature: %d\n", time.Now().Format("2006-01-02 15:04:05"), temperature)

	if temperature <= lowTemp {
		message := fmt.Sprintf("Low water temp detected %d", temperature)
		if err := sender.Send(message, lowTempTitle, 0); err != nil {
			log.Printf("Error sending notification: %v", err)
		}
	}
}
