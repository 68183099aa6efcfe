package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/config"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/status"
)

func main() {
	modePtr := flag.String("mode", "once", "Run mode: once, scheduled or serve")
	configPtr := flag.String("config", "", "Path to the pipeline config file")
	flag.Parse()

	cfg, err := config.Load(*configPtr)
	if err != nil {
		log.Fatalf("Loading configuration: %v", err)
	}

	log.Println("Starting cleansing pipeline in mode:", *modePtr)

	switch *modePtr {
	case "once":
		runOnce(cfg)
	case "scheduled":
		runScheduled(cfg, false)
	case "serve":
		runScheduled(cfg, true)
	default:
		log.Println("Unknown run mode:", *modePtr)
		log.Println("Available modes: once, scheduled, serve")
		os.Exit(1)
	}

	log.Println("Cleansing pipeline finished")
}

// runOnce executes one batch and exits.
func runOnce(cfg *config.PipelineConfig) {
	runner, err := NewPipelineRunner(context.Background(), cfg, nil)
	if err != nil {
		log.Fatalf("Creating pipeline runner: %v", err)
	}
	defer runner.Close()

	if err := runner.Execute(); err != nil {
		log.Fatalf("Executing pipeline: %v", err)
	}
}

// runScheduled runs the pipeline on the configured interval until a
// termination signal arrives. With serve set, the status server runs
// alongside the scheduler.
func runScheduled(cfg *config.PipelineConfig, serve bool) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signalCh
		log.Println("Termination signal received, stopping pipeline runner...")
		cancel()
	}()

	runner, err := NewPipelineRunner(ctx, cfg, nil)
	if err != nil {
		log.Fatalf("Creating pipeline runner: %v", err)
	}
	defer runner.Close()

	if serve {
		hub := status.NewHub(runner.Logger())
		go hub.Run()
		runner.SetHub(hub)

		server := status.NewServer(hub, runner.RunLogs(), runner.Logger())
		go func() {
			if err := server.Listen(cfg.StatusAddr); err != nil {
				log.Printf("Status server stopped: %v", err)
			}
		}()
	}

	runner.StartScheduler(ctx)
}
