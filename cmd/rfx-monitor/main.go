// Command rfx-monitor is a terminal live-sweep viewer for an RF Explorer
// spectrum analyzer.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	termbox "github.com/nsf/termbox-go"
	"github.com/spf13/pflag"

	"github.com/samuel/rfexplorer/rfe"
)

func main() {
	var (
		portName   = pflag.StringP("port", "p", "", "serial port to connect to (empty: probe all candidates)")
		baud       = pflag.IntP("baud", "b", 0, "baud rate (0: probe the usual rates)")
		configPath = pflag.StringP("config", "c", "rfx-monitor.yaml", "path to the persisted config file")
	)
	pflag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "rfx-monitor"})

	cfg, err := loadMonitorConfig(*configPath)
	if err != nil {
		logger.Fatal("loading config", "err", err)
	}
	if *portName != "" {
		cfg.Port = *portName
	}

	provider := rfe.NewPortProvider()

	var dev any
	switch {
	case cfg.Port != "" && *baud != 0:
		dev, err = rfe.ConnectWithNameAndBaudRate(provider, cfg.Port, *baud)
	case cfg.Port != "":
		for _, b := range cfg.BaudRates {
			dev, err = rfe.ConnectWithNameAndBaudRate(provider, cfg.Port, b)
			if err == nil {
				break
			}
		}
	default:
		dev, err = rfe.Connect(provider)
	}
	if err != nil {
		logger.Fatal("connecting", "err", err)
	}

	sa, ok := dev.(*rfe.SpectrumAnalyzer)
	if !ok {
		logger.Info("connected device is not a spectrum analyzer; nothing to plot")
		if sg, ok := dev.(*rfe.SignalGenerator); ok {
			sg.Close()
		}
		return
	}
	defer sa.Close()

	if err := sa.SetScreenDumpEnabled(false); err != nil {
		logger.Warn("disabling screen dump", "err", err)
	}
	if err := sa.SetMinMaxAmps(cfg.MinAmpDBm, cfg.MaxAmpDBm); err != nil {
		logger.Warn("setting amplitude range", "err", err)
	}
	if err := sa.SetStartStop(rfe.FromKHz(float64(cfg.StartKHz)), rfe.FromKHz(float64(cfg.StopKHz))); err != nil {
		logger.Warn("setting frequency range", "err", err)
	}
	if err := sa.RequestConfig(); err != nil {
		logger.Fatal("requesting config", "err", err)
	}

	if err := termbox.Init(); err != nil {
		logger.Fatal("initializing terminal", "err", err)
	}
	defer termbox.Close()
	termbox.HideCursor()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	quit := make(chan struct{})
	lcdEnabled := false
	go pollKeys(sa, &lcdEnabled, logger, quit)

	var maxHold []float64
	for {
		select {
		case <-sigCh:
			return
		case <-quit:
			return
		default:
		}

		sweep, err := sa.WaitForNextSweepWithTimeout(2 * time.Second)
		if err != nil {
			continue
		}
		if len(maxHold) != len(sweep.AmplitudesDBm) {
			maxHold = make([]float64, len(sweep.AmplitudesDBm))
			copy(maxHold, sweep.AmplitudesDBm)
		}
		drawSweep(sa.Config(), sweep, maxHold)
	}
}

func pollKeys(sa *rfe.SpectrumAnalyzer, lcdEnabled *bool, logger *log.Logger, quit chan struct{}) {
	for {
		ev := termbox.PollEvent()
		if ev.Type != termbox.EventKey {
			continue
		}
		switch ev.Key {
		case termbox.KeyEsc, termbox.KeyCtrlC:
			close(quit)
			return
		}
		switch ev.Ch {
		case 'c':
			if err := sa.RequestConfig(); err != nil {
				logger.Warn("requesting config", "err", err)
			}
		case 'h':
			if err := sa.Hold(); err != nil {
				logger.Warn("holding", "err", err)
			}
		case 'l':
			*lcdEnabled = !*lcdEnabled
			if err := sa.SetLcdEnabled(*lcdEnabled); err != nil {
				logger.Warn("setting lcd", "err", err)
			}
		case 'q':
			close(quit)
			return
		}
	}
}

// drawSweep renders one sweep as a scatter plot with a max-hold trace.
func drawSweep(cfg rfe.Config, sweep rfe.Sweep, maxHold []float64) {
	termbox.Clear(termbox.ColorWhite, termbox.ColorBlack)
	width, height := termbox.Size()
	top, bottom := 1, height-2
	left := 10
	right := left + len(sweep.AmplitudesDBm)
	if right > width {
		right = width
	}

	for x := left; x < right; x++ {
		termbox.SetCell(x, bottom, '-', termbox.ColorWhite, termbox.ColorBlack)
	}
	for y := top; y < bottom; y++ {
		termbox.SetCell(left-1, y, '|', termbox.ColorWhite, termbox.ColorBlack)
	}

	ampToY := func(amp float64) int {
		span := float64(cfg.MaxAmpDBm - cfg.MinAmpDBm)
		if span == 0 {
			span = 1
		}
		return top + int(float64(bottom-top)*(float64(cfg.MaxAmpDBm)-amp)/span+0.5)
	}

	for i, amp := range sweep.AmplitudesDBm {
		x := left + i
		if x >= right {
			break
		}
		if amp > maxHold[i] {
			maxHold[i] = amp
		}
		termbox.SetCell(x, ampToY(amp), '.', termbox.ColorWhite, termbox.ColorBlack)
		termbox.SetCell(x, ampToY(maxHold[i]), '#', termbox.ColorWhite, termbox.ColorBlack)
	}

	status := fmt.Sprintf("%s - %s  (c)onfig (h)old (l)cd (q)uit", cfg.Start, cfg.Stop)
	for i, r := range status {
		termbox.SetCell(i, 0, r, termbox.ColorWhite, termbox.ColorBlack)
	}
	termbox.Flush()
}
