package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/getlantern/systray"

	"github.com/loopdeck/loopdeck-agent/internal/session"
)

const refreshInterval = time.Second

type Tray struct {
	controller *session.Controller
	logger     *slog.Logger

	videoItem    *systray.MenuItem
	segmentsItem *systray.MenuItem
	selectedItem *systray.MenuItem
	loopItem     *systray.MenuItem

	mu sync.Mutex

	onQuit func()
}

type TrayConfig struct {
	Controller *session.Controller
	Logger     *slog.Logger
	OnQuit     func()
}

func NewTray(cfg TrayConfig) *Tray {
	return &Tray{
		controller: cfg.Controller,
		logger:     cfg.Logger,
		onQuit:     cfg.OnQuit,
	}
}

func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(iconBytes)
	systray.SetTitle("Loopdeck")
	systray.SetTooltip("Loopdeck Agent")

	t.videoItem = systray.AddMenuItem("No video loaded", "Current video")
	t.videoItem.Disable()

	t.segmentsItem = systray.AddMenuItem("Segments: 0", "Segments in this session")
	t.segmentsItem.Disable()

	t.selectedItem = systray.AddMenuItem("Selected: none", "Active loop segment")
	t.selectedItem.Disable()

	systray.AddSeparator()

	t.loopItem = systray.AddMenuItem("Enable Looping", "Toggle loop playback")
	nextItem := systray.AddMenuItem("Next Segment", "Select the next segment")
	prevItem := systray.AddMenuItem("Previous Segment", "Select the previous segment")

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Quit Loopdeck Agent")

	go func() {
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-t.loopItem.ClickedCh:
				t.toggleLooping()
			case <-nextItem.ClickedCh:
				t.controller.SelectNext(context.Background())
			case <-prevItem.ClickedCh:
				t.controller.SelectPrevious(context.Background())
			case <-ticker.C:
				t.refresh()
			case <-quitItem.ClickedCh:
				t.logger.Info("quit requested from tray")
				if t.onQuit != nil {
					t.onQuit()
				}
				systray.Quit()
				return
			}
		}
	}()

	t.logger.Info("system tray ready")
}

func (t *Tray) onExit() {
	t.logger.Info("system tray exiting")
}

func (t *Tray) toggleLooping() {
	enabled := t.controller.ToggleLooping(context.Background())

	t.mu.Lock()
	defer t.mu.Unlock()
	if enabled {
		t.loopItem.SetTitle("Disable Looping")
	} else {
		t.loopItem.SetTitle("Enable Looping")
	}
}

func (t *Tray) refresh() {
	snap := t.controller.Snapshot()

	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case snap.Title != "":
		t.videoItem.SetTitle(snap.Title)
	case snap.VideoID != "":
		t.videoItem.SetTitle(snap.VideoID)
	default:
		t.videoItem.SetTitle("No video loaded")
	}

	t.segmentsItem.SetTitle(fmt.Sprintf("Segments: %d", len(snap.Segments)))

	selected := "none"
	for _, s := range snap.Segments {
		if s.ID == snap.SelectedID {
			selected = s.Label
			break
		}
	}
	t.selectedItem.SetTitle("Selected: " + selected)

	if snap.Playback.Looping {
		t.loopItem.SetTitle("Disable Looping")
	} else {
		t.loopItem.SetTitle("Enable Looping")
	}
}

func (t *Tray) Quit() {
	systray.Quit()
}
