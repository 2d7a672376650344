//go:build windows

package daemon

import (
	_ "embed"
	"syscall"
	"unsafe"

	"fyne.io/systray"
	"go.uber.org/zap"
)

var (
	user32      = syscall.NewLazyDLL("user32.dll")
	messageBoxW = user32.NewProc("MessageBoxW")
)

const (
	MB_OK              = 0x00000000
	MB_ICONINFORMATION = 0x00000040
)

//go:embed pulse.ico
var pulseIcon []byte

// TrayApp represents system tray application
type TrayApp struct {
	daemon  *Daemon
	logger  *zap.Logger
	quit    chan struct{}
	mStatus *systray.MenuItem
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
		quit:   make(chan struct{}),
	}, nil
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *TrayApp) onReady() {
	systray.SetIcon(pulseIcon)
	systray.SetTitle("HP")
	systray.SetTooltip("Hours Pulse")

	// Add menu items
	t.mStatus = systray.AddMenuItem("Loading…", "Current progress")
	systray.AddSeparator()
	mRefresh := systray.AddMenuItem("Refresh Now", "Recompute progress immediately")
	mDetails := systray.AddMenuItem("Details", "Show progress details")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit the application")

	// Start watch logic in background
	go func() {
		if err := t.daemon.run(); err != nil {
			t.logger.Error("Watch loop failed", zap.Error(err))
		}
	}()

	// Handle menu item clicks
	go func() {
		for {
			select {
			case <-mRefresh.ClickedCh:
				t.logger.Info("Refresh Now clicked from tray")
				go t.daemon.RefreshNow()
			case <-mDetails.ClickedCh:
				t.logger.Info("Details clicked from tray")
				showMessageBox("Hours Pulse", t.daemon.Summary())
			case <-mQuit.ClickedCh:
				t.logger.Info("Quit clicked from tray")
				t.daemon.Stop()
				systray.Quit()
				return
			case <-t.quit:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// Stop stops the system tray application
func (t *TrayApp) Stop() {
	select {
	case <-t.quit:
	default:
		close(t.quit)
	}
}

// SetStatus shows the badge text in the menu and the details in the tooltip
func (t *TrayApp) SetStatus(title, tooltip string) {
	if t.mStatus != nil {
		t.mStatus.SetTitle(title)
	}
	systray.SetTooltip(tooltip)
}

func showMessageBox(title, message string) {
	titlePtr, _ := syscall.UTF16PtrFromString(title)
	messagePtr, _ := syscall.UTF16PtrFromString(message)
	messageBoxW.Call(
		0,
		uintptr(unsafe.Pointer(messagePtr)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(MB_OK|MB_ICONINFORMATION),
	)
}
