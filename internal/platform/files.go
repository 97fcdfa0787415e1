package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// Command constants
const (
	OpenCommand     = "open"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
	WindowsCmdFlag  = "/c"
	AndroidActivity = "am"
)

// Android intent actions
const (
	IntentSend = "android.intent.action.SEND"
	IntentView = "android.intent.action.VIEW"
	ExtraText  = "android.intent.extra.TEXT"
)

// ErrShareUnsupported is returned when the OS has no share sheet
var ErrShareUnsupported = errors.New("sharing is not supported on this platform")

// commandRunner runs an external command; replaced in tests
var commandRunner = func(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// IsAndroid reports whether the process runs on Android
func IsAndroid() bool {
	return runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		filepath.Base(os.Args[0]) == "libdist.so" // Fyne Android apps run as libdist.so
}

// ShareText opens the system share sheet with text. Only Android has one;
// other platforms get ErrShareUnsupported and the caller falls back to the
// clipboard.
func ShareText(text string) error {
	if !IsAndroid() {
		return ErrShareUnsupported
	}

	if err := commandRunner(AndroidActivity, "start", "-a", IntentSend, "-t", "text/plain", "--es", ExtraText, text); err != nil {
		return fmt.Errorf("failed to share: %w", err)
	}
	return nil
}

// OpenURL opens link with the default system handler
func OpenURL(link string) error {
	if IsAndroid() {
		return commandRunner(AndroidActivity, "start", "-a", IntentView, "-d", link)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return commandRunner(OpenCommand, link)
	case OSWindows:
		return commandRunner(CmdCommand, WindowsCmdFlag, StartCommand, "", link)
	case OSLinux:
		return commandRunner(XDGOpenCommand, link)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}
