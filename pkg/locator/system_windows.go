//go:build windows

package locator

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// NewSystem returns the Windows process and window enumerator.
func NewSystem() System { return winSystem{} }

type winSystem struct{}

func (winSystem) Processes() ([]Process, error) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("process snapshot: %w", err)
	}
	defer windows.CloseHandle(snap)

	var out []Process
	entry := windows.ProcessEntry32{Size: uint32(unsafe.Sizeof(windows.ProcessEntry32{}))}
	for err = windows.Process32First(snap, &entry); err == nil; err = windows.Process32Next(snap, &entry) {
		out = append(out, Process{
			PID:  int(entry.ProcessID),
			Name: windows.UTF16ToString(entry.ExeFile[:]),
		})
	}
	if err != windows.ERROR_NO_MORE_FILES {
		return nil, fmt.Errorf("walk processes: %w", err)
	}
	return out, nil
}

// Windows relies on EnumWindows visiting top-level windows in Z order.
func (winSystem) Windows() ([]Window, error) {
	var out []Window
	cb := windows.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		var pid uint32
		if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil {
			return 1
		}
		out = append(out, Window{
			Handle:  uintptr(hwnd),
			PID:     int(pid),
			Title:   windowText(hwnd),
			Visible: windows.IsWindowVisible(hwnd),
		})
		return 1
	})
	if err := windows.EnumWindows(cb, nil); err != nil {
		return nil, fmt.Errorf("enumerate windows: %w", err)
	}
	return out, nil
}

func windowText(hwnd windows.HWND) string {
	buf := make([]uint16, 512)
	n, err := windows.GetWindowText(hwnd, &buf[0], int32(len(buf)))
	if err != nil || n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}
