// Package sysinfo describes the host an inspection runs on.
package sysinfo

import (
	"os"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemInfo holds the host details recorded with each inspection.
type SystemInfo struct {
	Hostname        string `msgpack:"hostname"`
	OSName          string `msgpack:"os_name"`
	Kernel          string `msgpack:"kernel"`
	Arch            string `msgpack:"arch"`
	MemoryTotal     uint64 `msgpack:"memory_total"`
	MemoryAvailable uint64 `msgpack:"memory_available"`
}

// Collect gathers local host information. Memory figures are zero when the
// platform does not report them.
func Collect() (*SystemInfo, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, err
	}

	osName, kernel := getOSInfo()
	info := &SystemInfo{
		Hostname: hostname,
		OSName:   osName,
		Kernel:   kernel,
		Arch:     runtime.GOARCH,
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemoryTotal = vm.Total
		info.MemoryAvailable = vm.Available
	}

	return info, nil
}

// getOSInfo retrieves OS name and kernel version.
func getOSInfo() (string, string) {
	osName := runtime.GOOS
	var kernel string

	if hostInfo, err := host.Info(); err == nil {
		osName = hostInfo.Platform
		if hostInfo.PlatformVersion != "" {
			osName += " " + hostInfo.PlatformVersion
		}
		kernel = hostInfo.KernelVersion
	}

	if runtime.GOOS == "linux" {
		if pretty := readOSReleasePrettyName("/etc/os-release"); pretty != "" {
			osName = pretty
		}
	}

	return osName, kernel
}

// readOSReleasePrettyName returns PRETTY_NAME from an os-release file.
func readOSReleasePrettyName(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		if val, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
			return strings.Trim(val, "\"")
		}
	}
	return ""
}
