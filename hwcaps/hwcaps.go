// Package hwcaps probes runtime hardware capabilities and selects the best
// available SIMD dispatch backend for the kernel layer.
package hwcaps

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// CPUArchitecture identifies the running process's instruction-set family.
type CPUArchitecture int

const (
	ArchUnknown CPUArchitecture = iota
	ArchX86_64
	ArchARM64
)

func (a CPUArchitecture) String() string {
	switch a {
	case ArchX86_64:
		return "x86_64"
	case ArchARM64:
		return "arm64"
	default:
		return "unknown"
	}
}

// CurrentArchitecture returns the architecture of the running process. It
// never returns ArchUnknown on amd64 or arm64 builds.
func CurrentArchitecture() CPUArchitecture {
	switch runtime.GOARCH {
	case "amd64":
		return ArchX86_64
	case "arm64":
		return ArchARM64
	default:
		return ArchUnknown
	}
}

// HardwareCapabilities summarizes what the kernel dispatch layer needs to
// know about the host to pick a backend.
type HardwareCapabilities struct {
	CoreCount     int
	Architecture  CPUArchitecture
	HasAVX2       bool
	HasSSE2       bool
	HasNEON       bool
	HasAccelerate bool
}

var detected = detect()

// Detect returns the process-wide, one-time cached hardware capability
// snapshot. The underlying probe runs once at package init; callers
// observe a read-only, stable value thereafter.
func Detect() HardwareCapabilities {
	return detected
}

func detect() HardwareCapabilities {
	arch := CurrentArchitecture()
	caps := HardwareCapabilities{
		CoreCount:    runtime.NumCPU(),
		Architecture: arch,
	}
	if caps.CoreCount <= 0 {
		caps.CoreCount = 1
	}
	switch arch {
	case ArchX86_64:
		caps.HasAVX2 = cpuid.CPU.Supports(cpuid.AVX2)
		caps.HasSSE2 = cpuid.CPU.Supports(cpuid.SSE2)
	case ArchARM64:
		caps.HasNEON = true // all arm64 targets have NEON
	}
	caps.HasAccelerate = arch == ArchARM64 && runtime.GOOS == "darwin"
	return caps
}
