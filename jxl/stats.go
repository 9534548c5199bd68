package jxl

import (
	"runtime"
	"time"
)

// EncodingStats describes one Encode call's size and resource footprint.
type EncodingStats struct {
	OriginalSize     int
	CompressedSize   int
	CompressionRatio float64
	EncodingTime     time.Duration
	PeakMemory       uint64
}

// memMeter samples runtime.MemStats around an encode to approximate peak
// heap growth attributable to it. This is a coarse process-wide signal,
// not a precise per-encode allocation count, since Go does not expose a
// live high-water mark the way a custom allocator would.
type memMeter struct {
	startTime  time.Time
	startAlloc uint64
	peak       uint64
}

func startMemMeter() *memMeter {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return &memMeter{startTime: time.Now(), startAlloc: ms.TotalAlloc, peak: ms.TotalAlloc}
}

func (m *memMeter) sample() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	if ms.TotalAlloc > m.peak {
		m.peak = ms.TotalAlloc
	}
}

func (m *memMeter) finish(originalSize, compressedSize int) EncodingStats {
	m.sample()
	delta := m.peak - m.startAlloc
	ratio := 0.0
	if compressedSize > 0 {
		ratio = float64(originalSize) / float64(compressedSize)
	}
	return EncodingStats{
		OriginalSize:     originalSize,
		CompressedSize:   compressedSize,
		CompressionRatio: ratio,
		EncodingTime:     time.Since(m.startTime),
		PeakMemory:       delta,
	}
}
