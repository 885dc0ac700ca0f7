package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/ramune"
	"github.com/plus3/ramune/scene"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Boxes    int
	Width    int
	Height   int

	// Results
	TotalFrames    int64
	TotalTime      time.Duration
	FrameTime      Stats
	DrawCalls      int64
	Vertices       int64
	Submits        int64
	Entities       int
	Systems        []scene.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// add accumulates the graphics statistics of one presented frame.
func (r *Report) add(fs ramune.FrameStats) {
	r.DrawCalls += int64(fs.DrawCalls)
	r.Vertices += int64(fs.Vertices)
	r.Submits += int64(fs.Submits)
}

// FPS returns the average frame rate over the run.
func (r *Report) FPS() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(r.TotalFrames) / r.TotalTime.Seconds()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Ramune Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Boxes:** {{.Boxes}}
- **Screen:** {{.Width}}x{{.Height}}

## Performance Results
- **Total Frames:** {{.TotalFrames}}
- **Total Test Time:** {{.TotalTime}}
- **Average FPS:** {{printf "%.1f" .FPS}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}
- **Draw Calls:** {{.DrawCalls}} ({{per .DrawCalls .TotalFrames}} per frame)
- **Vertices:** {{.Vertices}} ({{per .Vertices .TotalFrames}} per frame)
- **Submits:** {{.Submits}}
- **Entities:** {{.Entities}}

## Systems
{{range .Systems}}- **{{.Name}}:** {{.Runs}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"per": func(total, frames int64) int64 {
			if frames == 0 {
				return 0
			}
			return total / frames
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
