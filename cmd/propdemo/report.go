package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/propcore/game"
	"github.com/plus3/propcore/memdb"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	TickRate   int
	Population int
	GCInterval int

	// Results
	Frames        uint64
	TotalTime     time.Duration
	FrameTime     Stats
	Spawned       int
	Kills         int
	LiveEntities  int
	Passes        []game.PassStats
	Storage       *memdb.Stats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
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

const reportTemplate = `
# Property Runtime Report

## Configuration
- **Simulated Duration:** {{.Duration}}
- **Tick Rate:** {{.TickRate}} Hz
- **Population:** {{.Population}}
- **GC Interval:** {{.GCInterval}} frames

## Simulation
- **Frames:** {{.Frames}}
- **Wall Time:** {{.TotalTime}}
- **Spawned:** {{.Spawned}}
- **Killed:** {{.Kills}}
- **Live Entities:** {{.LiveEntities}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}

## Passes
| Event | Registered | Executions | Hook Calls | Evictions | Avg | Max |
|-------|------------|------------|------------|-----------|-----|-----|
{{- range .Passes}}
| {{.Event}} | {{.Registered}} | {{.ExecutionCount}} | {{.HookCalls}} | {{.Evictions}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}
{{with .Storage}}
## Storage
- **Components:** {{.Components}}
- **Templates:** {{.Templates}}
{{- range .Worlds}}
- **World {{.Id}}:** {{.Entities}} entities, next id {{.NextId}}
{{- range .Tables}}
  - table 0x{{printf "%X" .Id}} [{{join .Components ", "}}]: {{.Entities}} live, {{.Rows}} rows, {{.FreeRows}} free
{{- end}}
{{- end}}
{{end}}
## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MiB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MiB (end)
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MiB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MiB (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} bytes
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- GC Pause Total: {{ns .MemStatsEnd.PauseTotalNs}}
`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"join": strings.Join,
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
