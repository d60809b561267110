// Package report formats the outcome of a timed render run as JSON or as
// human-readable per-worker statistics.
package report

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/workdist"
)

// Report is the machine-readable summary of a render run.
type Report struct {
	Command        string  `json:"command"`
	Size           int     `json:"size"`
	Images         int     `json:"images"`
	Workers        int     `json:"workers"`
	Model          string  `json:"model"`
	ModelCode      int     `json:"model_code"`
	BlockSize      int     `json:"block_size"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Interrupted    bool    `json:"interrupted,omitempty"`
	Passes         []Pass  `json:"passes"`
}

// Pass summarizes one render pass.
type Pass struct {
	Image          int      `json:"image"`
	Units          []int    `json:"units"`
	TotalUnits     int      `json:"total_units"`
	Failed         int      `json:"failed"`
	Errors         []string `json:"errors,omitempty"`
	ElapsedSeconds float64  `json:"elapsed_seconds"`
}

// New builds a report for job from its render result.
func New(command string, job workdist.Job, res workdist.RenderResult) Report {
	r := Report{
		Command:        command,
		Size:           job.Size,
		Images:         job.Images,
		Workers:        job.Workers,
		Model:          job.Model.String(),
		ModelCode:      int(job.Model),
		ElapsedSeconds: res.Elapsed.Seconds(),
		Passes:         make([]Pass, 0, len(res.Passes)),
	}
	if job.Workers == 1 {
		r.Model = "N/A"
	}

	for i, st := range res.Passes {
		r.BlockSize = st.BlockSize
		p := Pass{
			Image:          i + 1,
			Units:          st.Units,
			TotalUnits:     st.TotalUnits(),
			Failed:         st.Failed,
			ElapsedSeconds: st.Elapsed.Seconds(),
		}
		for _, err := range st.Errors {
			p.Errors = append(p.Errors, err.Error())
		}
		r.Passes = append(r.Passes, p)
	}
	return r
}

// WriteJSON writes r as indented JSON followed by a newline.
func WriteJSON(w io.Writer, r Report) error {
	enc := sonic.ConfigDefault.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}

// WriteStats writes a per-pass, per-worker unit table with grouped numbers.
func WriteStats(w io.Writer, r Report) error {
	p := message.NewPrinter(language.English)

	if _, err := p.Fprintf(w, "%s: %d images of %dx%d, %d workers, model %s\n",
		r.Command, r.Images, r.Size, r.Size, r.Workers, r.Model); err != nil {
		return err
	}

	for _, pass := range r.Passes {
		p.Fprintf(w, "  image %d: %d units in %.6f seconds", pass.Image, pass.TotalUnits, pass.ElapsedSeconds)
		if pass.Failed > 0 {
			p.Fprintf(w, " (%d failed)", pass.Failed)
		}
		p.Fprintln(w)

		if len(pass.Units) < 2 {
			continue
		}
		for i, n := range pass.Units {
			p.Fprintf(w, "    worker %2d: %d\n", i, n)
		}
	}

	_, err := p.Fprintf(w, "  total: %.6f seconds\n", r.ElapsedSeconds)
	return err
}
