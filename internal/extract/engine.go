package extract

import (
	"log/slog"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/dictionary"
	"github.com/joseph-ayodele/certificate-extractor/internal/ocr"
	"github.com/joseph-ayodele/certificate-extractor/internal/record"
)

// Engine runs the whole extraction for one text. It is safe for concurrent use;
// nothing it holds is written after construction.
type Engine struct {
	dict   *dictionary.Dictionary
	router *Router
	log    *slog.Logger
}

func NewEngine(d *dictionary.Dictionary, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{dict: d, router: NewRouter(d, logger), log: logger}
}

// Extract never fails. Text with no recognizable content yields a record with
// every key of t at its default.
func (e *Engine) Extract(text string, t constants.TemplateType) *record.Record {
	lines := ocr.Normalize(text)
	if t == constants.TemplateAuto {
		t = ocr.DetectTemplate(lines)
		e.log.Debug("extract.detected", "template", t)
	}
	rec := record.New(t)
	ex := e.router.For(t)
	ex.Extract(lines, rec)
	PostProcess(rec)
	for _, n := range rec.Notes {
		e.log.Debug("extract.note", "template", t, "note", n)
	}
	e.log.Debug("extract.done", "template", t, "lines", len(lines))
	return rec
}

// Detect guesses the template of text from its marker lines.
func (e *Engine) Detect(text string) constants.TemplateType {
	return ocr.DetectTemplate(ocr.Normalize(text))
}
