package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/dictionary"
	"github.com/joseph-ayodele/certificate-extractor/internal/ocr"
	"github.com/joseph-ayodele/certificate-extractor/internal/record"
)

type labelPattern struct {
	dictionary.Entry
	re *regexp.Regexp
}

// genericPass reads "label [:-] value" pairs for every dictionary label, taking
// the next line as the value when the label has nothing after it.
type genericPass struct {
	labels []labelPattern
}

func newGenericPass(d *dictionary.Dictionary) *genericPass {
	entries := d.Labels()
	g := &genericPass{labels: make([]labelPattern, 0, len(entries))}
	for _, e := range entries {
		g.labels = append(g.labels, labelPattern{
			Entry: e,
			re:    regexp.MustCompile(regexp.QuoteMeta(e.Label) + `\s*[:\-]?\s*(.+)`),
		})
	}
	return g
}

func (g *genericPass) apply(f *fold) {
	if !f.generic {
		return
	}
	for _, l := range g.labels {
		m := match(l.re, f.line)
		if m == nil && !strings.Contains(f.line, l.Label) {
			continue
		}
		var value string
		if m != nil {
			value = strings.TrimSpace(m[1])
		} else {
			value = strings.TrimSpace(f.next(1))
		}
		if value == "" {
			continue
		}
		value = f.tr.Translate(value)
		if f.person != constants.RoleNone {
			f.setPerson(f.person, l.Field, value)
		} else {
			f.set(l.Field, value)
		}
	}
}

// genericEnabled decides once per call whether the dictionary pass runs.
func genericEnabled(t constants.TemplateType, lines ocr.Lines) bool {
	return t == constants.BirthCertificate || !lines.ContainsAny(ocr.BilingualMarkers...)
}

// GenericExtractor runs only the dictionary pass. It serves templates without
// dedicated rules.
type GenericExtractor struct {
	template constants.TemplateType
	pass     *genericPass
	tr       *dictionary.Translator
	log      *slog.Logger
}

func NewGenericExtractor(t constants.TemplateType, d *dictionary.Dictionary, logger *slog.Logger) *GenericExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenericExtractor{template: t, pass: newGenericPass(d), tr: d.Translator(), log: logger}
}

func (e *GenericExtractor) Template() constants.TemplateType { return e.template }

func (e *GenericExtractor) Extract(lines ocr.Lines, rec *record.Record) {
	f := newFold(lines, rec, e.tr, e.log)
	f.generic = genericEnabled(e.template, lines)
	f.run([]rule{e.pass.apply})
}
