package extract

import (
	"log/slog"

	"github.com/joseph-ayodele/certificate-extractor/constants"
	"github.com/joseph-ayodele/certificate-extractor/internal/dictionary"
)

// Router maps a template to its extractor. Unknown templates get the
// dictionary-only extractor.
type Router struct {
	extractors map[constants.TemplateType]Extractor
	pass       *genericPass
	tr         *dictionary.Translator
	log        *slog.Logger
}

func NewRouter(d *dictionary.Dictionary, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{
		extractors: map[constants.TemplateType]Extractor{},
		pass:       newGenericPass(d),
		tr:         d.Translator(),
		log:        logger,
	}
	for _, e := range []Extractor{
		NewBirthExtractor(d, logger),
		NewBilingualExtractor(d, logger),
		NewMarriageExtractor(d, logger),
		NewDivorceExtractor(d, logger),
		NewPopulationExtractor(d, logger),
	} {
		r.extractors[e.Template()] = e
	}
	return r
}

// For returns the extractor registered for t.
func (r *Router) For(t constants.TemplateType) Extractor {
	if e, ok := r.extractors[t]; ok {
		return e
	}
	r.log.Debug("extract.router.fallback", "template", t)
	return &GenericExtractor{template: t, pass: r.pass, tr: r.tr, log: r.log}
}
