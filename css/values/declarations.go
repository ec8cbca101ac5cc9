package values

import (
	"fmt"
	"strings"

	pa "github.com/benoitkugler/cssom/css/parser"
	"github.com/benoitkugler/cssom/logger"
	"github.com/benoitkugler/cssom/utils"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Declaration is a valid property declaration.
type Declaration struct {
	Value     Value
	Property  string // lower case, except for custom properties
	Important bool
}

// ErrorHandler is notified of each invalid declaration.
type ErrorHandler interface {
	Report(property, value string, err error)
}

// LogHandler logs invalid declarations at warning level.
// A nil Logger uses [logger.WarningLogger].
type LogHandler struct {
	Logger *zap.Logger
}

func (h LogHandler) Report(property, value string, err error) {
	log := h.Logger
	if log == nil {
		log = logger.WarningLogger
	}
	log.Warn("ignored declaration",
		zap.String("property", property),
		zap.String("value", value),
		zap.Error(err))
}

// CollectHandler accumulates the errors, which are
// available through [CollectHandler.Err].
type CollectHandler struct {
	err error
}

func (h *CollectHandler) Report(property, value string, err error) {
	h.err = multierr.Append(h.err, fmt.Errorf("%s: %s: %w", property, value, err))
}

// Err returns the combined errors, or nil.
func (h *CollectHandler) Err() error { return h.err }

// Errors returns the individual errors.
func (h *CollectHandler) Errors() []error { return multierr.Errors(h.err) }

// ParseDeclarations parses a declaration list, as found in a style attribute,
// reporting the invalid declarations to handler (which may be nil), and
// returning the valid ones.
// The value of custom properties is kept as an [Unknown] value if it
// is not a valid value.
func ParseDeclarations(css string, handler ErrorHandler) []Declaration {
	if handler == nil {
		handler = LogHandler{}
	}
	var out []Declaration
	for _, raw := range pa.ParseDeclarationList(css) {
		if raw.Err != nil {
			handler.Report(raw.Name, "", raw.Err)
			continue
		}
		decl, err := parseDeclaration(raw)
		if err != nil {
			handler.Report(raw.Name, strings.TrimSpace(pa.Serialize(pa.Normalize(raw.Value))), err)
			continue
		}
		out = append(out, decl)
	}
	return out
}

func parseDeclaration(decl pa.Declaration) (Declaration, error) {
	out := Declaration{Property: decl.Name, Important: decl.Important}
	if strings.HasPrefix(decl.Name, "--") {
		v, err := Parse(decl.Value)
		if err != nil {
			v = &Unknown{Text: strings.TrimSpace(pa.Serialize(pa.Normalize(decl.Value)))}
		}
		out.Value = v
		return out, nil
	}
	out.Property = utils.AsciiLower(decl.Name)
	v, err := Parse(decl.Value)
	if err != nil {
		return out, err
	}
	out.Value = v
	return out, nil
}
