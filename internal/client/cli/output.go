package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/dmitrijs2005/reviewvault/internal/common"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatAmount renders base units as a grouped decimal with the token
// symbol, e.g. "5,000.000000 AST".
func FormatAmount(units uint64) string {
	scale := uint64(math.Pow10(common.TokenDecimals))
	whole := printer.Sprintf("%d", units/scale)
	return fmt.Sprintf("%s.%0*d %s", whole, common.TokenDecimals, units%scale, common.TokenSymbol)
}

// FormatSeconds renders a cooldown as "4m50s" style text; zero reads "ready".
func FormatSeconds(s int64) string {
	if s <= 0 {
		return "ready"
	}
	if s < 60 {
		return fmt.Sprintf("%ds", s)
	}
	return fmt.Sprintf("%dm%02ds", s/60, s%60)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emit writes v as JSON when requested, otherwise calls text.
func emit(opts *RootOptions, w io.Writer, v any, text func(w io.Writer)) error {
	if opts.Format == "json" {
		return writeJSON(w, v)
	}
	text(w)
	return nil
}
