package render

import (
	"math/big"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/trebuchet-org/treb-dao/internal/domain/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Color styles shared by the renderers
var (
	labelStyle         = color.New(color.Faint)
	addressStyle       = color.New(color.FgWhite)
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
	ownerStyle         = color.New(color.FgMagenta, color.Bold)
	yesStyle           = color.New(color.FgGreen)
	noStyle            = color.New(color.FgRed)
	linkStyle          = color.New(color.FgBlue, color.Underline)
)

var weiPerEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Capitalize first letter
	msg := message
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// FormatEther renders a wei amount in ether without rounding. Trailing zeros
// of the fraction are dropped but at least one fractional digit is kept.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0.0"
	}
	abs := new(big.Int).Abs(wei)
	whole, frac := new(big.Int).QuoRem(abs, weiPerEther, new(big.Int))

	fraction := strings.TrimRight(leftPad(frac.String(), 18), "0")
	if fraction == "" {
		fraction = "0"
	}

	sign := ""
	if wei.Sign() < 0 {
		sign = "-"
	}
	return sign + whole.String() + "." + fraction
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// FormatState returns a human label for a lifecycle state
func FormatState(state models.LifecycleState) string {
	label := cases.Title(language.English).String(strings.ReplaceAll(string(state), "_", " "))
	switch state {
	case models.LifecycleActive:
		return color.New(color.FgGreen).Sprint(label)
	case models.LifecycleAwaitingExecution:
		return color.New(color.FgYellow).Sprint(label)
	default:
		return color.New(color.Faint).Sprint(label)
	}
}

// FormatDeadline describes a deadline relative to now
func FormatDeadline(deadline, now time.Time) string {
	if !now.Before(deadline) {
		return "ended " + deadline.Local().Format(time.DateTime)
	}
	return "ends in " + deadline.Sub(now).Round(time.Second).String()
}

// ExecuteLabel is the advisory outcome shown next to execute, "(YAY)" when
// yes votes lead and "(NAY)" otherwise.
func ExecuteLabel(outcome models.Outcome) string {
	if outcome == models.OutcomePurchase {
		return "(YAY)"
	}
	return "(NAY)"
}
