package utils

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w ]+`)
	slugSpaces   = regexp.MustCompile(` +`)
	nairaPrinter = message.NewPrinter(language.English)
)

// GenerateSlug derives a URL-safe identifier from a display name.
func GenerateSlug(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = slugStrip.ReplaceAllString(slug, "")
	return slugSpaces.ReplaceAllString(slug, "-")
}

// FormatNaira renders an amount in the store's single implied currency,
// e.g. ₦12,500.00.
func FormatNaira(amount float64) string {
	return nairaPrinter.Sprintf("₦%v",
		number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// DiscountPercentage returns the rounded percentage saved, or 0 when the
// discount is absent or not an actual reduction.
func DiscountPercentage(price float64, discountPrice *float64) int {
	if discountPrice == nil || price <= 0 || *discountPrice >= price {
		return 0
	}
	return int(math.Round((price - *discountPrice) / price * 100))
}

// TruncateText shortens text to maxLength runes with an ellipsis.
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + "..."
}
