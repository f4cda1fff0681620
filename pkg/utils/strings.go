package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	nonSlugChars = regexp.MustCompile("[^a-z0-9-]+")
	hyphenRuns   = regexp.MustCompile("-+")
)

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func shortID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// GenerateInvoiceNo returns "INV-<yyyymmdd>-<random>"
func GenerateInvoiceNo(at time.Time) string {
	return "INV-" + at.Format("20060102") + "-" + shortID()
}

// GenerateProductCode generates a unique product code
func GenerateProductCode() string {
	return "PROD-" + shortID()
}

// GenerateSKU derives a SKU from a product code and a variant name
func GenerateSKU(productCode, variant string) string {
	return strings.ToUpper(productCode + "-" + Slugify(variant))
}

// Titleize turns "account_name" into "Account Name"
func Titleize(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
