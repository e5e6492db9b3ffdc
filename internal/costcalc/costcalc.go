// Package costcalc estimates what a set of certifications costs, including
// retakes, training and other expenses.
package costcalc

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// MaxRetakes caps the retakes counted per certification.
const MaxRetakes = 3

// Exam is one certification exam in the catalogue.
type Exam struct {
	Code          string
	Name          string
	Price         float64
	RetakePrice   float64
	ValidityYears int
}

var catalogue = []Exam{
	{"KCNA", "Kubernetes and Cloud Native Associate", 250, 187.50, 2},
	{"CKA", "Certified Kubernetes Administrator", 395, 245, 3},
	{"CKAD", "Certified Kubernetes Application Developer", 395, 245, 3},
	{"CKS", "Certified Kubernetes Security Specialist", 395, 245, 2},
	{"KCSA", "Kubernetes and Cloud Native Security Associate", 250, 187.50, 2},
	{"CNPA", "Cloud Native Platform Engineering Associate", 250, 187.50, 2},
	{"CNPE", "Certified Cloud Native Platform Engineer", 250, 187.50, 2},
	{"CGOA", "Certified GitOps Associate", 250, 187.50, 2},
	{"CCA", "Cilium Certified Associate", 250, 187.50, 2},
	{"PCA", "Prometheus Certified Associate", 250, 187.50, 2},
	{"ICA", "Istio Certified Associate", 250, 187.50, 2},
	{"OTCA", "OpenTelemetry Certified Associate", 250, 187.50, 2},
}

// Catalogue returns every known exam in display order.
func Catalogue() []Exam {
	out := make([]Exam, len(catalogue))
	copy(out, catalogue)
	return out
}

// Lookup finds an exam by code, case-insensitively.
func Lookup(code string) (Exam, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, e := range catalogue {
		if e.Code == code {
			return e, true
		}
	}
	return Exam{}, false
}

// Selection is the calculator input.
type Selection struct {
	Certs      []string
	Retakes    int
	Training   float64
	Additional float64
}

// Estimate is the calculator output.
type Estimate struct {
	Exams      float64
	Training   float64
	Additional float64
	Total      float64
	// Unknown lists requested codes missing from the catalogue.
	Unknown []string
}

// Calculate prices a selection. Every known cert adds its price plus, when
// retakes > 0, its retake price times min(retakes, MaxRetakes). Unknown
// codes are skipped. Negative costs count as zero.
func Calculate(sel Selection) Estimate {
	var est Estimate
	retakes := sel.Retakes
	if retakes > MaxRetakes {
		retakes = MaxRetakes
	}
	for _, code := range sel.Certs {
		e, ok := Lookup(code)
		if !ok {
			est.Unknown = append(est.Unknown, code)
			continue
		}
		est.Exams += e.Price
		if retakes > 0 {
			est.Exams += e.RetakePrice * float64(retakes)
		}
	}
	est.Training = nonNegative(sel.Training)
	est.Additional = nonNegative(sel.Additional)
	est.Total = est.Exams + est.Training + est.Additional
	return est
}

var (
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseAmount reads a cost field from its leading number, so "100usd" is
// 100. A "$" prefix is allowed. Input without a leading number, and negative
// amounts, are 0.
func ParseAmount(s string) float64 {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	v, err := strconv.ParseFloat(leadingFloat.FindString(s), 64)
	if err != nil {
		return 0
	}
	return nonNegative(v)
}

// ParseCount reads the retake field from its leading integer, so "2.5" is 2.
// Input without a leading integer, and negative counts, are 0.
func ParseCount(s string) int {
	v, err := strconv.Atoi(leadingInt.FindString(strings.TrimSpace(s)))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// FormatUSD renders v as "$1234.50".
func FormatUSD(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Codes returns the catalogue codes sorted alphabetically.
func Codes() []string {
	out := make([]string, len(catalogue))
	for i, e := range catalogue {
		out[i] = e.Code
	}
	sort.Strings(out)
	return out
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
