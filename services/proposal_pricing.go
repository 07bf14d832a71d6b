package services

import (
	"math"
	"strings"
)

// ProposalLineCalc holds the calculated totals for a single proposal line.
type ProposalLineCalc struct {
	Rate       float64
	Qty        float64
	GSTPercent float64
	BeforeGST  float64 // Rate * Qty
	GSTAmount  float64 // BeforeGST * GSTPercent / 100
	Total      float64 // BeforeGST + GSTAmount
}

// ProposalTotals holds the aggregated totals for a proposal document.
type ProposalTotals struct {
	TotalBeforeTax float64
	GSTPercent     float64
	GSTAmount      float64
	RoundOff       float64
	GrandTotal     float64
}

// CalcProposalLine calculates the totals for a single proposal line.
func CalcProposalLine(rate, qty, gstPercent float64) ProposalLineCalc {
	beforeGST := rate * qty
	gstAmount := beforeGST * gstPercent / 100
	return ProposalLineCalc{
		Rate:       rate,
		Qty:        qty,
		GSTPercent: gstPercent,
		BeforeGST:  beforeGST,
		GSTAmount:  gstAmount,
		Total:      beforeGST + gstAmount,
	}
}

// CalcProposalTotals computes the aggregate totals for all lines in a
// proposal. The effective GST percent is the weighted average over the
// lines; round-off snaps the grand total to the nearest rupee.
func CalcProposalTotals(lines []ProposalLineCalc) ProposalTotals {
	var totalBeforeTax float64
	var totalGST float64

	for _, line := range lines {
		totalBeforeTax += line.BeforeGST
		totalGST += line.GSTAmount
	}

	var gstPercent float64
	if totalBeforeTax > 0 {
		gstPercent = (totalGST / totalBeforeTax) * 100
	}

	subtotal := totalBeforeTax + totalGST
	roundOff := calcRoundOff(subtotal)

	return ProposalTotals{
		TotalBeforeTax: totalBeforeTax,
		GSTPercent:     gstPercent,
		GSTAmount:      totalGST,
		RoundOff:       roundOff,
		GrandTotal:     subtotal + roundOff,
	}
}

// calcRoundOff rounds to nearest rupee with ±0.50 threshold.
func calcRoundOff(amount float64) float64 {
	return math.Round(amount) - amount
}

// AmountToWords converts a numeric amount to Indian English words.
// Example: 913183.00 → "Nine Lakhs Thirteen Thousand One Hundred and Eighty Three Rupees Only/-"
func AmountToWords(amount float64) string {
	if amount < 0 {
		return "Negative " + AmountToWords(-amount)
	}

	rupees := int64(math.Round(amount))

	if rupees == 0 {
		return "Zero Rupees Only/-"
	}

	return convertToIndianWords(rupees) + " Rupees Only/-"
}

func convertToIndianWords(n int64) string {
	if n == 0 {
		return ""
	}

	var parts []string

	if n >= 10000000 {
		parts = append(parts, convertUnder100(n/10000000)+" Crores")
		n %= 10000000
	}

	if n >= 100000 {
		parts = append(parts, convertUnder100(n/100000)+" Lakhs")
		n %= 100000
	}

	if n >= 1000 {
		parts = append(parts, convertUnder100(n/1000)+" Thousand")
		n %= 1000
	}

	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}

	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+convertUnder100(n))
		} else {
			parts = append(parts, convertUnder100(n))
		}
	}

	return strings.Join(parts, " ")
}

func convertUnder100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	result := tens[n/10]
	if n%10 != 0 {
		result += " " + ones[n%10]
	}
	return result
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
