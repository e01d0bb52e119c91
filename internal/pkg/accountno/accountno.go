// Package accountno generates the human-readable account numbers printed on
// passbooks: member number, product code and a per-product sequence.
package accountno

import (
	"fmt"
	"strings"
)

// Generate builds an account number like "M0042-FD-02"
func Generate(memberNo, productCode string, sequence int64) string {
	return fmt.Sprintf("%s-%s-%02d", memberNo, strings.ToUpper(productCode), sequence)
}

// Parts splits an account number back into member number, product code and
// sequence. The member number may itself contain dashes, so the split works
// from the right.
func Parts(accountNumber string) (memberNo, productCode, sequence string, ok bool) {
	last := strings.LastIndex(accountNumber, "-")
	if last < 0 {
		return "", "", "", false
	}
	mid := strings.LastIndex(accountNumber[:last], "-")
	if mid < 0 {
		return "", "", "", false
	}
	return accountNumber[:mid], accountNumber[mid+1 : last], accountNumber[last+1:], true
}
