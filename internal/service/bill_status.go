package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus is the derived payment status of a bill. The values are the
// Vietnamese display labels returned to clients.
type BillStatus string

const (
	StatusPaid    BillStatus = "Đã thanh toán"
	StatusPartial BillStatus = "Thanh toán một phần"
	StatusUnpaid  BillStatus = "Chưa thanh toán"
	StatusOverdue BillStatus = "Quá hạn"
)

// ClassifyBillStatus derives the payment status of a bill from its amounts and
// billing period. Rules, in order:
//  1. totalAmount > 0 and paidAmount >= totalAmount -> paid
//  2. 0 < paidAmount < totalAmount -> partial
//  3. paidAmount == 0: overdue when the billing period's month is strictly
//     before now's month, otherwise unpaid
//
// A bill with totalAmount == 0 and paidAmount == 0 is treated as outstanding,
// not as paid.
func ClassifyBillStatus(totalAmount, paidAmount decimal.Decimal, billingPeriod, now time.Time) BillStatus {
	if totalAmount.IsPositive() && paidAmount.GreaterThanOrEqual(totalAmount) {
		return StatusPaid
	}
	if paidAmount.IsPositive() && paidAmount.LessThan(totalAmount) {
		return StatusPartial
	}

	by, bm, _ := billingPeriod.Date()
	ny, nm, _ := now.Date()
	if by < ny || (by == ny && bm < nm) {
		return StatusOverdue
	}
	return StatusUnpaid
}

// ParseBillStatus resolves a status filter value. It accepts the Vietnamese
// display label or the enum code (PAID, PARTIAL, UNPAID, OVERDUE),
// case-insensitively for codes. Returns false when the value is unknown.
func ParseBillStatus(value string) (BillStatus, bool) {
	switch BillStatus(value) {
	case StatusPaid, StatusPartial, StatusUnpaid, StatusOverdue:
		return BillStatus(value), true
	}
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "PAID":
		return StatusPaid, true
	case "PARTIAL":
		return StatusPartial, true
	case "UNPAID":
		return StatusUnpaid, true
	case "OVERDUE":
		return StatusOverdue, true
	}
	return "", false
}
